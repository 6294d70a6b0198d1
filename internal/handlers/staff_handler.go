package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

type CreateStaffRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

type UpdateStaffRequest struct {
	Specialization *string `json:"specialization,omitempty"`
	Available      *bool   `json:"available,omitempty"`
}

func (h *StaffHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var staff []models.Staff
	err := h.db.Preload("User").
		Where("primary_branch_id = ?", branchID).
		Find(&staff).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Failed to load staff.")
		return
	}

	httpresp.List(c, staff, int64(len(staff)))
}

func (h *StaffHandler) Create(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		httperr.Write(c, http.StatusConflict, "email_in_use", "Email is already registered.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to process password.")
		return
	}

	var staff models.Staff
	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			BranchID:     branchID,
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Phone:        req.Phone,
			Role:         models.RoleStaff,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		staff = models.Staff{
			UserID:          user.ID,
			PrimaryBranchID: branchID,
			Specialization:  req.Specialization,
			Available:       true,
		}
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}

		staff.User = user
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Failed to create staff member.")
		return
	}

	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var staff models.Staff
	err := h.db.Preload("User").
		Where("id = ? AND primary_branch_id = ?", c.Param("id"), branchID).
		First(&staff).Error
	if err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Specialization != nil {
		staff.Specialization = *req.Specialization
	}
	if req.Available != nil {
		staff.Available = *req.Available
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Failed to save staff member.")
		return
	}

	c.JSON(http.StatusOK, staff)
}
