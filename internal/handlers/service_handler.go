package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=5"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	query := h.db.Where("branch_id = ?", branchID)
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to load services.")
		return
	}

	httpresp.List(c, services, int64(len(services)))
}

func (h *ServiceHandler) Create(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	service := models.Service{
		BranchID:    branchID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var service models.Service
	if err := h.db.Where("id = ? AND branch_id = ?", c.Param("id"), branchID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 5 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be at least 5 minutes.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
			return
		}
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to save service.")
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	var service models.Service
	if err := h.db.Where("id = ? AND branch_id = ?", c.Param("id"), branchID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	// deactivate rather than remove, past appointments keep their snapshots
	service.Active = false
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to deactivate service.")
		return
	}

	c.Status(http.StatusNoContent)
}
