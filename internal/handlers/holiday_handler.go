package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type HolidayHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewHolidayHandler(db *gorm.DB, audit *audit.Dispatcher) *HolidayHandler {
	return &HolidayHandler{db: db, audit: audit}
}

type CreateHolidayRequest struct {
	Date       string `json:"date" binding:"required"`
	Name       string `json:"name" binding:"required"`
	IsOptional bool   `json:"is_optional"`
}

func (h *HolidayHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	query := h.db.Where("branch_id = ?", branchID).Order("date ASC")
	if year := c.Query("year"); year != "" {
		query = query.Where("EXTRACT(YEAR FROM date) = ?", year)
	}

	var holidays []models.Holiday
	if err := query.Find(&holidays).Error; err != nil {
		httperr.Internal(c, "failed_to_list_holidays", "Failed to load holidays.")
		return
	}

	httpresp.List(c, holidays, int64(len(holidays)))
}

func (h *HolidayHandler) Create(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be in YYYY-MM-DD format.")
		return
	}

	var count int64
	h.db.Model(&models.Holiday{}).
		Where("branch_id = ? AND date = ?", branchID, req.Date).
		Count(&count)
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "holiday_exists", "A holiday is already registered on this date.")
		return
	}

	holiday := models.Holiday{
		BranchID:   branchID,
		Date:       date,
		Name:       req.Name,
		IsOptional: req.IsOptional,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_create_holiday", "Failed to create holiday.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &actorID,
		Action:   "holiday_created",
		Entity:   "holiday",
		EntityID: &holiday.ID,
		Metadata: map[string]any{"date": req.Date, "name": req.Name},
	})

	httpresp.Created(c, holiday)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var holiday models.Holiday
	if err := h.db.Where("id = ? AND branch_id = ?", c.Param("id"), branchID).
		First(&holiday).Error; err != nil {
		httperr.NotFound(c, "holiday_not_found", "Holiday not found.")
		return
	}

	if err := h.db.Delete(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_holiday", "Failed to delete holiday.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &actorID,
		Action:   "holiday_deleted",
		Entity:   "holiday",
		EntityID: &holiday.ID,
	})

	c.Status(http.StatusNoContent)
}
