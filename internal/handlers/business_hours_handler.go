package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/usecase/calendar"
)

type BusinessHoursHandler struct {
	repo     domain.Repository
	setHours *calendar.SetBusinessHours
}

func NewBusinessHoursHandler(
	repo domain.Repository,
	setHours *calendar.SetBusinessHours,
) *BusinessHoursHandler {
	return &BusinessHoursHandler{
		repo:     repo,
		setHours: setHours,
	}
}

func (h *BusinessHoursHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	hours, err := h.repo.ListBusinessHours(c.Request.Context(), branchID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_hours", "Failed to load business hours.")
		return
	}

	httpresp.List(c, hours, int64(len(hours)))
}

type SetBusinessHoursRequest struct {
	Days []calendar.DayConfig `json:"days" binding:"required"`
}

func (h *BusinessHoursHandler) Set(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req SetBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	hours, err := h.setHours.Execute(c.Request.Context(), branchID, actorID, req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, hours, int64(len(hours)))
}
