package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/usecase/reschedule"
)

type RescheduleHandler struct {
	db      *gorm.DB
	propose *reschedule.Propose
	decide  *reschedule.Decide
}

func NewRescheduleHandler(
	db *gorm.DB,
	propose *reschedule.Propose,
	decide *reschedule.Decide,
) *RescheduleHandler {
	return &RescheduleHandler{
		db:      db,
		propose: propose,
		decide:  decide,
	}
}

type ProposeRescheduleRequest struct {
	NewDate string `json:"new_date" binding:"required"`
	NewTime string `json:"new_time" binding:"required"`
	Reason  string `json:"reason"`
}

type DecideRescheduleRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// Propose files a reschedule request against an appointment. The
// appointment keeps its current slot until an admin approves.
func (h *RescheduleHandler) Propose(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req ProposeRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	// Customers may only propose against their own appointments.
	var customerID uint
	if role, _ := c.Get(middleware.ContextUserRole); role == models.RoleCustomer {
		customerID = userID
	}

	out, err := h.propose.Execute(c.Request.Context(), reschedule.ProposeInput{
		AppointmentID: appointmentID,
		BranchID:      branchID,
		CustomerID:    customerID,
		ActorID:       userID,
		NewDate:       req.NewDate,
		NewTime:       req.NewTime,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *RescheduleHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	query := h.db.Joins("JOIN appointments ON appointments.id = reschedule_requests.appointment_id").
		Where("appointments.branch_id = ?", branchID).
		Order("reschedule_requests.created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("reschedule_requests.status = ?", status)
	}

	var requests []models.RescheduleRequest
	if err := query.Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reschedules", "Failed to load reschedule requests.")
		return
	}

	httpresp.List(c, requests, int64(len(requests)))
}

func (h *RescheduleHandler) Decide(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req DecideRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	out, err := h.decide.Execute(c.Request.Context(), id, branchID, adminID, req.Approve, req.Notes)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
