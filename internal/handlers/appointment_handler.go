package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	create       *booking.CreateAppointment
	updateStatus *booking.UpdateStatus
	reassign     *booking.ReassignStaff
	reschedule   *booking.Reschedule
	cancel       *booking.CancelAppointment
	listByDate   *booking.ListByDate
	listByMonth  *booking.ListByMonth
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *booking.CreateAppointment,
	updateStatus *booking.UpdateStatus,
	reassign *booking.ReassignStaff,
	reschedule *booking.Reschedule,
	cancel *booking.CancelAppointment,
	listByDate *booking.ListByDate,
	listByMonth *booking.ListByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		create:       create,
		updateStatus: updateStatus,
		reassign:     reassign,
		reschedule:   reschedule,
		cancel:       cancel,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID       uint   `json:"staff_id" binding:"required"`
	CustomerID    uint   `json:"customer_id"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	ServiceIDs    []uint `json:"service_ids" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	StaffID *uint   `json:"staff_id,omitempty"`
	NewDate *string `json:"new_date,omitempty"`
	NewTime *string `json:"new_time,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	// Customers book for themselves; front-desk roles pass a customer.
	customerID := req.CustomerID
	if customerID == 0 {
		customerID = actorID
	}

	ap, err := h.create.Execute(c.Request.Context(), booking.CreateInput{
		BranchID:      branchID,
		StaffID:       req.StaffID,
		CustomerID:    customerID,
		Date:          req.Date,
		Time:          req.Time,
		ServiceIDs:    req.ServiceIDs,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	ap, err := h.repo.GetAppointmentForBranch(c.Request.Context(), id, branchID)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ListByDay returns the day's appointments, optionally per staff member.
func (h *AppointmentHandler) ListByDay(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Query param 'date' must be in YYYY-MM-DD format.")
		return
	}

	staffID := parseOptionalUintQuery(c, "staff_id")

	items, err := h.listByDate.Execute(c.Request.Context(), branchID, staffID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items, int64(len(items)))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Query params 'year' and 'month' are required.")
		return
	}

	staffID := parseOptionalUintQuery(c, "staff_id")

	items, err := h.listByMonth.Execute(c.Request.Context(), branchID, staffID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items, int64(len(items)))
}

// Update moves an appointment: a staff_id in the body reassigns it, a
// new_date/new_time pair reschedules it. One operation per request.
func (h *AppointmentHandler) Update(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	hasReassign := req.StaffID != nil
	hasReschedule := req.NewDate != nil || req.NewTime != nil

	switch {
	case hasReassign && hasReschedule:
		httperr.BadRequest(c, "conflicting_update", "Reassign and reschedule cannot be combined.")
		return

	case hasReassign:
		ap, err := h.reassign.Execute(c.Request.Context(), id, branchID, *req.StaffID, actorID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ap)

	case hasReschedule:
		if req.NewDate == nil || req.NewTime == nil {
			httperr.BadRequest(c, "incomplete_reschedule", "Both new_date and new_time are required.")
			return
		}
		ap, err := h.reschedule.Execute(c.Request.Context(), id, branchID, *req.NewDate, *req.NewTime, actorID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ap)

	default:
		httperr.BadRequest(c, "empty_update", "Nothing to update.")
	}
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), id, branchID, req.Status, actorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	// Customers may only cancel their own appointments.
	var customerID uint
	if role, _ := c.Get(middleware.ContextUserRole); role == models.RoleCustomer {
		customerID = actorID
	}

	ap, err := h.cancel.Execute(c.Request.Context(), booking.CancelInput{
		AppointmentID: id,
		BranchID:      branchID,
		CustomerID:    customerID,
		Reason:        req.Reason,
		ActorID:       actorID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Route param 'id' must be numeric.")
		return 0, err
	}
	return uint(id), nil
}

func parseOptionalUintQuery(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
