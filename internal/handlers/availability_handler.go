package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonsuite/salon-scheduler/internal/cache"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	repo    domain.Repository
	checker *availability.Checker
	slots   *availability.ListFreeSlots
	cache   *cache.Cache
}

func NewAvailabilityHandler(
	repo domain.Repository,
	checker *availability.Checker,
	slots *availability.ListFreeSlots,
	c *cache.Cache,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		repo:    repo,
		checker: checker,
		slots:   slots,
		cache:   c,
	}
}

type AvailabilityResponse struct {
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"`
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
}

type SlotsResponse struct {
	Date  string            `json:"date"`
	Slots []domain.TimeSlot `json:"slots"`
}

// ======================================================
// ENDPOINTS
// ======================================================

// Check answers whether a single (staff, date, time) slot is bookable.
// Read-only; the booking path re-validates inside the reservation
// transaction, so a stale yes here can never double-book.
func (h *AvailabilityHandler) Check(c *gin.Context) {
	branchID, ok := parseBranchParam(c)
	if !ok {
		return
	}

	staffID := parseOptionalUintQuery(c, "staff_id")
	if staffID == 0 {
		httperr.BadRequest(c, "missing_staff", "Query param 'staff_id' is required.")
		return
	}

	clockTime := c.Query("time")
	if clockTime == "" {
		httperr.BadRequest(c, "missing_time", "Query param 'time' is required.")
		return
	}

	branch, err := h.repo.GetBranchByID(c.Request.Context(), branchID)
	if err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	date, err := parseDateInBranch(branch, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Query param 'date' must be in YYYY-MM-DD format.")
		return
	}

	verdict, err := h.checker.Check(c.Request.Context(), availability.Input{
		BranchID: branchID,
		StaffID:  staffID,
		Date:     date,
		Time:     clockTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := AvailabilityResponse{
		Available: verdict.Available,
		Reason:    verdict.Reason,
	}

	if hours, err := h.repo.GetBusinessHours(c.Request.Context(), branchID, int(date.Weekday())); err == nil && hours != nil && !hours.IsClosed {
		resp.OpeningTime = hours.OpeningTime
		resp.ClosingTime = hours.ClosingTime
	}

	c.JSON(http.StatusOK, resp)
}

// Slots returns the free-slot grid for a staff member and service on
// one day. The grid is cached briefly; bookings in the cache window
// surface as a slot-taken rejection at reservation time.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	branchID, ok := parseBranchParam(c)
	if !ok {
		return
	}

	staffID := parseOptionalUintQuery(c, "staff_id")
	serviceID := parseOptionalUintQuery(c, "service_id")
	if staffID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "missing_params", "Query params 'staff_id' and 'service_id' are required.")
		return
	}

	branch, err := h.repo.GetBranchByID(c.Request.Context(), branchID)
	if err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	date, err := parseDateInBranch(branch, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Query param 'date' must be in YYYY-MM-DD format.")
		return
	}

	key := fmt.Sprintf("slots:%d:%d:%d:%s", branchID, staffID, serviceID, date.Format("2006-01-02"))

	var resp SlotsResponse
	if h.cache.GetJSON(c.Request.Context(), key, &resp) {
		c.JSON(http.StatusOK, resp)
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), availability.SlotsInput{
		BranchID:  branchID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp = SlotsResponse{
		Date:  date.Format("2006-01-02"),
		Slots: slots,
	}

	h.cache.SetJSON(c.Request.Context(), key, resp, 30*time.Second)

	c.JSON(http.StatusOK, resp)
}

func parseBranchParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("branchId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_branch", "Route param 'branchId' must be numeric.")
		return 0, false
	}
	return uint(id), true
}
