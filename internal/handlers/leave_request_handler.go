package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/httpresp"
	"github.com/salonsuite/salon-scheduler/internal/middleware"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/usecase/leave"
)

type LeaveRequestHandler struct {
	db     *gorm.DB
	submit *leave.SubmitRequest
	decide *leave.DecideRequest
}

func NewLeaveRequestHandler(
	db *gorm.DB,
	submit *leave.SubmitRequest,
	decide *leave.DecideRequest,
) *LeaveRequestHandler {
	return &LeaveRequestHandler{
		db:     db,
		submit: submit,
		decide: decide,
	}
}

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type DecideLeaveRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason"`
}

// Submit files a leave request for the authenticated staff member.
func (h *LeaveRequestHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var staff models.Staff
	if err := h.db.Where("user_id = ?", userID).First(&staff).Error; err != nil {
		httperr.Write(c, http.StatusForbidden, "not_staff", "Only staff members can request leave.")
		return
	}

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	out, err := h.submit.Execute(c.Request.Context(), leave.SubmitInput{
		StaffID:   staff.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *LeaveRequestHandler) List(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)

	query := h.db.Joins("JOIN staff ON staff.id = leave_requests.staff_id").
		Where("staff.primary_branch_id = ?", branchID).
		Order("leave_requests.created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("leave_requests.status = ?", status)
	}

	var requests []models.LeaveRequest
	if err := query.Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_leave", "Failed to load leave requests.")
		return
	}

	httpresp.List(c, requests, int64(len(requests)))
}

func (h *LeaveRequestHandler) Decide(c *gin.Context) {
	branchID := c.MustGet(middleware.ContextBranchID).(uint)
	approverID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	out, err := h.decide.Execute(c.Request.Context(), id, branchID, approverID, req.Approve, req.RejectionReason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
