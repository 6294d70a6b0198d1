package leave

import (
	"context"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type DecideRequest struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewDecideRequest(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *DecideRequest {
	return &DecideRequest{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

// Execute moves a pending request to approved or rejected. A request
// that has already been decided cannot be decided again, and a request
// for staff of another branch reads as not found.
func (uc *DecideRequest) Execute(
	ctx context.Context,
	requestID uint,
	branchID uint,
	approverID uint,
	approve bool,
	rejectionReason string,
) (*models.LeaveRequest, error) {

	req, err := uc.repo.GetLeaveRequest(ctx, requestID)
	if err != nil {
		return nil, httperr.NotFoundErr("leave_request_not_found", "Leave request not found.")
	}

	staff, err := uc.repo.GetStaff(ctx, req.StaffID)
	if err != nil || staff.PrimaryBranchID != branchID {
		return nil, httperr.NotFoundErr("leave_request_not_found", "Leave request not found.")
	}

	if req.Status != domain.RequestPending {
		return nil, httperr.NotFoundErr(
			"leave_request_not_pending",
			"Leave request has already been decided.",
		)
	}

	now := uc.clock.Now()
	req.DecidedBy = &approverID
	req.DecidedAt = &now

	if approve {
		req.Status = domain.RequestApproved
	} else {
		req.Status = domain.RequestRejected
		req.RejectionReason = rejectionReason
	}

	if err := uc.repo.UpdateLeaveRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: staff.PrimaryBranchID,
		UserID:   &approverID,
		Action:   "leave_decided",
		Entity:   "leave_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"status": req.Status},
	})

	return req, nil
}
