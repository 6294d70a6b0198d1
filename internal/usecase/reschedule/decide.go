package reschedule

import (
	"context"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/usecase/booking"
)

type Decide struct {
	repo       domain.Repository
	reschedule *booking.Reschedule
	clock      clock.Clock
	audit      *audit.Dispatcher
}

func NewDecide(
	repo domain.Repository,
	reschedule *booking.Reschedule,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *Decide {
	return &Decide{
		repo:       repo,
		reschedule: reschedule,
		clock:      clk,
		audit:      audit,
	}
}

// Execute decides a pending proposal. Approval runs the real
// reschedule; if the slot was taken between proposal and decision the
// error propagates and the request stays pending so the admin can
// retry or reject. Rejection never touches the appointment. A request
// whose appointment belongs to another branch reads as not found.
func (uc *Decide) Execute(
	ctx context.Context,
	requestID uint,
	branchID uint,
	adminID uint,
	approve bool,
	notes string,
) (*models.RescheduleRequest, error) {

	req, err := uc.repo.GetRescheduleRequest(ctx, requestID)
	if err != nil {
		return nil, httperr.NotFoundErr("reschedule_request_not_found", "Reschedule request not found.")
	}

	if _, err := uc.repo.GetAppointmentForBranch(ctx, req.AppointmentID, branchID); err != nil {
		return nil, httperr.NotFoundErr("reschedule_request_not_found", "Reschedule request not found.")
	}

	if req.Status != domain.RequestPending {
		return nil, httperr.NotFoundErr(
			"reschedule_request_not_pending",
			"Reschedule request has already been decided.",
		)
	}

	if approve {
		_, err := uc.reschedule.Execute(
			ctx,
			req.AppointmentID,
			branchID,
			req.NewDate.Format("2006-01-02"),
			req.NewTime,
			adminID,
		)
		if err != nil {
			// Slot gone or appointment no longer movable: the
			// request remains pending, nothing is persisted.
			return nil, err
		}

		req.Status = domain.RequestApproved
	} else {
		req.Status = domain.RequestRejected
	}

	now := uc.clock.Now()
	req.AdminNotes = notes
	req.DecidedBy = &adminID
	req.DecidedAt = &now

	if err := uc.repo.UpdateRescheduleRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &adminID,
		Action:   "reschedule_decided",
		Entity:   "reschedule_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"status": req.Status},
	})

	return req, nil
}
