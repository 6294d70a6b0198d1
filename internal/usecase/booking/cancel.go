package booking

import (
	"context"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

type CancelInput struct {
	AppointmentID uint
	BranchID      uint

	// CustomerID restricts the cancel to that customer's own
	// appointment. Zero means a staff-side cancel.
	CustomerID uint

	Reason  string
	ActorID uint
}

type CancelAppointment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

// Execute cancels from any live state and frees the slot; the next
// availability check for the same (staff, date, time) comes back free.
// An appointment outside the caller's branch, or another customer's
// appointment on a customer-initiated cancel, reads as not found.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBranch(ctx, in.AppointmentID, in.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	if in.CustomerID != 0 && ap.CustomerID != in.CustomerID {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	branch, err := uc.repo.GetBranchByID(ctx, ap.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	now := uc.clock.Now().In(timezone.Location(branch.Timezone))
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		UserID:   &in.ActorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": in.Reason},
	})

	return ap, nil
}
