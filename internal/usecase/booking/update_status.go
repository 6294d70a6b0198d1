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

type UpdateStatus struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

// Execute applies a status transition to an appointment in the
// caller's branch; an ID from another branch reads as not found.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	branchID uint,
	newStatus string,
	actorID uint,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(domain.Status(newStatus)) {
		return nil, httperr.Validation("invalid_status", "Unknown appointment status.")
	}

	ap, err := uc.repo.GetAppointmentForBranch(ctx, appointmentID, branchID)
	if err != nil {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	branch, err := uc.repo.GetBranchByID(ctx, ap.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	previous := ap.Status
	now := uc.clock.Now().In(timezone.Location(branch.Timezone))

	if err := domain.ApplyStatus(ap, domain.Status(newStatus), now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		UserID:   &actorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": previous, "to": newStatus},
	})

	return ap, nil
}
