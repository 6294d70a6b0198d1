package booking

import (
	"context"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/usecase/availability"
)

type ReassignStaff struct {
	repo    domain.Repository
	checker *availability.Checker
	audit   *audit.Dispatcher
}

func NewReassignStaff(
	repo domain.Repository,
	checker *availability.Checker,
	audit *audit.Dispatcher,
) *ReassignStaff {
	return &ReassignStaff{
		repo:    repo,
		checker: checker,
		audit:   audit,
	}
}

// Execute hands the existing slot to another staff member, provided
// the new staff member is free at that exact date and time. An ID
// from another branch reads as not found.
func (uc *ReassignStaff) Execute(
	ctx context.Context,
	appointmentID uint,
	branchID uint,
	newStaffID uint,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBranch(ctx, appointmentID, branchID)
	if err != nil {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	if domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.InvalidTransition(
			"appointment_terminal",
			"Completed or cancelled appointments cannot be reassigned.",
		)
	}

	if _, err := uc.repo.GetStaff(ctx, newStaffID); err != nil {
		return nil, httperr.NotFoundErr("staff_not_found", "Staff member not found.")
	}

	verdict, err := uc.checker.Check(ctx, availability.Input{
		BranchID:             ap.BranchID,
		StaffID:              newStaffID,
		Date:                 ap.Date,
		Time:                 ap.Time,
		ExcludeAppointmentID: ap.ID,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return nil, httperr.SlotUnavailable(verdict.Code, verdict.Reason)
	}

	previousStaffID := ap.StaffID
	ap.StaffID = newStaffID

	if err := uc.repo.MoveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		UserID:   &actorID,
		Action:   "appointment_reassigned",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from_staff": previousStaffID, "to_staff": newStaffID},
	})

	return ap, nil
}
