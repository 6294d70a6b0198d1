package booking

import (
	"context"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
	"github.com/salonsuite/salon-scheduler/internal/usecase/availability"
)

type Reschedule struct {
	repo    domain.Repository
	checker *availability.Checker
	audit   *audit.Dispatcher
}

func NewReschedule(
	repo domain.Repository,
	checker *availability.Checker,
	audit *audit.Dispatcher,
) *Reschedule {
	return &Reschedule{
		repo:    repo,
		checker: checker,
		audit:   audit,
	}
}

// Execute moves the appointment to a new date and time with the same
// staff member. A live appointment is reset to scheduled; terminal
// appointments cannot move. An ID from another branch reads as not
// found, and moving to the slot the appointment already holds is not
// a conflict.
func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID uint,
	branchID uint,
	newDate string,
	newTime string,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBranch(ctx, appointmentID, branchID)
	if err != nil {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	if domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.InvalidTransition(
			"appointment_terminal",
			"Completed or cancelled appointments cannot be rescheduled.",
		)
	}

	branch, err := uc.repo.GetBranchByID(ctx, ap.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		newDate,
		timezone.Location(branch.Timezone),
	)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	verdict, err := uc.checker.Check(ctx, availability.Input{
		BranchID:             ap.BranchID,
		StaffID:              ap.StaffID,
		Date:                 date,
		Time:                 newTime,
		ExcludeAppointmentID: ap.ID,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return nil, httperr.SlotUnavailable(verdict.Code, verdict.Reason)
	}

	previous := map[string]any{"date": ap.Date.Format("2006-01-02"), "time": ap.Time}

	ap.Date = date
	ap.Time = newTime
	ap.Status = string(domain.StatusScheduled)

	if err := uc.repo.MoveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		UserID:   &actorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": previous, "to_date": newDate, "to_time": newTime},
	})

	return ap, nil
}
