package reschedule

import (
	"context"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

type ProposeInput struct {
	AppointmentID uint
	BranchID      uint

	// CustomerID restricts the proposal to that customer's own
	// appointment. Zero means a staff-side proposal.
	CustomerID uint

	ActorID uint
	NewDate string
	NewTime string
	Reason  string
}

type Propose struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPropose(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Propose {
	return &Propose{
		repo:  repo,
		audit: audit,
	}
}

// Execute files a pending reschedule proposal. The appointment itself
// is untouched until an admin approves; the current slot is snapshotted
// so the decision can report what the move was relative to. Only one
// pending proposal may exist per appointment at a time. An appointment
// outside the caller's branch, or another customer's appointment on a
// customer-filed proposal, reads as not found.
func (uc *Propose) Execute(
	ctx context.Context,
	in ProposeInput,
) (*models.RescheduleRequest, error) {

	if _, err := domain.ClockMinutes(in.NewTime); err != nil {
		return nil, httperr.Validation("invalid_time", "Time must be in HH:MM format.")
	}

	ap, err := uc.repo.GetAppointmentForBranch(ctx, in.AppointmentID, in.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	if in.CustomerID != 0 && ap.CustomerID != in.CustomerID {
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}

	if ap.Status != string(domain.StatusScheduled) {
		return nil, httperr.InvalidTransition(
			"appointment_not_scheduled",
			"Only scheduled appointments can be rescheduled.",
		)
	}

	pending, err := uc.repo.FindPendingReschedule(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, httperr.Conflict(
			"reschedule_pending",
			"A reschedule request is already pending for this appointment.",
		)
	}

	branch, err := uc.repo.GetBranchByID(ctx, ap.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	newDate, err := time.ParseInLocation(
		"2006-01-02",
		in.NewDate,
		timezone.Location(branch.Timezone),
	)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	req := &models.RescheduleRequest{
		AppointmentID: ap.ID,
		OriginalDate:  ap.Date,
		OriginalTime:  ap.Time,
		NewDate:       newDate,
		NewTime:       in.NewTime,
		Reason:        in.Reason,
		Status:        domain.RequestPending,
	}

	if err := uc.repo.CreateRescheduleRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		UserID:   &in.ActorID,
		Action:   "reschedule_proposed",
		Entity:   "reschedule_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"new_date": in.NewDate, "new_time": in.NewTime},
	})

	return req, nil
}
