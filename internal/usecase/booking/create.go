package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
	"github.com/salonsuite/salon-scheduler/internal/usecase/availability"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BranchID   uint
	StaffID    uint
	CustomerID uint

	Date string
	Time string

	ServiceIDs    []uint
	PaymentMethod string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	checker *availability.Checker
	audit   *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	checker *availability.Checker,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		checker: checker,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.Validation("missing_services", "At least one service is required.")
	}

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return nil, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(branch.Timezone),
	)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	verdict, err := uc.checker.Check(ctx, availability.Input{
		BranchID: in.BranchID,
		StaffID:  in.StaffID,
		Date:     date,
		Time:     in.Time,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return nil, httperr.SlotUnavailable(verdict.Code, verdict.Reason)
	}

	// Snapshot name, price and duration from the catalog so later
	// catalog edits never change this appointment's totals.
	services := make([]models.AppointmentService, 0, len(in.ServiceIDs))
	for _, serviceID := range in.ServiceIDs {
		svc, err := uc.repo.GetService(ctx, in.BranchID, serviceID)
		if err != nil {
			return nil, httperr.NotFoundErr("service_not_found", "Service not found.")
		}

		services = append(services, models.AppointmentService{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       svc.Price,
			DurationMin: svc.DurationMin,
		})
	}

	ap := &models.Appointment{
		Reference:     uuid.NewString(),
		BranchID:      in.BranchID,
		StaffID:       in.StaffID,
		CustomerID:    in.CustomerID,
		Date:          date,
		Time:          in.Time,
		Status:        string(domain.InitialStatus()),
		Services:      services,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsKind(err, httperr.KindSlotUnavailable) {
			uc.audit.Dispatch(audit.Event{
				BranchID: in.BranchID,
				UserID:   &in.CustomerID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"date": in.Date, "time": in.Time, "staff_id": in.StaffID},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
