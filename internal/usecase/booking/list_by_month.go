package booking

import (
	"context"
	"time"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/dto"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

type ListByMonth struct {
	repo domain.Repository
}

func NewListByMonth(repo domain.Repository) *ListByMonth {
	return &ListByMonth{repo: repo}
}

func (uc *ListByMonth) Execute(
	ctx context.Context,
	branchID uint,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	branch, err := uc.repo.GetBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(branch.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, branchID, staffID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))

	for _, ap := range appointments {
		names := make([]string, 0, len(ap.Services))
		total := 0.0
		for _, svc := range ap.Services {
			names = append(names, svc.ServiceName)
			total += svc.Price
		}

		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Reference:    ap.Reference,
			Date:         ap.Date.Format("2006-01-02"),
			Time:         ap.Time,
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			Services:     names,
			Total:        total,
		})
	}

	return out
}
