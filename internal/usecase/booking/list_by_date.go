package booking

import (
	"context"
	"time"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/dto"
)

type ListByDate struct {
	repo domain.Repository
}

func NewListByDate(repo domain.Repository) *ListByDate {
	return &ListByDate{repo: repo}
}

func (uc *ListByDate) Execute(
	ctx context.Context,
	branchID uint,
	staffID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := domain.DateOnly(date)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, branchID, staffID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
