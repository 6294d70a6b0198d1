package availability

import (
	"context"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type SlotsInput struct {
	BranchID  uint
	StaffID   uint
	ServiceID uint
	Date      time.Time
}

// ListFreeSlots walks the day in service-duration steps and returns
// the bookable grid for the public booking page. Purely advisory; the
// booking path always re-validates through Check and the transactional
// slot reservation.
type ListFreeSlots struct {
	repo    domain.Repository
	checker *Checker
}

func NewListFreeSlots(repo domain.Repository, clk clock.Clock) *ListFreeSlots {
	return &ListFreeSlots{
		repo:    repo,
		checker: NewChecker(repo, clk),
	}
}

func (uc *ListFreeSlots) Execute(
	ctx context.Context,
	in SlotsInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.BranchID, in.ServiceID)
	if err != nil {
		return nil, httperr.NotFoundErr("service_not_found", "Service not found.")
	}

	hours, err := uc.repo.GetBusinessHours(ctx, in.BranchID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}
	if hours == nil || hours.IsClosed {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	step := service.DurationMin
	if step <= 0 {
		step = 30
	}

	open, err := domain.ClockMinutes(hours.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := domain.ClockMinutes(hours.ClosingTime)
	if err != nil {
		return nil, err
	}

	var slots []domain.TimeSlot

	for cur := open; cur+step <= closing; cur += step {
		start := minutesToClock(cur)

		verdict, err := uc.checker.Check(ctx, Input{
			BranchID: in.BranchID,
			StaffID:  in.StaffID,
			Date:     in.Date,
			Time:     start,
		})
		if err != nil {
			return nil, err
		}
		if !verdict.Available {
			continue
		}

		if overlapsBooking(cur, cur+step, appointments) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start: start,
			End:   minutesToClock(cur + step),
		})
	}

	if slots == nil {
		slots = []domain.TimeSlot{}
	}

	return slots, nil
}

// overlapsBooking treats each existing appointment as occupying
// [time, time + total service duration) for grid purposes.
func overlapsBooking(start, end int, appointments []models.Appointment) bool {
	for _, ap := range appointments {
		apStart, err := domain.ClockMinutes(ap.Time)
		if err != nil {
			continue
		}

		length := 0
		for _, svc := range ap.Services {
			length += svc.DurationMin
		}
		if length <= 0 {
			length = 30
		}

		if domain.WindowsOverlap(start, end, apStart, apStart+length) {
			return true
		}
	}

	return false
}

func minutesToClock(m int) string {
	return time.Date(2000, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}
