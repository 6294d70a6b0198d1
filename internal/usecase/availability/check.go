package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type Input struct {
	BranchID uint
	StaffID  uint
	Date     time.Time
	Time     string

	// ExcludeAppointmentID skips one appointment in the slot-conflict
	// check, so moving an appointment onto its own slot is not a
	// conflict with itself.
	ExcludeAppointmentID uint
}

// ======================================================
// USE CASE
// ======================================================

// Checker is the availability resolver: the single decision function
// every booking-affecting mutation consults. It is read-only and
// idempotent; the atomic reservation happens in the repository.
type Checker struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewChecker(repo domain.Repository, clk clock.Clock) *Checker {
	return &Checker{repo: repo, clock: clk}
}

// ======================================================
// EXECUTE
// ======================================================

// Check runs the five availability rules in order and short-circuits
// on the first failure so the verdict carries the most specific reason.
func (uc *Checker) Check(ctx context.Context, in Input) (domain.Verdict, error) {

	if _, err := domain.ClockMinutes(in.Time); err != nil {
		return domain.Verdict{}, httperr.Validation("invalid_time", "Time must be in HH:MM format.")
	}

	branch, err := uc.repo.GetBranchByID(ctx, in.BranchID)
	if err != nil {
		return domain.Verdict{}, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	// 1. Not in the past. Same-day bookings are allowed.
	today := domain.DateOnly(uc.clock.Now().In(timezone.Location(branch.Timezone)))
	if in.Date.Before(today) && !domain.SameDate(in.Date, today) {
		return domain.Unavailable(domain.CodePastDate, domain.ReasonPastDate), nil
	}

	// 2. Branch open that weekday, and no mandatory holiday. Optional
	// holidays are informational and never block booking.
	hours, err := uc.repo.GetBusinessHours(ctx, in.BranchID, int(in.Date.Weekday()))
	if err != nil {
		return domain.Verdict{}, err
	}
	if hours == nil || hours.IsClosed {
		return domain.Unavailable(domain.CodeSalonClosed, domain.ReasonClosedDay), nil
	}

	holiday, err := uc.repo.FindHolidayOn(ctx, in.BranchID, in.Date)
	if err != nil {
		return domain.Verdict{}, err
	}
	if holiday != nil && !holiday.IsOptional {
		return domain.Unavailable(
			domain.CodeHoliday,
			fmt.Sprintf("Salon is closed for %s", holiday.Name),
		), nil
	}

	// 3. Time within [opening, closing) and outside the lunch window.
	verdict, err := uc.checkWindow(hours, in.Time)
	if err != nil {
		return domain.Verdict{}, err
	}
	if !verdict.Available {
		return verdict, nil
	}

	// 4. Staff not on approved leave. Pending or rejected leave never
	// blocks availability.
	onLeave, err := uc.repo.HasApprovedLeave(ctx, in.StaffID, in.Date)
	if err != nil {
		return domain.Verdict{}, err
	}
	if onLeave {
		return domain.Unavailable(domain.CodeStaffOnLeave, domain.ReasonOnLeave), nil
	}

	// 5. Slot not already booked.
	conflict, err := uc.repo.FindConflict(ctx, in.StaffID, in.Date, in.Time, in.ExcludeAppointmentID)
	if err != nil {
		return domain.Verdict{}, err
	}
	if conflict != nil {
		return domain.Unavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken), nil
	}

	return domain.Available(), nil
}

func (uc *Checker) checkWindow(hours *models.BusinessHours, clockTime string) (domain.Verdict, error) {
	t, err := domain.ClockMinutes(clockTime)
	if err != nil {
		return domain.Verdict{}, err
	}

	open, err := domain.ClockMinutes(hours.OpeningTime)
	if err != nil {
		return domain.Verdict{}, err
	}
	closing, err := domain.ClockMinutes(hours.ClosingTime)
	if err != nil {
		return domain.Verdict{}, err
	}

	outsideHours := domain.Unavailable(
		domain.CodeOutsideHours,
		fmt.Sprintf("Salon is open from %s to %s", hours.OpeningTime, hours.ClosingTime),
	)

	if t < open || t >= closing {
		return outsideHours, nil
	}

	if hours.LunchStart != "" && hours.LunchEnd != "" {
		lunchStart, err := domain.ClockMinutes(hours.LunchStart)
		if err != nil {
			return domain.Verdict{}, err
		}
		lunchEnd, err := domain.ClockMinutes(hours.LunchEnd)
		if err != nil {
			return domain.Verdict{}, err
		}

		if t >= lunchStart && t < lunchEnd {
			return outsideHours, nil
		}
	}

	return domain.Available(), nil
}
