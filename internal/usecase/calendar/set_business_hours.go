package calendar

import (
	"context"
	"fmt"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type DayConfig struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	IsClosed    bool   `json:"is_closed"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	LunchStart  string `json:"lunch_start"`
	LunchEnd    string `json:"lunch_end"`
}

type SetBusinessHours struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetBusinessHours(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetBusinessHours {
	return &SetBusinessHours{
		repo:  repo,
		audit: audit,
	}
}

// Execute upserts weekly opening hours. Every day is validated before
// anything is written, so a bad entry persists nothing.
func (uc *SetBusinessHours) Execute(
	ctx context.Context,
	branchID uint,
	actorID uint,
	days []DayConfig,
) ([]models.BusinessHours, error) {

	if len(days) == 0 {
		return nil, httperr.Validation("missing_days", "At least one day is required.")
	}

	for _, d := range days {
		if err := validateDay(d); err != nil {
			return nil, err
		}
	}

	if _, err := uc.repo.GetBranchByID(ctx, branchID); err != nil {
		return nil, httperr.NotFoundErr("branch_not_found", "Branch not found.")
	}

	out := make([]models.BusinessHours, 0, len(days))
	for _, d := range days {
		hours := models.BusinessHours{
			BranchID:    branchID,
			Weekday:     d.Weekday,
			IsClosed:    d.IsClosed,
			OpeningTime: d.OpeningTime,
			ClosingTime: d.ClosingTime,
			LunchStart:  d.LunchStart,
			LunchEnd:    d.LunchEnd,
		}

		if err := uc.repo.UpsertBusinessHours(ctx, &hours); err != nil {
			return nil, err
		}

		out = append(out, hours)
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &actorID,
		Action:   "business_hours_updated",
		Entity:   "business_hours",
		Metadata: map[string]any{"days": len(days)},
	})

	return out, nil
}

func validateDay(d DayConfig) error {
	if d.Weekday < 0 || d.Weekday > 6 {
		return httperr.Validation("invalid_weekday", "Weekday must be between 0 and 6.")
	}

	if d.IsClosed {
		return nil
	}

	open, err := domain.ClockMinutes(d.OpeningTime)
	if err != nil {
		return httperr.Validation("invalid_opening_time", "Opening time must be in HH:MM format.")
	}

	closing, err := domain.ClockMinutes(d.ClosingTime)
	if err != nil {
		return httperr.Validation("invalid_closing_time", "Closing time must be in HH:MM format.")
	}

	if closing <= open {
		return httperr.Validation(
			"invalid_time_ordering",
			fmt.Sprintf("Closing time must be after opening time on weekday %d.", d.Weekday),
		)
	}

	hasLunchStart := d.LunchStart != ""
	hasLunchEnd := d.LunchEnd != ""
	if hasLunchStart != hasLunchEnd {
		return httperr.Validation("incomplete_lunch_window", "Lunch start and end must be given together.")
	}

	if hasLunchStart {
		lunchStart, err := domain.ClockMinutes(d.LunchStart)
		if err != nil {
			return httperr.Validation("invalid_lunch_start", "Lunch start must be in HH:MM format.")
		}

		lunchEnd, err := domain.ClockMinutes(d.LunchEnd)
		if err != nil {
			return httperr.Validation("invalid_lunch_end", "Lunch end must be in HH:MM format.")
		}

		if lunchEnd <= lunchStart {
			return httperr.Validation("invalid_lunch_ordering", "Lunch end must be after lunch start.")
		}

		if lunchStart < open || lunchEnd > closing {
			return httperr.Validation(
				"lunch_outside_hours",
				"Lunch window must fall within opening hours.",
			)
		}
	}

	return nil
}
