package schedule

import (
	"time"

	"github.com/salonsuite/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus validates and applies a status change, stamping the
// cancellation/completion time where the new state demands it.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCompleted, now)
}
