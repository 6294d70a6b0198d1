package schedule

import (
	"fmt"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions is the full appointment state machine. Completed and
// cancelled are terminal; cancel is reachable from every live state.
var transitions = map[Status][]Status{
	StatusPending:    {StatusScheduled, StatusCancelled},
	StatusScheduled:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func IsValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from → to is a legal status change.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}

	return httperr.InvalidTransition(
		"invalid_transition",
		fmt.Sprintf("Appointment cannot move from %s to %s.", from, to),
	)
}

func InitialStatus() Status {
	return StatusScheduled
}
