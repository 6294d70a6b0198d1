package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"pending to scheduled", StatusPending, StatusScheduled, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to in_progress", StatusPending, StatusInProgress, false},
		{"scheduled to in_progress", StatusScheduled, StatusInProgress, true},
		{"scheduled to completed", StatusScheduled, StatusCompleted, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled to pending", StatusScheduled, StatusPending, false},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"in_progress to scheduled", StatusInProgress, StatusScheduled, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed to scheduled", StatusCompleted, StatusScheduled, false},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
		{"cancelled to completed", StatusCancelled, StatusCompleted, false},
		{"self transition rejected", StatusScheduled, StatusScheduled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusScheduled))
	assert.False(t, IsTerminal(StatusInProgress))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, IsValidStatus(s), string(s))
	}
	assert.False(t, IsValidStatus(Status("done")))
	assert.False(t, IsValidStatus(Status("")))
}

func TestApplyStatusStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
	assert.Nil(t, ap.CompletedAt)

	ap = &models.Appointment{Status: string(StatusInProgress)}
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	// a terminal appointment never moves again
	err := Cancel(ap, now)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	assert.Equal(t, string(StatusCompleted), ap.Status)
}
