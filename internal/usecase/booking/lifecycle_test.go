package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/usecase/availability"
)

func TestUpdateStatusFullLifecycle(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	uc := NewUpdateStatus(f.repo, clock.Fixed{T: testNow}, nil)

	ap, err = uc.Execute(context.Background(), ap.ID, f.branchID, string(domain.StatusInProgress), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), ap.Status)

	ap, err = uc.Execute(context.Background(), ap.ID, f.branchID, string(domain.StatusCompleted), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	// completed is terminal
	_, err = uc.Execute(context.Background(), ap.ID, f.branchID, string(domain.StatusScheduled), 1)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

	_, err = uc.Execute(context.Background(), ap.ID, f.branchID, "done", 1)
	assert.True(t, httperr.IsCode(err, "invalid_status"))
}

func TestUpdateStatusWrongBranch(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	uc := NewUpdateStatus(f.repo, clock.Fixed{T: testNow}, nil)

	_, err = uc.Execute(context.Background(), ap.ID, f.branchID+1, string(domain.StatusInProgress), 1)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	stored, _ := f.repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
}

func TestReassignStaff(t *testing.T) {
	f := newFixture(t)

	other := f.repo.AddStaff(&models.Staff{
		PrimaryBranchID: f.branchID,
		Available:       true,
	})

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	uc := NewReassignStaff(f.repo, f.checker, nil)

	moved, err := uc.Execute(context.Background(), ap.ID, f.branchID, other.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.StaffID)
	assert.Equal(t, ap.Time, moved.Time)
}

func TestReassignStaffBusyTarget(t *testing.T) {
	f := newFixture(t)

	other := f.repo.AddStaff(&models.Staff{
		PrimaryBranchID: f.branchID,
		Available:       true,
	})

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	// Target staff already holds the same slot.
	in := f.input()
	in.StaffID = other.ID
	_, err = f.createUC().Execute(context.Background(), in)
	require.NoError(t, err)

	uc := NewReassignStaff(f.repo, f.checker, nil)
	_, err = uc.Execute(context.Background(), ap.ID, f.branchID, other.ID, 1)
	assert.True(t, httperr.IsCode(err, domain.CodeSlotTaken))

	stored, _ := f.repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, f.staffID, stored.StaffID)
}

func TestRescheduleMovesSlot(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	uc := NewReschedule(f.repo, f.checker, nil)

	moved, err := uc.Execute(context.Background(), ap.ID, f.branchID, "2026-03-04", "15:00", 1)
	require.NoError(t, err)
	assert.Equal(t, "15:00", moved.Time)
	assert.Equal(t, "2026-03-04", moved.Date.Format("2006-01-02"))
	assert.Equal(t, string(domain.StatusScheduled), moved.Status)

	// old slot is free again
	verdict, err := f.checker.Check(context.Background(), availability.Input{
		BranchID: f.branchID,
		StaffID:  f.staffID,
		Date:     time.Date(2026, 3, 3, 0, 0, 0, 0, ny),
		Time:     "10:00",
	})
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

// An appointment is never its own conflict: moving it onto the slot it
// already holds succeeds instead of reporting the slot as taken.
func TestRescheduleToOwnSlot(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	uc := NewReschedule(f.repo, f.checker, nil)

	moved, err := uc.Execute(
		context.Background(),
		ap.ID,
		f.branchID,
		ap.Date.Format("2006-01-02"),
		ap.Time,
		1,
	)
	require.NoError(t, err)
	assert.Equal(t, ap.Time, moved.Time)
	assert.Equal(t, string(domain.StatusScheduled), moved.Status)
}

func TestRescheduleTerminalAppointment(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	cancel := NewCancelAppointment(f.repo, clock.Fixed{T: testNow}, nil)
	_, err = cancel.Execute(context.Background(), CancelInput{
		AppointmentID: ap.ID,
		BranchID:      f.branchID,
		ActorID:       1,
	})
	require.NoError(t, err)

	uc := NewReschedule(f.repo, f.checker, nil)
	_, err = uc.Execute(context.Background(), ap.ID, f.branchID, "2026-03-04", "15:00", 1)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

// A caller from another branch cannot touch the appointment at all;
// the ID reads as not found and nothing changes.
func TestCancelWrongBranch(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	cancel := NewCancelAppointment(f.repo, clock.Fixed{T: testNow}, nil)
	_, err = cancel.Execute(context.Background(), CancelInput{
		AppointmentID: ap.ID,
		BranchID:      f.branchID + 1,
		ActorID:       999,
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	stored, _ := f.repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
}

// A customer can cancel their own appointment but not another
// customer's, even inside the same branch.
func TestCancelCustomerOwnership(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	cancel := NewCancelAppointment(f.repo, clock.Fixed{T: testNow}, nil)

	_, err = cancel.Execute(context.Background(), CancelInput{
		AppointmentID: ap.ID,
		BranchID:      f.branchID,
		CustomerID:    ap.CustomerID + 1,
		ActorID:       ap.CustomerID + 1,
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	got, err := cancel.Execute(context.Background(), CancelInput{
		AppointmentID: ap.ID,
		BranchID:      f.branchID,
		CustomerID:    ap.CustomerID,
		ActorID:       ap.CustomerID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}
