package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/domain/schedule/scheduletest"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newLeaveFixture(t *testing.T) (*scheduletest.Repo, uint, uint) {
	t.Helper()

	repo := scheduletest.NewRepo()
	branch := repo.AddBranch(&models.Branch{Name: "Downtown", Timezone: "UTC"})
	staff := repo.AddStaff(&models.Staff{
		UserID:          42,
		PrimaryBranchID: branch.ID,
		Available:       true,
	})
	return repo, staff.ID, branch.ID
}

func TestSubmitLeaveRequest(t *testing.T) {
	repo, staffID, _ := newLeaveFixture(t)
	uc := NewSubmitRequest(repo, nil)

	req, err := uc.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
		Reason:    "family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.NotZero(t, req.ID)
}

func TestSubmitLeaveRequestValidation(t *testing.T) {
	repo, staffID, _ := newLeaveFixture(t)
	uc := NewSubmitRequest(repo, nil)

	_, err := uc.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-12",
		EndDate:   "2026-03-10",
	})
	assert.True(t, httperr.IsCode(err, "invalid_date_range"))

	_, err = uc.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "10/03/2026",
		EndDate:   "2026-03-12",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = uc.Execute(context.Background(), SubmitInput{
		StaffID:   4242,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestSubmitLeaveRequestOverlap(t *testing.T) {
	repo, staffID, _ := newLeaveFixture(t)
	uc := NewSubmitRequest(repo, nil)

	_, err := uc.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	require.NoError(t, err)

	// Pending requests block overlapping submissions too.
	_, err = uc.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-12",
		EndDate:   "2026-03-15",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, httperr.IsCode(err, "leave_overlap"))

	// A disjoint range is fine.
	_, err = uc.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-20",
		EndDate:   "2026-03-21",
	})
	assert.NoError(t, err)
}

func TestSubmitLeaveRequestAfterRejection(t *testing.T) {
	repo, staffID, branchID := newLeaveFixture(t)
	submit := NewSubmitRequest(repo, nil)
	decide := NewDecideRequest(repo, clock.Fixed{T: testNow}, nil)

	first, err := submit.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	require.NoError(t, err)

	_, err = decide.Execute(context.Background(), first.ID, branchID, 1, false, "short staffed")
	require.NoError(t, err)

	// A rejected request frees its date range.
	_, err = submit.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	assert.NoError(t, err)
}

func TestDecideLeaveRequest(t *testing.T) {
	repo, staffID, branchID := newLeaveFixture(t)
	submit := NewSubmitRequest(repo, nil)
	decide := NewDecideRequest(repo, clock.Fixed{T: testNow}, nil)

	req, err := submit.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	require.NoError(t, err)

	approved, err := decide.Execute(context.Background(), req.ID, branchID, 9, true, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, uint(9), *approved.DecidedBy)
	assert.Equal(t, testNow, *approved.DecidedAt)

	// Deciding twice is rejected.
	_, err = decide.Execute(context.Background(), req.ID, branchID, 9, false, "changed my mind")
	assert.True(t, httperr.IsCode(err, "leave_request_not_pending"))

	// Approved leave now blocks availability on the covered dates.
	onLeave, err := repo.HasApprovedLeave(context.Background(), staffID, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, onLeave)
}

// A manager of another branch cannot decide the request; it reads as
// not found and stays pending.
func TestDecideLeaveRequestWrongBranch(t *testing.T) {
	repo, staffID, branchID := newLeaveFixture(t)
	submit := NewSubmitRequest(repo, nil)
	decide := NewDecideRequest(repo, clock.Fixed{T: testNow}, nil)

	req, err := submit.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	require.NoError(t, err)

	_, err = decide.Execute(context.Background(), req.ID, branchID+1, 9, true, "")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	stored, err := repo.GetLeaveRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, stored.Status)
}

func TestDecideLeaveRequestRejection(t *testing.T) {
	repo, staffID, branchID := newLeaveFixture(t)
	submit := NewSubmitRequest(repo, nil)
	decide := NewDecideRequest(repo, clock.Fixed{T: testNow}, nil)

	req, err := submit.Execute(context.Background(), SubmitInput{
		StaffID:   staffID,
		StartDate: "2026-03-10",
		EndDate:   "2026-03-12",
	})
	require.NoError(t, err)

	rejected, err := decide.Execute(context.Background(), req.ID, branchID, 9, false, "short staffed")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, rejected.Status)
	assert.Equal(t, "short staffed", rejected.RejectionReason)

	onLeave, err := repo.HasApprovedLeave(context.Background(), staffID, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, onLeave)
}
