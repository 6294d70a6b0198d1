package reschedule

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
	"github.com/salonsuite/salon-scheduler/internal/usecase/availability"
	"github.com/salonsuite/salon-scheduler/internal/usecase/booking"
)

var ny, _ = time.LoadLocation("America/New_York")

// Monday 2026-03-02, 08:00 local.
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, ny)

type fixture struct {
	repo    *scheduletest.Repo
	propose *Propose
	decide  *Decide

	branchID uint
	staffID  uint

	appointment *models.Appointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := scheduletest.NewRepo()

	branch := repo.AddBranch(&models.Branch{
		Name:     "Downtown",
		Timezone: "America/New_York",
	})
	repo.SetOpenHours(branch.ID, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}, "09:00", "18:00")

	staff := repo.AddStaff(&models.Staff{
		PrimaryBranchID: branch.ID,
		Available:       true,
	})
	service := repo.AddService(&models.Service{
		BranchID:    branch.ID,
		Name:        "Haircut",
		DurationMin: 30,
		Price:       40,
		Active:      true,
	})

	clk := clock.Fixed{T: testNow}
	checker := availability.NewChecker(repo, clk)

	create := booking.NewCreateAppointment(repo, checker, nil)
	ap, err := create.Execute(context.Background(), booking.CreateInput{
		BranchID:   branch.ID,
		StaffID:    staff.ID,
		CustomerID: 7,
		Date:       "2026-03-03",
		Time:       "10:00",
		ServiceIDs: []uint{service.ID},
	})
	require.NoError(t, err)

	rescheduleUC := booking.NewReschedule(repo, checker, nil)

	return &fixture{
		repo:        repo,
		propose:     NewPropose(repo, nil),
		decide:      NewDecide(repo, rescheduleUC, clk, nil),
		branchID:    branch.ID,
		staffID:     staff.ID,
		appointment: ap,
	}
}

func (f *fixture) proposeInput() ProposeInput {
	return ProposeInput{
		AppointmentID: f.appointment.ID,
		BranchID:      f.branchID,
		CustomerID:    7,
		ActorID:       7,
		NewDate:       "2026-03-04",
		NewTime:       "15:00",
		Reason:        "work conflict",
	}
}

func TestProposeReschedule(t *testing.T) {
	f := newFixture(t)

	req, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, "2026-03-03", req.OriginalDate.Format("2006-01-02"))
	assert.Equal(t, "10:00", req.OriginalTime)

	// The appointment itself is untouched until approval.
	stored, _ := f.repo.GetAppointment(context.Background(), f.appointment.ID)
	assert.Equal(t, "10:00", stored.Time)
	assert.Equal(t, "2026-03-03", stored.Date.Format("2006-01-02"))
}

func TestProposeRescheduleSecondPending(t *testing.T) {
	f := newFixture(t)

	_, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	in := f.proposeInput()
	in.NewTime = "16:00"
	_, err = f.propose.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, httperr.IsCode(err, "reschedule_pending"))
}

// A customer cannot file a proposal against someone else's
// appointment, and no caller can reach across branches; both read as
// not found.
func TestProposeRescheduleScoping(t *testing.T) {
	f := newFixture(t)

	in := f.proposeInput()
	in.CustomerID = 8
	in.ActorID = 8
	_, err := f.propose.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	in = f.proposeInput()
	in.BranchID = f.branchID + 1
	_, err = f.propose.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestProposeRescheduleNonScheduled(t *testing.T) {
	f := newFixture(t)

	f.appointment.Status = string(domain.StatusCompleted)

	_, err := f.propose.Execute(context.Background(), f.proposeInput())
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	assert.True(t, httperr.IsCode(err, "appointment_not_scheduled"))
}

func TestDecideApproveMovesAppointment(t *testing.T) {
	f := newFixture(t)

	req, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	decided, err := f.decide.Execute(context.Background(), req.ID, f.branchID, 9, true, "ok")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, decided.Status)
	assert.Equal(t, "ok", decided.AdminNotes)

	stored, _ := f.repo.GetAppointment(context.Background(), f.appointment.ID)
	assert.Equal(t, "2026-03-04", stored.Date.Format("2006-01-02"))
	assert.Equal(t, "15:00", stored.Time)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
}

func TestDecideRejectLeavesAppointment(t *testing.T) {
	f := newFixture(t)

	req, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	decided, err := f.decide.Execute(context.Background(), req.ID, f.branchID, 9, false, "peak day")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, decided.Status)

	stored, _ := f.repo.GetAppointment(context.Background(), f.appointment.ID)
	assert.Equal(t, "2026-03-03", stored.Date.Format("2006-01-02"))
	assert.Equal(t, "10:00", stored.Time)
}

// Another booking grabs the proposed slot between proposal and
// decision. Approval fails, the appointment stays put and the request
// stays pending so the admin can reject it instead.
func TestDecideApproveSlotTaken(t *testing.T) {
	f := newFixture(t)

	req, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	f.repo.Appointments = append(f.repo.Appointments, &models.Appointment{
		ID:      900,
		StaffID: f.staffID,
		Date:    time.Date(2026, 3, 4, 0, 0, 0, 0, ny),
		Time:    "15:00",
		Status:  string(domain.StatusScheduled),
	})

	_, err = f.decide.Execute(context.Background(), req.ID, f.branchID, 9, true, "")
	assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))

	stored, _ := f.repo.GetAppointment(context.Background(), f.appointment.ID)
	assert.Equal(t, "10:00", stored.Time)
	assert.Equal(t, "2026-03-03", stored.Date.Format("2006-01-02"))

	pending, _ := f.repo.GetRescheduleRequest(context.Background(), req.ID)
	assert.Equal(t, domain.RequestPending, pending.Status)

	// the admin can still reject it
	decided, err := f.decide.Execute(context.Background(), req.ID, f.branchID, 9, false, "slot gone")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, decided.Status)
}

// An admin of another branch cannot decide the request; it reads as
// not found and stays pending.
func TestDecideWrongBranch(t *testing.T) {
	f := newFixture(t)

	req, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	_, err = f.decide.Execute(context.Background(), req.ID, f.branchID+1, 9, true, "")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	pending, _ := f.repo.GetRescheduleRequest(context.Background(), req.ID)
	assert.Equal(t, domain.RequestPending, pending.Status)

	stored, _ := f.repo.GetAppointment(context.Background(), f.appointment.ID)
	assert.Equal(t, "10:00", stored.Time)
}

func TestDecideTwice(t *testing.T) {
	f := newFixture(t)

	req, err := f.propose.Execute(context.Background(), f.proposeInput())
	require.NoError(t, err)

	_, err = f.decide.Execute(context.Background(), req.ID, f.branchID, 9, false, "")
	require.NoError(t, err)

	_, err = f.decide.Execute(context.Background(), req.ID, f.branchID, 9, true, "")
	assert.True(t, httperr.IsCode(err, "reschedule_request_not_pending"))
}
