package booking

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
)

var ny, _ = time.LoadLocation("America/New_York")

// Monday 2026-03-02, 08:00 local.
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, ny)

type fixture struct {
	repo    *scheduletest.Repo
	checker *availability.Checker

	branchID  uint
	staffID   uint
	serviceID uint
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

	return &fixture{
		repo:      repo,
		checker:   availability.NewChecker(repo, clock.Fixed{T: testNow}),
		branchID:  branch.ID,
		staffID:   staff.ID,
		serviceID: service.ID,
	}
}

func (f *fixture) createUC() *CreateAppointment {
	return NewCreateAppointment(f.repo, f.checker, nil)
}

func (f *fixture) input() CreateInput {
	return CreateInput{
		BranchID:   f.branchID,
		StaffID:    f.staffID,
		CustomerID: 7,
		Date:       "2026-03-03",
		Time:       "10:00",
		ServiceIDs: []uint{f.serviceID},
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.NotEmpty(t, ap.Reference)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "10:00", ap.Time)
	require.Len(t, ap.Services, 1)
	assert.Equal(t, "Haircut", ap.Services[0].ServiceName)
	assert.Equal(t, 40.0, ap.Services[0].Price)
	assert.Equal(t, 30, ap.Services[0].DurationMin)
}

func TestCreateAppointmentDoubleBooking(t *testing.T) {
	f := newFixture(t)
	uc := f.createUC()

	_, err := uc.Execute(context.Background(), f.input())
	require.NoError(t, err)

	// Same staff, date and time: exactly one booking survives.
	_, err = uc.Execute(context.Background(), f.input())
	assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))
	assert.True(t, httperr.IsCode(err, domain.CodeSlotTaken))
	assert.Len(t, f.repo.Appointments, 1)
}

func TestCreateAppointmentAfterCancellation(t *testing.T) {
	f := newFixture(t)
	uc := f.createUC()

	first, err := uc.Execute(context.Background(), f.input())
	require.NoError(t, err)

	cancel := NewCancelAppointment(f.repo, clock.Fixed{T: testNow}, nil)
	_, err = cancel.Execute(context.Background(), CancelInput{
		AppointmentID: first.ID,
		BranchID:      f.branchID,
		Reason:        "customer no-show",
		ActorID:       1,
	})
	require.NoError(t, err)

	// The freed slot is bookable again.
	second, err := uc.Execute(context.Background(), f.input())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Reference, second.Reference)
}

func TestCreateAppointmentSnapshotSurvivesCatalogEdit(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.input())
	require.NoError(t, err)

	// Raising the catalog price later never changes the booked total.
	f.repo.Services[f.serviceID].Price = 90
	f.repo.Services[f.serviceID].Name = "Premium Haircut"

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, stored.Services[0].Price)
	assert.Equal(t, "Haircut", stored.Services[0].ServiceName)
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	uc := f.createUC()

	in := f.input()
	in.ServiceIDs = nil
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsCode(err, "missing_services"))

	in = f.input()
	in.Date = "03/03/2026"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	in = f.input()
	in.ServiceIDs = []uint{4242}
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	in = f.input()
	in.Date = "2026-03-08" // closed sunday
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsCode(err, domain.CodeSalonClosed))
	assert.Empty(t, f.repo.Appointments)
}
