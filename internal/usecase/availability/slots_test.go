package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/salon-scheduler/internal/clock"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

func TestListFreeSlots(t *testing.T) {
	repo, _, branchID, staffID := newFixture(t)
	uc := NewListFreeSlots(repo, clock.Fixed{T: testNow})

	// Narrow the day to keep the grid small: 09:00-11:00, no lunch.
	for wd := 0; wd < 7; wd++ {
		h := repo.Hours[branchID][wd]
		h.OpeningTime = "09:00"
		h.ClosingTime = "11:00"
		h.LunchStart = ""
		h.LunchEnd = ""
	}

	serviceID := uint(0)
	for id := range repo.Services {
		serviceID = id
	}

	slots, err := uc.Execute(context.Background(), SlotsInput{
		BranchID:  branchID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      nyDate(2026, 3, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "10:00", End: "10:30"},
		{Start: "10:30", End: "11:00"},
	}, slots)
}

func TestListFreeSlotsSkipsBookedWindow(t *testing.T) {
	repo, _, branchID, staffID := newFixture(t)
	uc := NewListFreeSlots(repo, clock.Fixed{T: testNow})

	for wd := 0; wd < 7; wd++ {
		h := repo.Hours[branchID][wd]
		h.OpeningTime = "09:00"
		h.ClosingTime = "11:00"
		h.LunchStart = ""
		h.LunchEnd = ""
	}

	serviceID := uint(0)
	for id := range repo.Services {
		serviceID = id
	}

	repo.Appointments = append(repo.Appointments, &models.Appointment{
		ID:      400,
		StaffID: staffID,
		Date:    nyDate(2026, 3, 3),
		Time:    "09:30",
		Status:  string(domain.StatusScheduled),
		Services: []models.AppointmentService{
			{ServiceID: serviceID, DurationMin: 30},
		},
	})

	slots, err := uc.Execute(context.Background(), SlotsInput{
		BranchID:  branchID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      nyDate(2026, 3, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
		{Start: "10:30", End: "11:00"},
	}, slots)
}

func TestListFreeSlotsClosedDay(t *testing.T) {
	repo, _, branchID, staffID := newFixture(t)
	uc := NewListFreeSlots(repo, clock.Fixed{T: testNow})

	serviceID := uint(0)
	for id := range repo.Services {
		serviceID = id
	}

	slots, err := uc.Execute(context.Background(), SlotsInput{
		BranchID:  branchID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      nyDate(2026, 3, 8), // sunday
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}
