package schedule

import (
	"context"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Branch / calendar rules --------
	GetBranchByID(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	GetBusinessHours(
		ctx context.Context,
		branchID uint,
		weekday int,
	) (*models.BusinessHours, error)

	ListBusinessHours(
		ctx context.Context,
		branchID uint,
	) ([]models.BusinessHours, error)

	UpsertBusinessHours(
		ctx context.Context,
		hours *models.BusinessHours,
	) error

	// FindHolidayOn returns the holiday covering date, or nil.
	FindHolidayOn(
		ctx context.Context,
		branchID uint,
		date time.Time,
	) (*models.Holiday, error)

	// -------- Staff / catalog --------
	GetStaff(
		ctx context.Context,
		staffID uint,
	) (*models.Staff, error)

	GetService(
		ctx context.Context,
		branchID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Leave ledger --------
	HasApprovedLeave(
		ctx context.Context,
		staffID uint,
		date time.Time,
	) (bool, error)

	// FindOverlappingLeave returns a non-rejected request whose
	// inclusive range intersects [start, end], or nil.
	FindOverlappingLeave(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) (*models.LeaveRequest, error)

	CreateLeaveRequest(
		ctx context.Context,
		req *models.LeaveRequest,
	) error

	GetLeaveRequest(
		ctx context.Context,
		id uint,
	) (*models.LeaveRequest, error)

	UpdateLeaveRequest(
		ctx context.Context,
		req *models.LeaveRequest,
	) error

	// -------- Booking ledger --------

	// FindConflict returns the non-cancelled appointment occupying
	// the exact (staff, date, time) slot, or nil. excludeID skips the
	// appointment being moved so a no-op move is not its own conflict.
	FindConflict(
		ctx context.Context,
		staffID uint,
		date time.Time,
		clockTime string,
		excludeID uint,
	) (*models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForBranch fetches an appointment scoped to its
	// branch; an ID belonging to another branch reads as not found.
	GetAppointmentForBranch(
		ctx context.Context,
		id uint,
		branchID uint,
	) (*models.Appointment, error)

	ListAppointmentsForDay(
		ctx context.Context,
		staffID uint,
		date time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		branchID uint,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// CreateAppointment re-checks the slot under lock and inserts in
	// one transaction. A taken slot surfaces as a slot conflict, not
	// a raw storage error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// MoveAppointment re-checks the target slot under lock and saves
	// the mutated appointment in one transaction.
	MoveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Reschedule workflow --------
	FindPendingReschedule(
		ctx context.Context,
		appointmentID uint,
	) (*models.RescheduleRequest, error)

	CreateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
	) error

	GetRescheduleRequest(
		ctx context.Context,
		id uint,
	) (*models.RescheduleRequest, error)

	UpdateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
	) error
}
