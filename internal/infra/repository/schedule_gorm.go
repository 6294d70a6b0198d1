package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

const dateFormat = "2006-01-02"

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Branch / calendar rules
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBranchByID(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *ScheduleGormRepository) GetBusinessHours(
	ctx context.Context,
	branchID uint,
	weekday int,
) (*models.BusinessHours, error) {

	var hours models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND weekday = ?", branchID, weekday).
		First(&hours).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &hours, nil
}

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
	branchID uint,
) ([]models.BusinessHours, error) {

	var hours []models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *ScheduleGormRepository) UpsertBusinessHours(
	ctx context.Context,
	hours *models.BusinessHours,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "branch_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"opening_time", "closing_time",
				"lunch_start", "lunch_end",
				"is_closed", "updated_at",
			}),
		}).
		Create(hours).Error
}

func (r *ScheduleGormRepository) FindHolidayOn(
	ctx context.Context,
	branchID uint,
	date time.Time,
) (*models.Holiday, error) {

	var holiday models.Holiday
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date.Format(dateFormat)).
		First(&holiday).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &holiday, nil
}

// --------------------------------------------------
// Staff / catalog
// --------------------------------------------------

func (r *ScheduleGormRepository) GetStaff(
	ctx context.Context,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&staff, staffID).Error; err != nil {
		return nil, err
	}

	return &staff, nil
}

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	branchID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND branch_id = ?", serviceID, branchID).
		First(&service).Error; err != nil {
		return nil, err
	}

	return &service, nil
}

// --------------------------------------------------
// Leave ledger
// --------------------------------------------------

func (r *ScheduleGormRepository) HasApprovedLeave(
	ctx context.Context,
	staffID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeaveRequest{}).
		Where(
			"staff_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			staffID, domain.RequestApproved,
			date.Format(dateFormat), date.Format(dateFormat),
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ScheduleGormRepository) FindOverlappingLeave(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) (*models.LeaveRequest, error) {

	var req models.LeaveRequest
	err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND status <> ? AND start_date <= ? AND end_date >= ?",
			staffID, domain.RequestRejected,
			end.Format(dateFormat), start.Format(dateFormat),
		).
		First(&req).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *ScheduleGormRepository) CreateLeaveRequest(
	ctx context.Context,
	req *models.LeaveRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ScheduleGormRepository) GetLeaveRequest(
	ctx context.Context,
	id uint,
) (*models.LeaveRequest, error) {

	var req models.LeaveRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *ScheduleGormRepository) UpdateLeaveRequest(
	ctx context.Context,
	req *models.LeaveRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// --------------------------------------------------
// Booking ledger
// --------------------------------------------------

func (r *ScheduleGormRepository) FindConflict(
	ctx context.Context,
	staffID uint,
	date time.Time,
	clockTime string,
	excludeID uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND date = ? AND time = ? AND status <> ?",
			staffID, date.Format(dateFormat), clockTime,
			string(domain.StatusCancelled),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var ap models.Appointment
	err := q.First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentForBranch(
	ctx context.Context,
	id uint,
	branchID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND branch_id = ?", id, branchID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	staffID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND date = ? AND status <> ?",
			staffID, date.Format(dateFormat),
			string(domain.StatusCancelled),
		).
		Order("time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	branchID uint,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services").
		Where("date >= ? AND date < ?", from.Format(dateFormat), to.Format(dateFormat))

	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var aps []models.Appointment
	if err := q.Order("date ASC, time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// lockSlotConflicts counts non-cancelled rows holding the slot,
// excluding excludeID, under SELECT FOR UPDATE.
func lockSlotConflicts(
	tx *gorm.DB,
	staffID uint,
	date time.Time,
	clockTime string,
	excludeID uint,
) (int64, error) {

	q := tx.Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND date = ? AND time = ? AND status <> ?",
			staffID, date.Format(dateFormat), clockTime,
			string(domain.StatusCancelled),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := lockSlotConflicts(tx, ap.StaffID, ap.Date, ap.Time, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.SlotUnavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken)
		}

		return tx.Create(ap).Error
	})

	// The partial unique slot index is the backstop for races the
	// lock did not cover; never leak the raw constraint error.
	if httperr.IsUniqueViolation(err) {
		return httperr.SlotUnavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken)
	}

	return err
}

func (r *ScheduleGormRepository) MoveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := lockSlotConflicts(tx, ap.StaffID, ap.Date, ap.Time, ap.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.SlotUnavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken)
		}

		return tx.Save(ap).Error
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.SlotUnavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken)
	}

	return err
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Reschedule workflow
// --------------------------------------------------

func (r *ScheduleGormRepository) FindPendingReschedule(
	ctx context.Context,
	appointmentID uint,
) (*models.RescheduleRequest, error) {

	var req models.RescheduleRequest
	err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND status = ?", appointmentID, domain.RequestPending).
		First(&req).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *ScheduleGormRepository) CreateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ScheduleGormRepository) GetRescheduleRequest(
	ctx context.Context,
	id uint,
) (*models.RescheduleRequest, error) {

	var req models.RescheduleRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *ScheduleGormRepository) UpdateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
