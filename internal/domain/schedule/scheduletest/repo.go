// Package scheduletest provides an in-memory schedule.Repository for
// use-case tests.
package scheduletest

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type Repo struct {
	Branches     map[uint]*models.Branch
	Hours        map[uint]map[int]*models.BusinessHours
	Holidays     []*models.Holiday
	Staff        map[uint]*models.Staff
	Services     map[uint]*models.Service
	Leaves       []*models.LeaveRequest
	Appointments []*models.Appointment
	Reschedules  []*models.RescheduleRequest

	nextID uint
}

func NewRepo() *Repo {
	return &Repo{
		Branches: map[uint]*models.Branch{},
		Hours:    map[uint]map[int]*models.BusinessHours{},
		Staff:    map[uint]*models.Staff{},
		Services: map[uint]*models.Service{},
	}
}

func (r *Repo) nextSeq() uint {
	r.nextID++
	return r.nextID
}

// -------- Seed helpers --------

func (r *Repo) AddBranch(b *models.Branch) *models.Branch {
	if b.ID == 0 {
		b.ID = r.nextSeq()
	}
	r.Branches[b.ID] = b
	return b
}

func (r *Repo) AddStaff(s *models.Staff) *models.Staff {
	if s.ID == 0 {
		s.ID = r.nextSeq()
	}
	r.Staff[s.ID] = s
	return s
}

func (r *Repo) AddService(s *models.Service) *models.Service {
	if s.ID == 0 {
		s.ID = r.nextSeq()
	}
	r.Services[s.ID] = s
	return s
}

// SetOpenHours configures the same window for weekdays, marking the
// rest of the week closed.
func (r *Repo) SetOpenHours(branchID uint, weekdays []time.Weekday, opening, closing string) {
	if r.Hours[branchID] == nil {
		r.Hours[branchID] = map[int]*models.BusinessHours{}
	}

	open := map[int]bool{}
	for _, wd := range weekdays {
		open[int(wd)] = true
	}

	for wd := 0; wd < 7; wd++ {
		r.Hours[branchID][wd] = &models.BusinessHours{
			BranchID:    branchID,
			Weekday:     wd,
			OpeningTime: opening,
			ClosingTime: closing,
			IsClosed:    !open[wd],
		}
	}
}

// -------- Branch / calendar rules --------

func (r *Repo) GetBranchByID(_ context.Context, id uint) (*models.Branch, error) {
	if b, ok := r.Branches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) GetBusinessHours(_ context.Context, branchID uint, weekday int) (*models.BusinessHours, error) {
	if days, ok := r.Hours[branchID]; ok {
		if h, ok := days[weekday]; ok {
			return h, nil
		}
	}
	return nil, nil
}

func (r *Repo) ListBusinessHours(_ context.Context, branchID uint) ([]models.BusinessHours, error) {
	var out []models.BusinessHours
	for wd := 0; wd < 7; wd++ {
		if h, ok := r.Hours[branchID][wd]; ok {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *Repo) UpsertBusinessHours(_ context.Context, hours *models.BusinessHours) error {
	if r.Hours[hours.BranchID] == nil {
		r.Hours[hours.BranchID] = map[int]*models.BusinessHours{}
	}
	if hours.ID == 0 {
		hours.ID = r.nextSeq()
	}
	cp := *hours
	r.Hours[hours.BranchID][hours.Weekday] = &cp
	return nil
}

func (r *Repo) FindHolidayOn(_ context.Context, branchID uint, date time.Time) (*models.Holiday, error) {
	for _, h := range r.Holidays {
		if h.BranchID == branchID && domain.SameDate(h.Date, date) {
			return h, nil
		}
	}
	return nil, nil
}

// -------- Staff / catalog --------

func (r *Repo) GetStaff(_ context.Context, staffID uint) (*models.Staff, error) {
	if s, ok := r.Staff[staffID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) GetService(_ context.Context, branchID, serviceID uint) (*models.Service, error) {
	if s, ok := r.Services[serviceID]; ok && s.BranchID == branchID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// -------- Leave ledger --------

func (r *Repo) HasApprovedLeave(_ context.Context, staffID uint, date time.Time) (bool, error) {
	for _, l := range r.Leaves {
		if l.StaffID == staffID && l.Status == domain.RequestApproved &&
			domain.Overlaps(l.StartDate, l.EndDate, date, date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repo) FindOverlappingLeave(_ context.Context, staffID uint, start, end time.Time) (*models.LeaveRequest, error) {
	for _, l := range r.Leaves {
		if l.StaffID == staffID && l.Status != domain.RequestRejected &&
			domain.Overlaps(l.StartDate, l.EndDate, start, end) {
			return l, nil
		}
	}
	return nil, nil
}

func (r *Repo) CreateLeaveRequest(_ context.Context, req *models.LeaveRequest) error {
	req.ID = r.nextSeq()
	r.Leaves = append(r.Leaves, req)
	return nil
}

func (r *Repo) GetLeaveRequest(_ context.Context, id uint) (*models.LeaveRequest, error) {
	for _, l := range r.Leaves {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) UpdateLeaveRequest(_ context.Context, req *models.LeaveRequest) error {
	for i, l := range r.Leaves {
		if l.ID == req.ID {
			r.Leaves[i] = req
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// -------- Booking ledger --------

func (r *Repo) FindConflict(_ context.Context, staffID uint, date time.Time, clockTime string, excludeID uint) (*models.Appointment, error) {
	return r.findSlotHolder(staffID, date, clockTime, excludeID), nil
}

func (r *Repo) findSlotHolder(staffID uint, date time.Time, clockTime string, excludeID uint) *models.Appointment {
	for _, ap := range r.Appointments {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if ap.StaffID == staffID &&
			domain.SameDate(ap.Date, date) &&
			ap.Time == clockTime &&
			ap.Status != string(domain.StatusCancelled) {
			return ap
		}
	}
	return nil
}

func (r *Repo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range r.Appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) GetAppointmentForBranch(_ context.Context, id uint, branchID uint) (*models.Appointment, error) {
	for _, ap := range r.Appointments {
		if ap.ID == id && ap.BranchID == branchID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) ListAppointmentsForDay(_ context.Context, staffID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.Appointments {
		if ap.StaffID == staffID &&
			domain.SameDate(ap.Date, date) &&
			ap.Status != string(domain.StatusCancelled) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *Repo) ListAppointmentsForPeriod(_ context.Context, branchID, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.Appointments {
		if branchID != 0 && ap.BranchID != branchID {
			continue
		}
		if staffID != 0 && ap.StaffID != staffID {
			continue
		}
		if ap.Date.Before(from) || !ap.Date.Before(to) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *Repo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.findSlotHolder(ap.StaffID, ap.Date, ap.Time, 0) != nil {
		return httperr.SlotUnavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken)
	}

	ap.ID = r.nextSeq()
	for i := range ap.Services {
		ap.Services[i].ID = r.nextSeq()
		ap.Services[i].AppointmentID = ap.ID
	}

	r.Appointments = append(r.Appointments, ap)
	return nil
}

func (r *Repo) MoveAppointment(_ context.Context, ap *models.Appointment) error {
	if r.findSlotHolder(ap.StaffID, ap.Date, ap.Time, ap.ID) != nil {
		return httperr.SlotUnavailable(domain.CodeSlotTaken, domain.ReasonSlotTaken)
	}
	return r.UpdateAppointment(context.Background(), ap)
}

func (r *Repo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range r.Appointments {
		if existing.ID == ap.ID {
			r.Appointments[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// -------- Reschedule workflow --------

func (r *Repo) FindPendingReschedule(_ context.Context, appointmentID uint) (*models.RescheduleRequest, error) {
	for _, req := range r.Reschedules {
		if req.AppointmentID == appointmentID && req.Status == domain.RequestPending {
			return req, nil
		}
	}
	return nil, nil
}

func (r *Repo) CreateRescheduleRequest(_ context.Context, req *models.RescheduleRequest) error {
	req.ID = r.nextSeq()
	r.Reschedules = append(r.Reschedules, req)
	return nil
}

func (r *Repo) GetRescheduleRequest(_ context.Context, id uint) (*models.RescheduleRequest, error) {
	for _, req := range r.Reschedules {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) UpdateRescheduleRequest(_ context.Context, req *models.RescheduleRequest) error {
	for i, existing := range r.Reschedules {
		if existing.ID == req.ID {
			r.Reschedules[i] = req
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// Compile-time check
var _ domain.Repository = (*Repo)(nil)
