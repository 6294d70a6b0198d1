package models

import "time"

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	StaffID uint  `json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	// A slot is the exact (staff, date, time) triple; a partial unique
	// index over non-cancelled rows enforces one booking per slot.
	Date time.Time `gorm:"type:date;not null" json:"date"`
	Time string    `gorm:"size:5;not null" json:"time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Services []AppointmentService `json:"services"`

	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"payment_status"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	Notes         string `gorm:"size:255" json:"notes"`

	Rating *int   `json:"rating"`
	Review string `gorm:"size:500" json:"review"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService links an appointment to a catalog service with the
// name, price and duration frozen at booking time.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	ServiceName string  `gorm:"size:100" json:"service_name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
}
