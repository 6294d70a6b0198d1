package models

import "time"

// RescheduleRequest is a customer-proposed move of an existing
// appointment that only takes effect once an admin approves it.
type RescheduleRequest struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	// Snapshot of the slot at proposal time.
	OriginalDate time.Time `gorm:"type:date;not null" json:"original_date"`
	OriginalTime string    `gorm:"size:5;not null" json:"original_time"`

	NewDate time.Time `gorm:"type:date;not null" json:"new_date"`
	NewTime string    `gorm:"size:5;not null" json:"new_time"`

	Reason string `gorm:"size:255" json:"reason"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	AdminNotes string     `gorm:"size:255" json:"admin_notes"`
	DecidedBy  *uint      `json:"decided_by"`
	DecidedAt  *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
