package models

import "time"

type LeaveRequest struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	StaffID uint  `gorm:"index" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	// Inclusive date range.
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	Reason string `gorm:"size:255" json:"reason"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	DecidedBy       *uint      `json:"decided_by"`
	DecidedAt       *time.Time `json:"decided_at"`
	RejectionReason string     `gorm:"size:255" json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
