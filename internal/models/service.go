package models

import "time"

// Service is a catalog entry. Appointments snapshot its name and price
// at booking time, so catalog edits never change past totals.
type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `json:"branch_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
