package models

import "time"

// Holiday is a branch closure date. Optional holidays are informational
// only and never block booking; mandatory ones close the branch.
type Holiday struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `gorm:"index" json:"branch_id"`

	Date       time.Time `gorm:"type:date;not null" json:"date"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	IsOptional bool      `json:"is_optional"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
