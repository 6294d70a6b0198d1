package models

import "time"

// BusinessHours holds the weekly opening schedule of a branch.
// At most one row exists per (branch, weekday).
type BusinessHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `gorm:"uniqueIndex:idx_branch_weekday" json:"branch_id"`

	Weekday int `gorm:"uniqueIndex:idx_branch_weekday" json:"weekday"`

	OpeningTime string `gorm:"size:5" json:"opening_time"`
	ClosingTime string `gorm:"size:5" json:"closing_time"`
	LunchStart  string `gorm:"size:5" json:"lunch_start"`
	LunchEnd    string `gorm:"size:5" json:"lunch_end"`
	IsClosed    bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
