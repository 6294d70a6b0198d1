package models

import "time"

// Staff is the bookable profile of a user. A staff member can serve
// several branches; PrimaryBranchID marks the home branch.
type Staff struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	PrimaryBranchID uint     `json:"primary_branch_id"`
	Branches        []Branch `gorm:"many2many:staff_branches;" json:"branches"`

	Specialization string `gorm:"size:100" json:"specialization"`
	Available      bool   `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
