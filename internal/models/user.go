package models

import "time"

const (
	RoleOwner        = "owner"
	RoleManager      = "manager"
	RoleStaff        = "staff"
	RoleReceptionist = "receptionist"
	RoleCustomer     = "customer"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
