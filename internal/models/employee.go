package models

import (
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FirstName    string         `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(50);not null" json:"last_name"`
	Email        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         string         `gorm:"type:varchar(50);not null" json:"role"`
	Admin        bool           `gorm:"not null;default:false" json:"admin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks []Task `gorm:"foreignKey:AssignedEmployeeID" json:"-"`
}

// FullName joins first and last name for display.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
