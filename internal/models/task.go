package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusUnassigned TaskStatus = "UNASSIGNED"
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every known status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusUnassigned,
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Task struct {
	ID                 uint64         `gorm:"primarykey" json:"id"`
	Title              string         `gorm:"type:varchar(100);not null" json:"title"`
	Description        string         `gorm:"type:text" json:"description"`
	Status             TaskStatus     `gorm:"type:varchar(20);not null;default:'UNASSIGNED'" json:"status"`
	Deadline           *time.Time     `gorm:"type:date" json:"deadline"`
	AssignedEmployeeID *uint64        `gorm:"index" json:"assigned_employee_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedEmployee *Employee `gorm:"foreignKey:AssignedEmployeeID" json:"assigned_employee,omitempty"`
}
