package dto

import (
	"time"

	"github.com/yukikurage/etams/internal/models"
)

// EmployeeDTO is the employee shape exchanged with the console.
// Password is write-only and never set on responses.
type EmployeeDTO struct {
	ID        *uint64 `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	Admin     bool    `json:"admin"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	TaskCount *int    `json:"taskCount"`
	Password  *string `json:"password,omitempty"`
}

// FullName joins first and last name for display.
func (e EmployeeDTO) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// PasswordUpdateDTO is the body of the password update endpoint.
type PasswordUpdateDTO struct {
	Password string `json:"password"`
}

// LoginRequestDTO holds login credentials.
type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponseDTO is returned after a successful login.
type LoginResponseDTO struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Admin      bool   `json:"admin"`
	EmployeeID uint64 `json:"employeeId"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO.
// taskCount is nil when the count was not computed.
func ToEmployeeDTO(employee models.Employee, taskCount *int) EmployeeDTO {
	id := employee.ID
	return EmployeeDTO{
		ID:        &id,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Email:     employee.Email,
		Username:  employee.Username,
		Role:      employee.Role,
		Admin:     employee.Admin,
		CreatedAt: formatTimestamp(employee.CreatedAt),
		UpdatedAt: formatTimestamp(employee.UpdatedAt),
		TaskCount: taskCount,
	}
}

// ToEmployeeDTOs converts employees, attaching task counts keyed by employee ID.
func ToEmployeeDTOs(employees []models.Employee, counts map[uint64]int) []EmployeeDTO {
	items := make([]EmployeeDTO, len(employees))
	for i, employee := range employees {
		count := counts[employee.ID]
		items[i] = ToEmployeeDTO(employee, &count)
	}
	return items
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
