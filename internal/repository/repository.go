package repository

import (
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and optional pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedEmployeeID *uint64
	Status             *models.TaskStatus
	Pagination         *utils.PaginationParams
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByUsername finds an employee by username
	FindByUsername(username string) (*models.Employee, error)

	// FindByUsernameUnscoped finds an employee by username, deleted or not
	FindByUsernameUnscoped(username string) (*models.Employee, error)

	// FindByEmailUnscoped finds an employee by email, deleted or not
	FindByEmailUnscoped(email string) (*models.Employee, error)

	// List retrieves employees ordered by last name, first name
	List(pagination *utils.PaginationParams) ([]models.Employee, int64, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete soft deletes an employee and unassigns their tasks
	Delete(id uint64) error

	// CountTasksByEmployee returns the number of assigned tasks keyed by employee ID
	CountTasksByEmployee() (map[uint64]int, error)

	// Count returns the number of employees
	Count() (int64, error)
}
