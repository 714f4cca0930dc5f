package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/repository"
	"github.com/yukikurage/etams/internal/utils"
	"github.com/yukikurage/etams/internal/validation"
	"gorm.io/gorm"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeService handles employee business logic
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// EmployeeInput represents input for creating or updating an employee.
// An empty Password on update keeps the current one.
type EmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Role      string
	Admin     bool
	Password  string
}

func (in EmployeeInput) form() validation.EmployeeForm {
	return validation.EmployeeForm{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Username:  strings.TrimSpace(in.Username),
		Role:      strings.TrimSpace(in.Role),
		Password:  in.Password,
	}
}

// EmployeeList is a page of employees with their assigned task counts.
type EmployeeList struct {
	Employees  []models.Employee
	TaskCounts map[uint64]int
	Total      int64
}

// ListEmployees returns employees ordered by last name with task counts attached
func (s *EmployeeService) ListEmployees(pagination *utils.PaginationParams) (*EmployeeList, error) {
	employees, total, err := s.employeeRepo.List(pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	counts, err := s.employeeRepo.CountTasksByEmployee()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &EmployeeList{Employees: employees, TaskCounts: counts, Total: total}, nil
}

// GetEmployee returns a single employee
func (s *EmployeeService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// CreateEmployee validates the form, enforces the password policy, and stores the employee.
// Validation failures are returned as validation.Errors.
func (s *EmployeeService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	form := input.form()
	errs := validation.ValidateEmployeeForm(form, true)
	if err := s.checkUnique(errs, form, 0); err != nil {
		return nil, err
	}
	if !errs.Valid() {
		return nil, errs
	}

	hashed, err := hashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Username:     form.Username,
		Role:         form.Role,
		Admin:        input.Admin,
		PasswordHash: hashed,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// UpdateEmployee replaces the employee's fields. The password changes only when one is supplied.
func (s *EmployeeService) UpdateEmployee(id uint64, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	form := input.form()
	errs := validation.ValidateEmployeeForm(form, false)
	if err := s.checkUnique(errs, form, id); err != nil {
		return nil, err
	}
	if !errs.Valid() {
		return nil, errs
	}

	employee.FirstName = form.FirstName
	employee.LastName = form.LastName
	employee.Email = form.Email
	employee.Username = form.Username
	employee.Role = form.Role
	employee.Admin = input.Admin

	if validation.PasswordRequired(false, form.Password) {
		hashed, err := hashPassword(form.Password)
		if err != nil {
			return nil, err
		}
		employee.PasswordHash = hashed
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// UpdatePassword sets a new password after checking it against the policy
func (s *EmployeeService) UpdatePassword(id uint64, password string) error {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return err
	}

	if errs := validation.ValidatePassword(password); !errs.Valid() {
		return errs
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	employee.PasswordHash = hashed

	if err := s.employeeRepo.Update(employee); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteEmployee removes the employee; their tasks become unassigned
func (s *EmployeeService) DeleteEmployee(id uint64) error {
	if err := s.employeeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// checkUnique records taken username or email on errs. Deleted employees keep
// their values. selfID is ignored so an employee can keep their own values.
func (s *EmployeeService) checkUnique(errs validation.Errors, form validation.EmployeeForm, selfID uint64) error {
	if form.Username != "" {
		existing, err := s.employeeRepo.FindByUsernameUnscoped(form.Username)
		switch {
		case err == nil && existing.ID != selfID:
			errs.Add(validation.FieldUsername, validation.RuleTaken, "username already exists")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	if form.Email != "" {
		existing, err := s.employeeRepo.FindByEmailUnscoped(form.Email)
		switch {
		case err == nil && existing.ID != selfID:
			errs.Add(validation.FieldEmail, validation.RuleTaken, "email already exists")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}
	}
	return nil
}
