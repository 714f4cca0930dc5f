package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/metrics"
	"github.com/yukikurage/etams/internal/reports"
	"github.com/yukikurage/etams/internal/repository"
)

// MetricsService loads employees and tasks and hands them to the metrics and
// report calculators. Nothing is cached; every call reads fresh data.
type MetricsService struct {
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
	now          func() time.Time
}

func NewMetricsService(employeeRepo repository.EmployeeRepository, taskRepo repository.TaskRepository) *MetricsService {
	return &MetricsService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
		now:          time.Now,
	}
}

func (s *MetricsService) Dashboard(actor Actor) ([]metrics.Metric, error) {
	employees, err := s.employees()
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks(actor)
	if err != nil {
		return nil, err
	}
	return metrics.DashboardMetrics(employees, tasks, s.now()), nil
}

func (s *MetricsService) Tasks(actor Actor) ([]metrics.Metric, error) {
	tasks, err := s.tasks(actor)
	if err != nil {
		return nil, err
	}
	return metrics.TaskMetrics(tasks), nil
}

func (s *MetricsService) Employees() ([]metrics.Metric, error) {
	employees, err := s.employees()
	if err != nil {
		return nil, err
	}
	return metrics.EmployeeMetrics(employees), nil
}

func (s *MetricsService) OverdueReport(actor Actor) (reports.Report, error) {
	tasks, err := s.tasks(actor)
	if err != nil {
		return reports.Report{}, err
	}
	return reports.Overdue(tasks, s.now()), nil
}

// ActivityReport filters by creation date. start and end are storage-format dates
// and may be empty; a malformed bound is returned as an error.
func (s *MetricsService) ActivityReport(actor Actor, start, end string) (reports.Report, error) {
	tasks, err := s.tasks(actor)
	if err != nil {
		return reports.Report{}, err
	}
	return reports.Activity(tasks, start, end, s.now())
}

func (s *MetricsService) employees() ([]dto.EmployeeDTO, error) {
	employees, _, err := s.employeeRepo.List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return dto.ToEmployeeDTOs(employees, nil), nil
}

func (s *MetricsService) tasks(actor Actor) ([]dto.TaskDTO, error) {
	filter := repository.TaskFilter{}
	if !actor.Admin {
		filter.AssignedEmployeeID = &actor.EmployeeID
	}
	tasks, _, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return dto.ToTaskDTOs(tasks), nil
}
