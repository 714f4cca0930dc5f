package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/etams/internal/constants"
	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/repository"
	"github.com/yukikurage/etams/internal/utils"
	"github.com/yukikurage/etams/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskPermissionDenied   = errors.New("user does not have permission to modify this task")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrEmptyGenerationText    = errors.New("text is required")
)

// Actor is the authenticated employee performing a request.
type Actor struct {
	EmployeeID uint64
	Admin      bool
}

// TaskGenerator drafts tasks from free text.
type TaskGenerator interface {
	GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
	generator    TaskGenerator
	now          func() time.Time
}

// NewTaskService creates a new TaskService. generator may be nil.
func NewTaskService(taskRepo repository.TaskRepository, employeeRepo repository.EmployeeRepository, generator TaskGenerator) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		generator:    generator,
		now:          time.Now,
	}
}

// TaskInput represents the editable task fields as received from the client.
// Deadline is in storage format; AssignedEmployeeID is the raw JSON value.
type TaskInput struct {
	Title              string
	Description        string
	Status             models.TaskStatus
	Deadline           string
	AssignedEmployeeID any
}

// ListTasks returns every task for admins and only the actor's own tasks otherwise
func (s *TaskService) ListTasks(actor Actor, pagination *utils.PaginationParams) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{Pagination: pagination}
	if !actor.Admin {
		filter.AssignedEmployeeID = &actor.EmployeeID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListTasksByEmployee returns the tasks assigned to one employee
func (s *TaskService) ListTasksByEmployee(employeeID uint64) ([]models.Task, error) {
	if _, err := s.employeeRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	tasks, _, err := s.taskRepo.List(repository.TaskFilter{AssignedEmployeeID: &employeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with its assignee
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "AssignedEmployee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and stores a new task. Validation failures are returned as validation.Errors.
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	task := &models.Task{}
	if err := s.apply(task, input, false); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.GetTask(task.ID)
}

// UpdateTask replaces the task's fields. Non-admins may only edit tasks assigned
// to them and cannot hand them to someone else.
func (s *TaskService) UpdateTask(actor Actor, taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if !actor.Admin {
		if task.AssignedEmployeeID == nil || *task.AssignedEmployeeID != actor.EmployeeID {
			return nil, ErrTaskPermissionDenied
		}
		next := validation.NormalizeAssignee(input.AssignedEmployeeID)
		if next == nil || *next != actor.EmployeeID {
			return nil, ErrTaskPermissionDenied
		}
	}

	keepsDeadline := task.Deadline != nil &&
		dateformat.FormatStorage(*task.Deadline) == dateformat.ToStorage(dateformat.ToDisplay(strings.TrimSpace(input.Deadline)))

	if err := s.apply(task, input, keepsDeadline); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.GetTask(task.ID)
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// apply validates input and copies it onto task. A deadline that is unchanged
// on an existing task may lie in the past.
func (s *TaskService) apply(task *models.Task, input TaskInput, keepsDeadline bool) error {
	deadline := strings.TrimSpace(input.Deadline)
	form := validation.TaskForm{
		Title:               input.Title,
		Description:         input.Description,
		Status:              input.Status,
		Deadline:            dateformat.ToDisplay(deadline),
		AssignedEmployeeID:  input.AssignedEmployeeID,
		PastDeadlineAllowed: keepsDeadline,
	}
	errs := validation.ValidateTaskForm(form, s.now())

	assignee := validation.NormalizeAssignee(input.AssignedEmployeeID)
	if assignee != nil && !errs.Has(validation.FieldAssignedEmployeeID, validation.RuleAssignedEmployeeMismatch) {
		if _, err := s.employeeRepo.FindByID(*assignee); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to find employee: %w", err)
			}
			errs.Add(validation.FieldAssignedEmployeeID, validation.RuleUnknownEmployee,
				fmt.Sprintf("employee %d does not exist", *assignee))
		}
	}

	if !errs.Valid() {
		return errs
	}

	parsed, err := dateformat.ParseStorage(dateformat.ToStorage(form.Deadline))
	if err != nil {
		return validation.Errors{validation.FieldDeadline: {validation.RuleInvalidFormat: "deadline must be MM/DD/YYYY"}}
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.Status = input.Status
	task.Deadline = &parsed
	task.AssignedEmployeeID = assignee
	task.AssignedEmployee = nil
	return nil
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text string
}

// GenerateTasks drafts tasks from text. Drafts are UNASSIGNED; deadlines that are
// malformed or already past are cleared.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyGenerationText
	}

	aiTasks, err := s.generator.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	now := s.now()
	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	for _, aiTask := range aiTasks {
		aiTask.Title = strings.TrimSpace(aiTask.Title)
		if aiTask.Title == "" {
			continue
		}

		aiTask.Status = models.TaskStatusUnassigned
		if aiTask.Deadline != "" {
			if errs := validation.ValidateDeadline(dateformat.ToDisplay(aiTask.Deadline), now); !errs.Valid() {
				aiTask.Deadline = ""
			} else {
				aiTask.Deadline = dateformat.ToStorage(dateformat.ToDisplay(aiTask.Deadline))
			}
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}
