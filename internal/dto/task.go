package dto

import (
	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/models"
)

// AssigneeDTO is the nested assignee object on task responses.
type AssigneeDTO struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TaskDTO is the task shape exchanged with the console.
type TaskDTO struct {
	ID                   *uint64           `json:"id"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Status               models.TaskStatus `json:"status"`
	Deadline             string            `json:"deadline"`
	AssignedEmployee     *AssigneeDTO      `json:"assignedEmployee"`
	AssignedEmployeeID   *uint64           `json:"assignedEmployeeId"`
	AssignedEmployeeName *string           `json:"assignedEmployeeName"`
	CreatedAt            string            `json:"createdAt"`
	UpdatedAt            string            `json:"updatedAt"`
}

// AssigneeID returns the assignment from either the scalar field or the nested object.
func (t TaskDTO) AssigneeID() *uint64 {
	if t.AssignedEmployeeID != nil {
		return t.AssignedEmployeeID
	}
	if t.AssignedEmployee != nil && t.AssignedEmployee.ID != 0 {
		id := t.AssignedEmployee.ID
		return &id
	}
	return nil
}

// AssigneeName returns the display name of the assignee, or "" when unassigned.
func (t TaskDTO) AssigneeName() string {
	if t.AssignedEmployeeName != nil {
		return *t.AssignedEmployeeName
	}
	if t.AssignedEmployee != nil {
		if t.AssignedEmployee.LastName == "" {
			return t.AssignedEmployee.FirstName
		}
		return t.AssignedEmployee.FirstName + " " + t.AssignedEmployee.LastName
	}
	return ""
}

// ToTaskDTO converts a Task model to TaskDTO.
// The assignee is emitted both as scalars and as a nested object when preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	id := task.ID
	dto := TaskDTO{
		ID:          &id,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   formatTimestamp(task.CreatedAt),
		UpdatedAt:   formatTimestamp(task.UpdatedAt),
	}

	if task.Deadline != nil {
		dto.Deadline = dateformat.FormatStorage(*task.Deadline)
	}

	if task.AssignedEmployeeID != nil {
		assigneeID := *task.AssignedEmployeeID
		dto.AssignedEmployeeID = &assigneeID
	}

	// Include assignee if preloaded
	if task.AssignedEmployee != nil && task.AssignedEmployee.ID != 0 {
		name := task.AssignedEmployee.FullName()
		dto.AssignedEmployeeName = &name
		dto.AssignedEmployee = &AssigneeDTO{
			ID:        task.AssignedEmployee.ID,
			FirstName: task.AssignedEmployee.FirstName,
			LastName:  task.AssignedEmployee.LastName,
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
