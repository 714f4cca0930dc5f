// Package reports filters task and employee lists for the report and search screens.
package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/metrics"
	"github.com/yukikurage/etams/internal/models"
)

type Kind string

const (
	KindOverdue  Kind = "overdue"
	KindActivity Kind = "activity"
)

const (
	NoOverdueMessage  = "No overdue tasks found"
	NoActivityMessage = "No tasks found for the selected date range"
)

// Report is the filtered task list with the message to show when it is empty.
type Report struct {
	Kind    Kind          `json:"kind"`
	Tasks   []dto.TaskDTO `json:"tasks"`
	Message string        `json:"message,omitempty"`
}

// Overdue returns the non-completed tasks whose deadline day is before today.
func Overdue(tasks []dto.TaskDTO, now time.Time) Report {
	result := make([]dto.TaskDTO, 0)
	for _, task := range tasks {
		if metrics.IsOverdue(task, now) {
			result = append(result, task)
		}
	}
	return finish(KindOverdue, result)
}

// Activity returns the tasks created within [start, end]. Start and end are
// storage-format dates; a missing start means the beginning of time and a
// missing end means now. With neither bound every task is returned. The end
// day is inclusive.
func Activity(tasks []dto.TaskDTO, start, end string, now time.Time) (Report, error) {
	if start == "" && end == "" {
		all := make([]dto.TaskDTO, len(tasks))
		copy(all, tasks)
		return finish(KindActivity, all), nil
	}

	from := time.Unix(0, 0)
	if start != "" {
		parsed, err := dateformat.ParseStorage(start)
		if err != nil {
			return Report{}, err
		}
		from = parsed
	}

	to := now
	if end != "" {
		parsed, err := dateformat.ParseStorage(end)
		if err != nil {
			return Report{}, err
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	result := make([]dto.TaskDTO, 0)
	for _, task := range tasks {
		created, err := time.Parse(time.RFC3339, task.CreatedAt)
		if err != nil {
			continue
		}
		if !created.Before(from) && !created.After(to) {
			result = append(result, task)
		}
	}
	return finish(KindActivity, result), nil
}

func finish(kind Kind, tasks []dto.TaskDTO) Report {
	r := Report{Kind: kind, Tasks: tasks}
	if len(tasks) == 0 {
		if kind == KindOverdue {
			r.Message = NoOverdueMessage
		} else {
			r.Message = NoActivityMessage
		}
	}
	return r
}

// MatchesName reports whether query matches the employee's first, last, or full name, ignoring case.
func MatchesName(employee dto.EmployeeDTO, query string) bool {
	q := strings.ToLower(query)
	first := strings.ToLower(employee.FirstName)
	last := strings.ToLower(employee.LastName)
	return strings.Contains(first, q) ||
		strings.Contains(last, q) ||
		strings.Contains(first+" "+last, q)
}

// FilterByName keeps the employees matching query.
func FilterByName(employees []dto.EmployeeDTO, query string) []dto.EmployeeDTO {
	result := make([]dto.EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		if MatchesName(employee, query) {
			result = append(result, employee)
		}
	}
	return result
}

// SortByLastName sorts employees by last name, then first name, ignoring case.
func SortByLastName(employees []dto.EmployeeDTO) {
	sort.SliceStable(employees, func(i, j int) bool {
		li, lj := strings.ToLower(employees[i].LastName), strings.ToLower(employees[j].LastName)
		if li == lj {
			return strings.ToLower(employees[i].FirstName) < strings.ToLower(employees[j].FirstName)
		}
		return li < lj
	})
}

var statusLabels = map[models.TaskStatus]string{
	models.TaskStatusPending:    "Pending",
	models.TaskStatusInProgress: "In Progress",
	models.TaskStatusCompleted:  "Completed",
	models.TaskStatusUnassigned: "Unassigned",
	"":                          "Unassigned",
}

// StatusLabel returns the display label for a status; unknown statuses pass through.
func StatusLabel(status models.TaskStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}
