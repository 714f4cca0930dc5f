// Package metrics computes the ordered label/value aggregates shown on the
// dashboard, task, and employee screens. All functions are pure.
package metrics

import (
	"time"

	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/models"
)

const (
	LabelTotalTasks       = "Total Tasks"
	LabelPendingTasks     = "Pending Tasks"
	LabelInProgressTasks  = "In Progress Tasks"
	LabelUnassignedTasks  = "Unassigned Tasks"
	LabelCompletedTasks   = "Completed Tasks"
	LabelOverdueTasks     = "Overdue Tasks"
	LabelTotalEmployees   = "Total Employees"
	LabelAdmins           = "Admins"
	LabelRegularEmployees = "Regular Employees"
)

// Metric is a single display aggregate.
type Metric struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Breakdown counts tasks per known status. Unknown holds tasks whose status
// is not one of the enumerated values, so the per-status counts only add up
// to Total when Unknown is zero.
type Breakdown struct {
	Total      int
	Pending    int
	InProgress int
	Unassigned int
	Completed  int
	Unknown    int
}

// StatusBreakdown counts tasks by status.
func StatusBreakdown(tasks []dto.TaskDTO) Breakdown {
	b := Breakdown{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusPending:
			b.Pending++
		case models.TaskStatusInProgress:
			b.InProgress++
		case models.TaskStatusUnassigned:
			b.Unassigned++
		case models.TaskStatusCompleted:
			b.Completed++
		default:
			b.Unknown++
		}
	}
	return b
}

// TaskMetrics returns total, pending, in progress, unassigned and completed counts.
func TaskMetrics(tasks []dto.TaskDTO) []Metric {
	b := StatusBreakdown(tasks)
	return []Metric{
		{Label: LabelTotalTasks, Value: b.Total},
		{Label: LabelPendingTasks, Value: b.Pending},
		{Label: LabelInProgressTasks, Value: b.InProgress},
		{Label: LabelUnassignedTasks, Value: b.Unassigned},
		{Label: LabelCompletedTasks, Value: b.Completed},
	}
}

// EmployeeMetrics returns total, admin and regular employee counts.
// Admins and regular employees always sum to the total.
func EmployeeMetrics(employees []dto.EmployeeDTO) []Metric {
	total := len(employees)
	admins := countAdmins(employees)
	return []Metric{
		{Label: LabelTotalEmployees, Value: total},
		{Label: LabelAdmins, Value: admins},
		{Label: LabelRegularEmployees, Value: total - admins},
	}
}

// DashboardMetrics combines employee and task totals with the overdue count as of now.
func DashboardMetrics(employees []dto.EmployeeDTO, tasks []dto.TaskDTO, now time.Time) []Metric {
	b := StatusBreakdown(tasks)

	overdue := 0
	for _, task := range tasks {
		if IsOverdue(task, now) {
			overdue++
		}
	}

	return []Metric{
		{Label: LabelTotalEmployees, Value: len(employees)},
		{Label: LabelTotalTasks, Value: b.Total},
		{Label: LabelPendingTasks, Value: b.Pending},
		{Label: LabelInProgressTasks, Value: b.InProgress},
		{Label: LabelUnassignedTasks, Value: b.Unassigned},
		{Label: LabelOverdueTasks, Value: overdue},
	}
}

// IsOverdue reports whether a non-completed task's deadline day is before now's day.
// Both sides are truncated to local midnight. Empty or unparsable deadlines are never overdue.
func IsOverdue(task dto.TaskDTO, now time.Time) bool {
	if task.Status == models.TaskStatusCompleted || task.Deadline == "" {
		return false
	}

	deadline, err := dateformat.ParseStorage(task.Deadline)
	if err != nil {
		return false
	}

	today := dateformat.StartOfDay(now.In(time.Local))
	return deadline.Before(today)
}

// Value looks up a metric by label.
func Value(metrics []Metric, label string) (int, bool) {
	for _, m := range metrics {
		if m.Label == label {
			return m.Value, true
		}
	}
	return 0, false
}

func countAdmins(employees []dto.EmployeeDTO) int {
	admins := 0
	for _, employee := range employees {
		if employee.Admin {
			admins++
		}
	}
	return admins
}
