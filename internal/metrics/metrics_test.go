package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/models"
)

var now = time.Date(2025, time.March, 7, 15, 30, 0, 0, time.Local)

func task(status models.TaskStatus, deadline string) dto.TaskDTO {
	return dto.TaskDTO{Status: status, Deadline: deadline}
}

func daysFromNow(days int) string {
	return dateformat.FormatStorage(now.AddDate(0, 0, days))
}

func TestTaskMetrics_OrderAndZeroEntries(t *testing.T) {
	got := TaskMetrics(nil)

	require.Len(t, got, 5)
	assert.Equal(t, []Metric{
		{Label: LabelTotalTasks, Value: 0},
		{Label: LabelPendingTasks, Value: 0},
		{Label: LabelInProgressTasks, Value: 0},
		{Label: LabelUnassignedTasks, Value: 0},
		{Label: LabelCompletedTasks, Value: 0},
	}, got)
}

func TestTaskMetrics_Counts(t *testing.T) {
	tasks := []dto.TaskDTO{
		task(models.TaskStatusPending, ""),
		task(models.TaskStatusPending, ""),
		task(models.TaskStatusInProgress, ""),
		task(models.TaskStatusUnassigned, ""),
		task(models.TaskStatusCompleted, ""),
		task(models.TaskStatusCompleted, ""),
	}

	got := TaskMetrics(tasks)

	assert.Equal(t, []Metric{
		{Label: LabelTotalTasks, Value: 6},
		{Label: LabelPendingTasks, Value: 2},
		{Label: LabelInProgressTasks, Value: 1},
		{Label: LabelUnassignedTasks, Value: 1},
		{Label: LabelCompletedTasks, Value: 2},
	}, got)
}

func TestStatusBreakdown_SumsToTotalOnlyForKnownStatuses(t *testing.T) {
	known := []dto.TaskDTO{
		task(models.TaskStatusPending, ""),
		task(models.TaskStatusInProgress, ""),
		task(models.TaskStatusUnassigned, ""),
		task(models.TaskStatusCompleted, ""),
	}
	b := StatusBreakdown(known)
	assert.Equal(t, b.Total, b.Pending+b.InProgress+b.Unassigned+b.Completed)
	assert.Zero(t, b.Unknown)

	withUnknown := append(known, task("ON_HOLD", ""))
	b = StatusBreakdown(withUnknown)
	assert.Equal(t, 1, b.Unknown)
	assert.NotEqual(t, b.Total, b.Pending+b.InProgress+b.Unassigned+b.Completed,
		"an unrecognized status must break the per-status sum")
}

func TestEmployeeMetrics(t *testing.T) {
	employees := []dto.EmployeeDTO{{Admin: true}, {Admin: false}, {Admin: false}}

	got := EmployeeMetrics(employees)

	assert.Equal(t, []Metric{
		{Label: LabelTotalEmployees, Value: 3},
		{Label: LabelAdmins, Value: 1},
		{Label: LabelRegularEmployees, Value: 2},
	}, got)
}

func TestEmployeeMetrics_SplitAlwaysSumsToTotal(t *testing.T) {
	for n := 0; n < 20; n++ {
		employees := make([]dto.EmployeeDTO, n)
		for i := range employees {
			employees[i].Admin = i%3 == 0
		}

		got := EmployeeMetrics(employees)
		total, _ := Value(got, LabelTotalEmployees)
		admins, _ := Value(got, LabelAdmins)
		regular, _ := Value(got, LabelRegularEmployees)
		assert.Equal(t, total, admins+regular)
	}
}

func TestDashboardMetrics(t *testing.T) {
	employees := []dto.EmployeeDTO{{Admin: true}, {}}
	yesterday := daysFromNow(-1)
	tasks := []dto.TaskDTO{
		task(models.TaskStatusCompleted, yesterday),
		task(models.TaskStatusPending, yesterday),
	}

	got := DashboardMetrics(employees, tasks, now)

	assert.Equal(t, []Metric{
		{Label: LabelTotalEmployees, Value: 2},
		{Label: LabelTotalTasks, Value: 2},
		{Label: LabelPendingTasks, Value: 1},
		{Label: LabelInProgressTasks, Value: 0},
		{Label: LabelUnassignedTasks, Value: 0},
		{Label: LabelOverdueTasks, Value: 1},
	}, got)
}

func TestDashboardMetrics_UnassignedIsStatusBased(t *testing.T) {
	assignee := uint64(4)
	tasks := []dto.TaskDTO{
		{Status: models.TaskStatusUnassigned},
		// Assigned task with a stale UNASSIGNED status still counts by status.
		{Status: models.TaskStatusUnassigned, AssignedEmployeeID: &assignee},
		// Unassigned task with a non-UNASSIGNED status does not count.
		{Status: models.TaskStatusPending},
	}

	got := DashboardMetrics(nil, tasks, now)

	unassigned, ok := Value(got, LabelUnassignedTasks)
	require.True(t, ok)
	assert.Equal(t, 2, unassigned)
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name string
		task dto.TaskDTO
		want bool
	}{
		{"yesterday pending", task(models.TaskStatusPending, daysFromNow(-1)), true},
		{"last year in progress", task(models.TaskStatusInProgress, "2024-03-07"), true},
		{"today is not overdue", task(models.TaskStatusPending, daysFromNow(0)), false},
		{"tomorrow", task(models.TaskStatusPending, daysFromNow(1)), false},
		{"completed is never overdue", task(models.TaskStatusCompleted, "2000-01-01"), false},
		{"empty deadline", task(models.TaskStatusPending, ""), false},
		{"malformed deadline", task(models.TaskStatusPending, "soon"), false},
		{"impossible date", task(models.TaskStatusPending, "2024-02-31"), false},
		{"unpadded storage date", task(models.TaskStatusPending, "2025-3-6"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.task, now))
		})
	}
}

func TestIsOverdue_IgnoresTimeOfDay(t *testing.T) {
	deadline := task(models.TaskStatusPending, "2025-03-07")

	startOfDay := time.Date(2025, time.March, 7, 0, 0, 1, 0, time.Local)
	endOfDay := time.Date(2025, time.March, 7, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.Local)

	assert.False(t, IsOverdue(deadline, startOfDay))
	assert.False(t, IsOverdue(deadline, endOfDay))
	assert.True(t, IsOverdue(deadline, nextDay))
}

func TestOverdueExcludesCompleted(t *testing.T) {
	var tasks []dto.TaskDTO
	for i := 1; i <= 10; i++ {
		tasks = append(tasks, task(models.TaskStatusCompleted, daysFromNow(-i)))
	}

	got := DashboardMetrics(nil, tasks, now)

	overdue, _ := Value(got, LabelOverdueTasks)
	assert.Zero(t, overdue)
}
