package main

import (
	"fmt"
	"strconv"

	"github.com/yukikurage/etams/internal/metrics"
)

func (a *app) dashboardCommand(args []string) error {
	fs := a.flagSet("dashboard")
	view := fs.String("view", "dashboard", "Metrics to show: dashboard, tasks, employees")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	var (
		result []metrics.Metric
		err    error
	)
	switch *view {
	case "dashboard":
		result, err = a.client.DashboardMetrics(a.ctx)
	case "tasks":
		result, err = a.client.TaskMetrics(a.ctx)
	case "employees":
		result, err = a.client.EmployeeMetrics(a.ctx)
	default:
		return fmt.Errorf("unknown view: %s", *view)
	}
	if err != nil {
		return err
	}

	table := NewTableWriter("Metric", "Value")
	for _, m := range result {
		table.AddRow(m.Label, strconv.Itoa(m.Value))
	}
	table.Print(a.out)

	if notice := overdueNotice(result); notice != "" {
		fmt.Fprintln(a.out, notice)
	}
	return nil
}

// overdueNotice points at the overdue report when the metrics count any.
func overdueNotice(result []metrics.Metric) string {
	overdue, ok := metrics.Value(result, metrics.LabelOverdueTasks)
	if !ok || overdue == 0 {
		return ""
	}
	if overdue == 1 {
		return "1 task is overdue. Run 'etams report overdue' for details."
	}
	return fmt.Sprintf("%d tasks are overdue. Run 'etams report overdue' for details.", overdue)
}
