package client

import (
	"context"
	"net/url"

	"github.com/yukikurage/etams/internal/metrics"
	"github.com/yukikurage/etams/internal/reports"
)

func (c *Client) DashboardMetrics(ctx context.Context) ([]metrics.Metric, error) {
	return c.metrics(ctx, "/api/metrics/dashboard")
}

func (c *Client) TaskMetrics(ctx context.Context) ([]metrics.Metric, error) {
	return c.metrics(ctx, "/api/metrics/tasks")
}

func (c *Client) EmployeeMetrics(ctx context.Context) ([]metrics.Metric, error) {
	return c.metrics(ctx, "/api/metrics/employees")
}

func (c *Client) metrics(ctx context.Context, path string) ([]metrics.Metric, error) {
	var result []metrics.Metric
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) OverdueReport(ctx context.Context) (*reports.Report, error) {
	var report reports.Report
	if err := c.get(ctx, "/api/reports/overdue", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ActivityReport lists tasks created between start and end (YYYY-MM-DD). Either bound may be empty.
func (c *Client) ActivityReport(ctx context.Context, start, end string) (*reports.Report, error) {
	query := url.Values{}
	if start != "" {
		query.Set("start", start)
	}
	if end != "" {
		query.Set("end", end)
	}

	var report reports.Report
	if err := c.get(ctx, "/api/reports/activity", query, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
