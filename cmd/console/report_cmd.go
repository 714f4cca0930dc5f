package main

import (
	"fmt"

	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/reports"
	"github.com/yukikurage/etams/internal/validation"
)

func (a *app) reportCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing report kind (overdue, activity)")
	}

	kind, rest := args[0], args[1:]
	fs := a.flagSet("report " + kind)
	start := fs.String("start", "", "Earliest creation date (MM/DD/YYYY)")
	end := fs.String("end", "", "Latest creation date, inclusive (MM/DD/YYYY)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	var (
		report *reports.Report
		err    error
	)
	switch reports.Kind(kind) {
	case reports.KindOverdue:
		report, err = a.client.OverdueReport(a.ctx)
	case reports.KindActivity:
		if errs := checkReportDate(*start).Merge(checkReportDate(*end)); !errs.Valid() {
			return errs
		}
		report, err = a.client.ActivityReport(a.ctx, dateformat.ToStorage(*start), dateformat.ToStorage(*end))
	default:
		return fmt.Errorf("unknown report: %s", kind)
	}
	if err != nil {
		return err
	}

	a.printTasks(report.Tasks, report.Message)
	return nil
}

// checkReportDate accepts an empty bound or a well-formed display date.
func checkReportDate(display string) validation.Errors {
	if display == "" {
		return validation.Errors{}
	}
	return validation.ValidateDeadlineFormat(display)
}
