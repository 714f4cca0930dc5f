package validation

import (
	"strings"
	"time"

	"github.com/yukikurage/etams/internal/dateformat"
)

// ValidateDeadline checks a display-formatted (MM/DD/YYYY) deadline.
// A deadline equal to today's date is valid.
func ValidateDeadline(display string, now time.Time) Errors {
	errs := Errors{}

	if strings.TrimSpace(display) == "" {
		errs.Add(FieldDeadline, RuleRequired, "deadline is required")
		return errs
	}

	deadline, err := dateformat.ParseDisplay(display)
	if err != nil {
		errs.Add(FieldDeadline, RuleInvalidFormat, "deadline must be in MM/DD/YYYY format")
		return errs
	}

	if deadline.Before(dateformat.StartOfDay(now.In(time.Local))) {
		errs.Add(FieldDeadline, RulePastDate, "deadline cannot be in the past")
	}

	return errs
}

// ValidateDeadlineFormat checks only the required and format rules.
func ValidateDeadlineFormat(display string) Errors {
	errs := Errors{}

	if strings.TrimSpace(display) == "" {
		errs.Add(FieldDeadline, RuleRequired, "deadline is required")
		return errs
	}
	if _, err := dateformat.ParseDisplay(display); err != nil {
		errs.Add(FieldDeadline, RuleInvalidFormat, "deadline must be in MM/DD/YYYY format")
	}

	return errs
}
