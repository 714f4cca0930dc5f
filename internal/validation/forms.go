package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/etams/internal/constants"
	"github.com/yukikurage/etams/internal/models"
)

// TaskForm holds the editable task fields as the user entered them.
// Deadline is in display format (MM/DD/YYYY).
type TaskForm struct {
	Title              string
	Description        string
	Status             models.TaskStatus
	Deadline           string
	AssignedEmployeeID any

	// PastDeadlineAllowed skips the past-date rule, for edits that keep the stored deadline.
	PastDeadlineAllowed bool
}

// ValidateTaskForm runs every task rule, including the status/assignee cross-field rule.
func ValidateTaskForm(form TaskForm, now time.Time) Errors {
	errs := Errors{}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		errs.Add(FieldTitle, RuleRequired, "title is required")
	} else if utf8.RuneCountInString(form.Title) > constants.MaxTitleLength {
		errs.Add(FieldTitle, RuleMaxLength, fmt.Sprintf("title must be at most %d characters", constants.MaxTitleLength))
	}

	if utf8.RuneCountInString(form.Description) > constants.MaxDescriptionLength {
		errs.Add(FieldDescription, RuleMaxLength, fmt.Sprintf("description must be at most %d characters", constants.MaxDescriptionLength))
	}

	switch {
	case form.Status == "":
		errs.Add(FieldStatus, RuleRequired, "status is required")
	case !form.Status.Valid():
		errs.Add(FieldStatus, RuleInvalidStatus, fmt.Sprintf("unknown status %q", form.Status))
	}

	if form.PastDeadlineAllowed {
		errs.Merge(ValidateDeadlineFormat(form.Deadline))
	} else {
		errs.Merge(ValidateDeadline(form.Deadline, now))
	}

	errs.Merge(ValidateAssignment(form.Status, form.AssignedEmployeeID))

	return errs
}

// EmployeeForm holds the editable employee fields.
type EmployeeForm struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Username  string `json:"username" validate:"required,max=50"`
	Role      string `json:"role" validate:"required,max=50"`
	Password  string `json:"password" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateEmployeeForm checks the employee fields. The password policy applies
// to new employees and to edits that supply a new password.
func ValidateEmployeeForm(form EmployeeForm, isNew bool) Errors {
	errs := Errors{}

	if err := validate.Struct(form); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			errs.Add("form", RuleInvalidFormat, err.Error())
			return errs
		}
		for _, fe := range fieldErrs {
			rule, message := describe(fe)
			errs.Add(fe.Field(), rule, message)
		}
	}

	if PasswordRequired(isNew, form.Password) {
		errs.Merge(ValidatePassword(form.Password))
	}

	return errs
}

func describe(fe validator.FieldError) (string, string) {
	switch fe.Tag() {
	case "required":
		return RuleRequired, fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return RuleMaxLength, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return RuleEmail, fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fe.Tag(), fmt.Sprintf("%s is invalid", fe.Field())
	}
}
