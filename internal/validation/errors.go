// Package validation holds the form rules shared by the console and the API.
// Rules never fail with a Go error: they return Errors, which is empty when
// the input is valid.
package validation

import (
	"sort"
	"strings"
)

// Field names as they appear on the wire.
const (
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldStatus             = "status"
	FieldAssignedEmployeeID = "assignedEmployeeId"
	FieldDeadline           = "deadline"
	FieldFirstName          = "firstName"
	FieldLastName           = "lastName"
	FieldEmail              = "email"
	FieldUsername           = "username"
	FieldRole               = "role"
	FieldPassword           = "password"
)

// Rule names.
const (
	RuleRequired                  = "required"
	RuleMaxLength                 = "maxLength"
	RuleEmail                     = "email"
	RuleInvalidStatus             = "invalidStatus"
	RuleStatusForAssignedEmployee = "statusForAssignedEmployee"
	RuleAssignedEmployeeMismatch  = "assignedEmployeeMismatch"
	RuleStatusForUnassigned       = "statusForUnassigned"
	RuleAssignedEmployeeRequired  = "assignedEmployeeRequired"
	RuleUnknownEmployee           = "unknownEmployee"
	RuleTaken                     = "taken"
	RuleInvalidFormat             = "invalidFormat"
	RulePastDate                  = "pastDate"
	RuleMinLength                 = "minLength"
	RuleLowercase                 = "lowercase"
	RuleUppercase                 = "uppercase"
	RuleDigit                     = "digit"
	RuleSpecial                   = "special"
)

// FieldErrors maps a rule name to its message.
type FieldErrors map[string]string

// Errors maps a field name to the rules it violates.
type Errors map[string]FieldErrors

// Add records a violated rule on a field.
func (e Errors) Add(field, rule, message string) {
	if e[field] == nil {
		e[field] = FieldErrors{}
	}
	e[field][rule] = message
}

// Merge copies every violation from other into e and returns e.
func (e Errors) Merge(other Errors) Errors {
	for field, rules := range other {
		for rule, message := range rules {
			e.Add(field, rule, message)
		}
	}
	return e
}

// Has reports whether field violates rule.
func (e Errors) Has(field, rule string) bool {
	_, ok := e[field][rule]
	return ok
}

// Valid reports whether no rule was violated.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the invalid field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error renders the violations as "field: message; ..." so Errors can travel as an error value.
func (e Errors) Error() string {
	var parts []string
	for _, field := range e.Fields() {
		rules := make([]string, 0, len(e[field]))
		for rule := range e[field] {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			parts = append(parts, field+": "+e[field][rule])
		}
	}
	return strings.Join(parts, "; ")
}
