package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yukikurage/etams/internal/models"
)

// NormalizeAssignee turns whatever the assignee widget produced into a positive
// employee ID or nil. Numbers, numeric strings and pointers to them are
// accepted; nil, blank strings, the "null" sentinel, placeholder objects,
// non-numeric strings and non-positive IDs all mean "no assignment".
func NormalizeAssignee(raw any) *uint64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case *uint64:
		if v == nil {
			return nil
		}
		return nonZero(*v)
	case uint64:
		return nonZero(v)
	case uint:
		return nonZero(uint64(v))
	case uint32:
		return nonZero(uint64(v))
	case uint16:
		return nonZero(uint64(v))
	case uint8:
		return nonZero(uint64(v))
	case int:
		return signed(int64(v))
	case int64:
		return signed(v)
	case int32:
		return signed(int64(v))
	case int16:
		return signed(int64(v))
	case int8:
		return signed(int64(v))
	case float64:
		return positive(v)
	case float32:
		return positive(float64(v))
	case json.Number:
		return fromString(v.String())
	case string:
		return fromString(v)
	case *string:
		if v == nil {
			return nil
		}
		return fromString(*v)
	default:
		// Objects, slices and anything else are placeholders.
		return nil
	}
}

// ValidateAssignment enforces that status is UNASSIGNED exactly when there is no assignee.
// Both fields are flagged together when the rule is broken.
func ValidateAssignment(status models.TaskStatus, rawAssignee any) Errors {
	errs := Errors{}
	assignee := NormalizeAssignee(rawAssignee)

	if assignee != nil && status == models.TaskStatusUnassigned {
		errs.Add(FieldStatus, RuleStatusForAssignedEmployee, "requires a real status when assigned")
		errs.Add(FieldAssignedEmployeeID, RuleAssignedEmployeeMismatch, "mismatched with unassigned status")
	}

	if assignee == nil && status != models.TaskStatusUnassigned {
		errs.Add(FieldStatus, RuleStatusForUnassigned, "must be UNASSIGNED when no assignee")
		errs.Add(FieldAssignedEmployeeID, RuleAssignedEmployeeRequired, "assignee required for this status")
	}

	return errs
}

func nonZero(id uint64) *uint64 {
	if id == 0 {
		return nil
	}
	return &id
}

func signed(id int64) *uint64 {
	if id <= 0 {
		return nil
	}
	return nonZero(uint64(id))
}

// maxSafeID is the largest integer a JSON number carries exactly. It only
// bounds float and string input.
const maxSafeID = 1 << 53

func fromString(s string) *uint64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return positive(f)
}

func positive(f float64) *uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > maxSafeID {
		return nil
	}
	id := uint64(f)
	return &id
}
