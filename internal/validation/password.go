package validation

import (
	"fmt"

	"github.com/yukikurage/etams/internal/constants"
)

// PasswordRequired reports whether the password policy applies: always for
// new employees, and for edits only when a new password was typed. A blank
// password on edit keeps the stored one.
func PasswordRequired(isNew bool, password string) bool {
	return isNew || password != ""
}

// ValidatePassword applies the password policy. Every failing rule is reported.
func ValidatePassword(password string) Errors {
	errs := Errors{}

	if password == "" {
		errs.Add(FieldPassword, RuleRequired, "password is required")
		return errs
	}

	if len([]rune(password)) < constants.MinPasswordLength {
		errs.Add(FieldPassword, RuleMinLength, fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	if !lower {
		errs.Add(FieldPassword, RuleLowercase, "password must contain a lowercase letter")
	}
	if !upper {
		errs.Add(FieldPassword, RuleUppercase, "password must contain an uppercase letter")
	}
	if !digit {
		errs.Add(FieldPassword, RuleDigit, "password must contain a digit")
	}
	if !special {
		errs.Add(FieldPassword, RuleSpecial, "password must contain a special character")
	}

	return errs
}
