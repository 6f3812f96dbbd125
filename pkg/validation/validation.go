package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	defaultValidator = newValidator()

	personNamePattern = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)
	mobilePattern     = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

const passwordSpecials = "!@#$%^&*"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	return v
}

// Violation names the first struct field that failed a rule.
type Violation struct {
	Field string
	Tag   string
}

// FirstViolation validates req and reports the first failing field,
// or nil when every rule passes. Fields are checked in declaration order.
func FirstViolation(req any) *Violation {
	err := defaultValidator.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &Violation{Tag: "invalid"}
	}
	fe := validationErrs[0]
	return &Violation{Field: fe.StructField(), Tag: fe.ActualTag()}
}

// IsStrongPassword requires at least one upper case letter, one lower case
// letter, one digit and one of !@#$%^&*.
func IsStrongPassword(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
