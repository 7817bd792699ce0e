package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	MinSemester = 1
	MaxSemester = 8
	MinMonth    = 1
	MaxMonth    = 12
)

// ErrValidation is wrapped by every ValidationError
var ErrValidation = errors.New("validation failed")

// ValidationError describes a rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidateSemester is the single bounds check for academic semesters.
func ValidateSemester(semester int) error {
	return checkRange("semester", semester, MinSemester, MaxSemester)
}

// ValidateMonth is the single bounds check for calendar months.
func ValidateMonth(month int) error {
	return checkRange("month", month, MinMonth, MaxMonth)
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("must be between %d and %d, got %d", lo, hi, v),
		}
	}
	return nil
}

func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "listing", Reason: err.Error()}
	}
	fe := fieldErrs[0]
	reason := fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}
