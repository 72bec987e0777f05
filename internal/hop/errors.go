package hop

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("hop: validation failed")

// Kind classifies a validation failure.
type Kind string

const (
	KindOutOfRange Kind = "OUT_OF_RANGE"
	KindNegative   Kind = "NEGATIVE"
	KindNotInSet   Kind = "NOT_IN_SET"
	KindVersion    Kind = "UNSUPPORTED_VERSION"
)

// ValidationError is returned by every validated setter. The field it names is
// left untouched when one is returned.
type ValidationError struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports a match against ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func badPercentage(field string, v float64) *ValidationError {
	return &ValidationError{
		Kind:    KindOutOfRange,
		Field:   field,
		Value:   formatDouble(v),
		Message: "Bad percentage: " + formatDouble(v),
	}
}

func badAmount(field string, v float64) *ValidationError {
	return &ValidationError{
		Kind:    KindNegative,
		Field:   field,
		Value:   formatDouble(v),
		Message: "Bad amount: " + formatDouble(v),
	}
}

func badTime(field string, v float64) *ValidationError {
	return &ValidationError{
		Kind:    KindNegative,
		Field:   field,
		Value:   formatDouble(v),
		Message: "Bad time: " + formatDouble(v),
	}
}

func notInSet(field, what, v string) *ValidationError {
	return &ValidationError{
		Kind:    KindNotInSet,
		Field:   field,
		Value:   v,
		Message: fmt.Sprintf("%s is not a valid %s", v, what),
	}
}

func badVersion(v int) *ValidationError {
	return &ValidationError{
		Kind:    KindVersion,
		Field:   FieldVersion,
		Value:   strconv.Itoa(v),
		Message: fmt.Sprintf("Unsupported version: %d", v),
	}
}
