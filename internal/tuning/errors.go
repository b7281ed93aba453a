package tuning

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCombination is reported by callers when Evaluate returns no settings.
	ErrInvalidCombination = errors.New("tuning: invalid input/controller combination")

	// ErrInvalidParameter indicates a non-positive or non-finite process parameter.
	ErrInvalidParameter = errors.New("tuning: process parameter must be a positive number")

	ErrUnknownInputType      = errors.New("tuning: unknown input type")
	ErrUnknownControllerType = errors.New("tuning: unknown controller type")
)

// ParameterError names the process parameter that failed validation.
type ParameterError struct {
	Name  string
	Value float64
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g", ErrInvalidParameter.Error(), e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
