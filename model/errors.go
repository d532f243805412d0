package model

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every ParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError reports an input that is out of range or degenerate.
type ParameterError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func NewParameterError(name string, value interface{}, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}
