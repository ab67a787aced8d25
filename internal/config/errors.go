package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// FieldError reports the configuration key a validation failure is about.
// It matches ErrInvalidConfig and its Cause with errors.Is.
type FieldError struct {
	Key    string
	Reason string
	Cause  error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrInvalidConfig, e.Key, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Cause}
}

func invalid(key, reason string, cause error) error {
	return &FieldError{Key: key, Reason: reason, Cause: cause}
}
