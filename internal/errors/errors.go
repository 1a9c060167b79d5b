package apperrors

import (
	"context"
	"errors"
	"flag"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was interrupted (e.g., SIGINT).
)

// ConfigError reports invalid flags, environment values or config files.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports a single field that failed validation.
type ValidationError struct {
	// Field is the name of the offending setting.
	Field string
	// Message explains the failure.
	Message string
}

// Error returns a formatted message naming the field.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// RuntimeError wraps a failure of one of the running components (terminal
// program, metrics server, trace exporter) with the component's name.
type RuntimeError struct {
	// Component names the part that failed.
	Component string
	// Cause is the underlying error.
	Cause error
}

// Error returns the component name followed by the cause.
func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Cause)
}

// Unwrap returns the underlying cause.
func (e RuntimeError) Unwrap() error { return e.Cause }

// WrapError wraps err with a formatted context message. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	var configErr ConfigError
	var validationErr ValidationError
	switch {
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
