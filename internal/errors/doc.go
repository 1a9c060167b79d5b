// Package apperrors defines the application's error types and exit codes,
// separating configuration mistakes from runtime failures and carrying the
// underlying cause where there is one.
//
// Errors are wrapped with fmt.Errorf and %w; every type that wraps exposes
// Unwrap so errors.Is and errors.As see through it.
package apperrors
