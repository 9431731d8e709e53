// Package exception defines the error types used across the Stride engine.
// It separates deliberate aborts (operator cancellation, dry-run
// short-circuits, contract violations) from unrecovered errors, which the
// engine never intercepts.
package exception

import (
	"errors"
	"fmt"
	"reflect"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// AbortError stops a run deliberately. It carries the message shown to the
// operator and the exit code the process should terminate with. It is the
// only error type the runner converts into an Aborted outcome; every other
// error becomes a fatal Failed outcome.
type AbortError struct {
	// Message is the operator-facing explanation. May be empty for benign
	// short-circuits such as a query dump.
	Message string
	// Code is the exit code carried by the abort.
	Code model.ExitCode
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return "run aborted"
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AbortError) Unwrap() error {
	return e.Err
}

// Abort creates an AbortError with the generic failure exit code.
func Abort(message string) *AbortError {
	return &AbortError{Message: message, Code: model.ExitCodeFailure}
}

// Abortf creates an AbortError with the generic failure exit code from a
// format string.
func Abortf(format string, a ...interface{}) *AbortError {
	return &AbortError{Message: fmt.Sprintf(format, a...), Code: model.ExitCodeFailure}
}

// AbortWithCode creates an AbortError carrying an explicit exit code.
// A zero code marks a successful short-circuit.
func AbortWithCode(code model.ExitCode, message string) *AbortError {
	return &AbortError{Message: message, Code: code}
}

// Setup creates an AbortError for a configuration or contract violation,
// carrying the invalid-setup exit code. Setup errors are never retried.
func Setup(message string) *AbortError {
	return &AbortError{Message: message, Code: model.ExitCodeInvalidSetup}
}

// Setupf creates a setup AbortError from a format string.
func Setupf(format string, a ...interface{}) *AbortError {
	return &AbortError{Message: fmt.Sprintf(format, a...), Code: model.ExitCodeInvalidSetup}
}

// AsAbort extracts an AbortError from err's chain.
func AsAbort(err error) (*AbortError, bool) {
	var abort *AbortError
	if errors.As(err, &abort) {
		return abort, true
	}
	return nil, false
}

// IsSetup reports whether err is an abort carrying the invalid-setup code.
func IsSetup(err error) bool {
	if abort, ok := AsAbort(err); ok {
		return abort.Code == model.ExitCodeInvalidSetup
	}
	return false
}

// KindOf returns a short name for the error's dynamic type, used as the
// "error kind" column of the final exception report.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}

// ExtractErrorMessage returns the cleanest available message for an error.
// For an AbortError that is the Message field; otherwise the standard
// Error() string.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var abort *AbortError
	if errors.As(err, &abort) && abort.Message != "" {
		return abort.Message
	}
	return err.Error()
}
