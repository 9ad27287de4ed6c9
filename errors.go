package parex

import (
	"errors"
	"fmt"
)

// Common errors returned by parex operations
var (
	// ErrNotDirectory indicates the configured working directory is not a directory
	ErrNotDirectory = errors.New("parex: working directory is not a directory")

	// ErrUnsupported indicates the platform has no readiness mechanism
	ErrUnsupported = errors.New("parex: readiness polling not supported on this platform")

	// ErrClosed indicates the manager has been closed
	ErrClosed = errors.New("parex: manager closed")
)

// ConfigError reports an unusable construction-time configuration
type ConfigError struct {
	// Dir is the working directory that failed validation
	Dir string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("parex config %q: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SpawnError reports a failure to start a single command. It is fatal for
// that Execute call only; already-running processes are unaffected.
type SpawnError struct {
	// Command is the command string passed to Execute
	Command string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *SpawnError) Error() string {
	return fmt.Sprintf("parex spawn %q: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// MultiplexError reports a fatal failure of the readiness mechanism itself.
// Wait aborts with this error; output captured before the failure remains
// available through Outputs.
type MultiplexError struct {
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *MultiplexError) Error() string {
	return fmt.Sprintf("parex multiplex: %v", e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *MultiplexError) Unwrap() error {
	return e.Err
}

// MultiError aggregates the per-resource failures of operations that touch
// every tracked process, such as Close releasing each registered endpoint or
// WriteOutputs persisting each captured buffer. One bad endpoint or log file
// must not hide the rest.
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated failures
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add records a failure; nil errors are ignored so callers can feed it
// unconditionally from a loop
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err collapses the collection: nil if nothing failed, otherwise the
// MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
