package allure

import (
	"errors"
	"fmt"
)

// ConfigError represents a failure to bootstrap the runtime, such as an
// unusable results directory.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(err error) *ConfigError {
	return &ConfigError{Err: err}
}

// IsConfigError checks if the error is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return err != nil && errors.As(err, &configErr)
}

// WriteError represents a failure to persist one artifact of the results
// layout. Inside a test run these are logged and swallowed; tools that
// prepare a results directory surface them.
type WriteError struct {
	Artifact string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Artifact, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError for the named artifact.
func NewWriteError(artifact string, err error) *WriteError {
	return &WriteError{Artifact: artifact, Err: err}
}

// IsWriteError checks if the error is or wraps a WriteError.
func IsWriteError(err error) bool {
	var writeErr *WriteError
	return err != nil && errors.As(err, &writeErr)
}
