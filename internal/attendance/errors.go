package attendance

import (
	"errors"
	"fmt"
)

// ConfigurationError reports malformed caller input for a whole invocation.
// It is raised before any remote call is made and is never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsConfigurationError checks if err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// TransportFailure reports that an entire batch-mode call failed, as opposed
// to individual users being rejected.
type TransportFailure struct {
	Endpoint string
	Err      error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("batch transport to %s failed: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportFailure) Unwrap() error {
	return e.Err
}

// IsTransportFailure checks if err is or wraps a TransportFailure.
func IsTransportFailure(err error) bool {
	var tf *TransportFailure
	return errors.As(err, &tf)
}
