package inspector

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a configuration error.
type ErrorType int

const (
	// ErrTypeMissingInstance indicates the caller did not supply an instance ID
	ErrTypeMissingInstance ErrorType = iota
	// ErrTypeUnknownEditor indicates a property asked for an unregistered editor kind
	ErrTypeUnknownEditor
	// ErrTypeRowLookup indicates a row or group could not be found where one is required
	ErrTypeRowLookup
	// ErrTypeEditorBuild indicates an editor factory failed
	ErrTypeEditorBuild
	// ErrTypeUnknown indicates an unexpected configuration problem
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeMissingInstance:
		return "Missing Instance ID"
	case ErrTypeUnknownEditor:
		return "Unknown Editor"
	case ErrTypeRowLookup:
		return "Row Lookup Error"
	case ErrTypeEditorBuild:
		return "Editor Build Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ErrDisposed is returned by mutating calls on a disposed surface.
var ErrDisposed = errors.New("inspector: surface is disposed")

// ConfigError is a fatal construction or build error. Configuration errors are
// never retried; the caller has to fix the schema or the call site.
type ConfigError struct {
	Type     ErrorType // Category of error
	Message  string    // Human-readable error message
	Property string    // Property the error relates to (if any)
	Err      error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Property != "" {
		msg = fmt.Sprintf("%s (property %q)", msg, e.Property)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewMissingInstanceError creates the error for a missing instance ID
func NewMissingInstanceError() *ConfigError {
	return &ConfigError{
		Type:    ErrTypeMissingInstance,
		Message: "an instance ID is required and must be stable for the inspected target",
	}
}

// NewUnknownEditorError creates the error for an unregistered editor kind
func NewUnknownEditorError(kind, property string) *ConfigError {
	return &ConfigError{
		Type:     ErrTypeUnknownEditor,
		Message:  fmt.Sprintf("no editor registered for kind %q", kind),
		Property: property,
	}
}

// NewRowLookupError creates the error for an inconsistent row or group lookup
func NewRowLookupError(message string) *ConfigError {
	return &ConfigError{
		Type:    ErrTypeRowLookup,
		Message: message,
	}
}

// NewEditorBuildError wraps a failing editor factory
func NewEditorBuildError(property string, err error) *ConfigError {
	return &ConfigError{
		Type:     ErrTypeEditorBuild,
		Message:  "failed to create editor",
		Property: property,
		Err:      err,
	}
}

func configErrorType(err error) (ErrorType, bool) {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Type, true
	}
	return ErrTypeUnknown, false
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	_, ok := configErrorType(err)
	return ok
}

// IsMissingInstanceError checks if an error reports a missing instance ID
func IsMissingInstanceError(err error) bool {
	t, ok := configErrorType(err)
	return ok && t == ErrTypeMissingInstance
}

// IsUnknownEditorError checks if an error reports an unregistered editor kind
func IsUnknownEditorError(err error) bool {
	t, ok := configErrorType(err)
	return ok && t == ErrTypeUnknownEditor
}

// IsRowLookupError checks if an error reports an inconsistent row lookup
func IsRowLookupError(err error) bool {
	t, ok := configErrorType(err)
	return ok && t == ErrTypeRowLookup
}
