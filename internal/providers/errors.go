package providers

import (
	"fmt"
	"net/http"
)

// ValidationError reports a malformed or incomplete request. It is raised
// before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// TransportError reports a network failure, timeout or non-2xx response from a provider.
type TransportError struct {
	Provider   string
	Method     string
	Endpoint   string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s %s: provider returned %d: %s", e.Provider, e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", e.Provider, e.Method, e.Endpoint, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the provider answered 404.
func (e *TransportError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// UnsupportedFlowError reports an operation the provider cannot serve through
// the requested flow, such as a direct pull on a link-flow provider.
type UnsupportedFlowError struct {
	Provider  string
	Operation string
	Reason    string
}

func (e *UnsupportedFlowError) Error() string {
	return fmt.Sprintf("%s does not support %s: %s", e.Provider, e.Operation, e.Reason)
}

// NotFoundError reports an unknown resource, such as a dispute id on status lookup.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
