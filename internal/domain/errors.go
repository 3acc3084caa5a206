package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejected the session credential.
// The HTTP adapter has already torn down the session by the time callers see it.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError is a client-side rule violation. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// APIErrorKind categorises a failed backend call.
type APIErrorKind string

const (
	APIErrorTransport APIErrorKind = "transport"
	APIErrorStatus    APIErrorKind = "status"
	APIErrorDecode    APIErrorKind = "decode"
)

// APIError describes a backend call that did not succeed.
type APIError struct {
	Kind    APIErrorKind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case APIErrorStatus:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	case APIErrorDecode:
		return fmt.Sprintf("%s %s: decoding response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }
