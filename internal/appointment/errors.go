package appointment

import (
	"fmt"
	"net/http"
)

// TransportError means no usable response came back at all: connection
// refused, DNS failure, or the request timing out.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Detail carries the human message from
// the backend's {"detail": "..."} body when one was present.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server responded with status %d", e.StatusCode)
}

// NotFound reports whether the backend said the resource does not exist.
func (e *ServerError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ValidationError is a client-side pre-flight rejection. It never reaches
// the network and its message is meant to render inline next to the field
// that caused it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
