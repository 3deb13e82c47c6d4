package remote

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any network activity when the request
// input is not acceptable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NetworkError wraps a transport level failure, including cancellation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError represents a non-2xx backend response.
type ServerError struct {
	Op         string
	StatusCode int
	// Detail is taken from the backend `detail` field when present
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: server responded with %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server responded with %d: %s", e.Op, e.StatusCode, e.Detail)
}

// DecodeError reports a malformed response body.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsServerFailure returns true when the backend answered but the answer was
// unusable, either by status code or by body.
func IsServerFailure(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsNetworkFailure returns true when the backend could not be reached.
func IsNetworkFailure(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// IsValidation returns true for errors raised before any request was sent.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
