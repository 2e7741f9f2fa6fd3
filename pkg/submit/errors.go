package submit

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackDetail is shown when a rejection carries no usable detail.
const FallbackDetail = "Failed to create change record"

// RejectedError reports a non-2xx response.
type RejectedError struct {
	Status int
	// Detail is the response body's "detail" string, or "" when absent.
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("submit: rejected with status %d", e.Status)
	}
	return fmt.Sprintf("submit: rejected with status %d: %s", e.Status, e.Detail)
}

// Message returns the user-facing rejection text.
func (e *RejectedError) Message() string {
	if e.Detail == "" {
		return "Error: " + FallbackDetail
	}
	return "Error: " + e.Detail
}

// NetworkError reports a request that never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "submit: network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Message returns the user-facing network error text.
func (e *NetworkError) Message() string {
	return "Network error: " + e.Err.Error()
}

// IsSecretRejection reports whether err is a rejection whose detail
// mentions "secret". The match is case-sensitive.
func IsSecretRejection(err error) bool {
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		return false
	}
	return strings.Contains(rejected.Detail, "secret")
}
