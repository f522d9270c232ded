package api

import (
	"errors"
	"fmt"
)

var (
	// ErrLookup matches any non-200 answer from the service.
	ErrLookup = errors.New("lookup failed")

	// ErrTransport matches failures to reach the service or read its answer.
	ErrTransport = errors.New("connection error")
)

// StatusError carries the unexpected HTTP status of a service call.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("service returned status %d", e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrLookup
}

func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}
