package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned without issuing a request when no usable token is stored.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrFetchFailed matches every *FetchError.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrInvalidEndpoint is returned for endpoints that are not absolute paths.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrResponseTooLarge is wrapped by a FetchError when a body exceeds MaxResponseBytes.
	ErrResponseTooLarge = errors.New("response too large")
)

// FetchError is a non-2xx response, a transport failure, or an unreadable body
type FetchError struct {
	Op         string
	StatusCode int // zero when no response was received
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Is makes errors.Is(err, ErrFetchFailed) true for any FetchError
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage returns a message suitable for an alert or inline error text
func UserMessage(err error) string {
	var fe *FetchError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "Please sign in again."
	case errors.As(err, &fe):
		return fe.Message
	default:
		return err.Error()
	}
}
