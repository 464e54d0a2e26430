package relay

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated indicates the relay rejected the session; the
	// user must log in again.
	ErrUnauthenticated = errors.New("relay session not authenticated")

	// ErrUnavailable indicates the relay itself is unreachable.
	ErrUnavailable = errors.New("relay unreachable")
)

// APIError is a non-auth error response from the relay.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a relay 404, e.g. a relay build
// without the descendants endpoint. Callers fall back to manual paging.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
