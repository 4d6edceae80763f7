package errors

import (
	"errors"
	"fmt"
)

// TransientError represents a server-side failure (HTTP 5xx) or timeout that
// is expected to clear on retry.
type TransientError struct {
	Status  int
	Message string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient upstream error (status %d): %s", e.Status, e.Message)
}

// NewTransientError creates a new TransientError for the given HTTP status.
func NewTransientError(status int, message string) *TransientError {
	return &TransientError{Status: status, Message: message}
}

// IsTransientError reports whether err is a TransientError (even when wrapped).
func IsTransientError(err error) bool {
	var trErr *TransientError
	return errors.As(err, &trErr)
}

// IsRetryable reports whether err is in the retryable class: rate limits and
// transient server errors. Auth errors are explicitly not retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsAuthError(err) {
		return false
	}
	return IsRateLimitError(err) || IsTransientError(err)
}
