package errors

import (
	"errors"
	"fmt"
)

// AuthError represents an authentication or authorization failure (HTTP
// 401/403) from an upstream API. Auth errors are never retried: retrying a
// request with the same credentials cannot succeed, so the whole operation
// aborts instead of producing partial data.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authorization failed (status %d): %s", e.Status, e.Message)
}

// NewAuthError creates a new AuthError for the given HTTP status.
func NewAuthError(status int, message string) *AuthError {
	return &AuthError{Status: status, Message: message}
}

// IsAuthError reports whether err is an AuthError (even when wrapped).
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
