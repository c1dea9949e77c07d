package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPlayerNotFound is returned when a player id does not exist.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrTaskNotFound is returned when a task id is unknown or its status
	// record has expired.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound is returned when a credential lookup misses.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned on registration with a known username.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrEmailTaken is returned on registration with a known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInactiveUser is returned when a deactivated account logs in.
	ErrInactiveUser = errors.New("user account is inactive")

	// ErrInvalidToken is returned for a missing, malformed or expired token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when the caller's role is insufficient.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrPublishFailed is returned when the message broker publish fails.
	ErrPublishFailed = errors.New("failed to publish task to message queue")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
