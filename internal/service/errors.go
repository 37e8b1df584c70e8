package service

import (
	"errors"
	"fmt"

	"kw8/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrValidationFailed     = errors.New("validation failed")
	ErrRemoteDisabled       = errors.New("remote backend is not enabled")
	ErrRemoteUnavailable    = errors.New("remote backend is not configured")
	ErrVariantNotFound      = errors.New("workout variant not found")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("invalid token")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
