package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrRateLimited is returned when the identity provider throttles
	// passcode emails.
	ErrRateLimited = errors.New("rate limited")
	ErrCodeExpired = errors.New("verification code expired")
	// ErrProfileIncomplete guards actions that need a finished profile.
	ErrProfileIncomplete = errors.New("profile incomplete")
)
