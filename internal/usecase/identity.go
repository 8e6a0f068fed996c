package usecase

import (
	"context"

	"github.com/riskibarqy/creator-hub/internal/domain/session"
)

// OTPRequest asks the identity provider to email a one-time passcode.
type OTPRequest struct {
	Email      string
	CreateUser bool
	Metadata   map[string]any
}

// IdentityProvider is the hosted auth service. Implementations translate
// provider failures into ErrRateLimited, ErrCodeExpired, ErrUnauthorized,
// ErrInvalidInput and ErrDependencyUnavailable.
type IdentityProvider interface {
	SendOTP(ctx context.Context, req OTPRequest) error
	VerifyOTP(ctx context.Context, email, code string) (session.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (session.Session, error)
	VerifyAccessToken(ctx context.Context, accessToken string) (session.Principal, error)
	SignOut(ctx context.Context, accessToken string) error
}
