package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/authflow"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	idgen "github.com/riskibarqy/creator-hub/internal/platform/id"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
)

// Where the client goes after a successful passcode verification.
const (
	NextStepName       = "name"
	NextStepOnboarding = "onboarding"
	NextStepDashboard  = "dashboard"
)

type RequestCodeInput struct {
	AttemptID   string
	Email       string
	AccessToken string
}

type VerifyCodeInput struct {
	AttemptID string
	Code      string
}

type VerifyCodeResult struct {
	Session  session.Session
	Profile  profile.Profile
	NextStep string
}

type AuthService struct {
	identity IdentityProvider
	flows    authflow.Store
	profiles profile.Repository
	ids      idgen.Generator
	logger   *logging.Logger
	metrics  Metrics
	now      func() time.Time
}

func NewAuthService(
	identity IdentityProvider,
	flows authflow.Store,
	profiles profile.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
	metrics Metrics,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		identity: identity,
		flows:    flows,
		profiles: profiles,
		ids:      ids,
		logger:   logger,
		metrics:  metricsOrNoop(metrics),
		now:      time.Now,
	}
}

// RequestCode starts or resends a passcode for the attempt. Any session held
// by the caller is signed out before the provider is asked for a new code.
func (s *AuthService) RequestCode(ctx context.Context, input RequestCodeInput) (authflow.Flow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.RequestCode")
	defer span.End()

	flow, err := s.loadOrStartFlow(ctx, input.AttemptID)
	if err != nil {
		return authflow.Flow{}, err
	}

	now := s.now().UTC()
	if err := flow.BeginRequest(input.Email, now); err != nil {
		s.metrics.ObserveOTPRequest(OTPResultInvalid)
		if putErr := s.flows.PutFlow(ctx, flow); putErr != nil {
			return flow, fmt.Errorf("store auth flow: %w", putErr)
		}
		return flow, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	if token := strings.TrimSpace(input.AccessToken); token != "" {
		if err := s.identity.SignOut(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "sign out before passcode request failed", "attempt_id", flow.AttemptID, "error", err)
		}
	}

	sendErr := s.identity.SendOTP(ctx, OTPRequest{
		Email:      flow.Email,
		CreateUser: true,
		Metadata:   map[string]any{"role": authflow.RoleCreator},
	})

	var result error
	switch {
	case sendErr == nil:
		flow.CodeSent(s.now().UTC())
		s.metrics.ObserveOTPRequest(OTPResultSent)
	case errors.Is(sendErr, ErrRateLimited):
		flow.RequestFailed(authflow.MessageRateLimited, s.now().UTC())
		s.metrics.ObserveOTPRequest(OTPResultRateLimited)
		result = fmt.Errorf("%w: %s", ErrRateLimited, authflow.MessageRateLimited)
	default:
		flow.RequestFailed(sendErr.Error(), s.now().UTC())
		s.metrics.ObserveOTPRequest(OTPResultFailed)
		result = fmt.Errorf("send passcode: %w", sendErr)
	}

	if err := s.flows.PutFlow(ctx, flow); err != nil {
		return flow, fmt.Errorf("store auth flow: %w", err)
	}
	return flow, result
}

// VerifyCode exchanges the passcode for a session. The attempt is deleted on
// success; an expired code sends it back to email entry.
func (s *AuthService) VerifyCode(ctx context.Context, input VerifyCodeInput) (VerifyCodeResult, authflow.Flow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyCode")
	defer span.End()

	attemptID := strings.TrimSpace(input.AttemptID)
	if attemptID == "" {
		return VerifyCodeResult{}, authflow.Flow{}, fmt.Errorf("%w: attempt_id is required", ErrInvalidInput)
	}
	flow, exists, err := s.flows.GetFlow(ctx, attemptID)
	if err != nil {
		return VerifyCodeResult{}, authflow.Flow{}, fmt.Errorf("get auth flow: %w", err)
	}
	if !exists {
		return VerifyCodeResult{}, authflow.Flow{}, fmt.Errorf("%w: sign-in attempt=%s", ErrNotFound, attemptID)
	}

	if err := flow.BeginVerify(input.Code, s.now().UTC()); err != nil {
		if errors.Is(err, authflow.ErrInvalidCode) {
			if putErr := s.flows.PutFlow(ctx, flow); putErr != nil {
				return VerifyCodeResult{}, flow, fmt.Errorf("store auth flow: %w", putErr)
			}
		}
		return VerifyCodeResult{}, flow, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	sess, verifyErr := s.identity.VerifyOTP(ctx, flow.Email, flow.Code)
	if verifyErr != nil {
		result := fmt.Errorf("verify passcode: %w", verifyErr)
		if errors.Is(verifyErr, ErrCodeExpired) {
			flow.CodeExpired(s.now().UTC())
			result = fmt.Errorf("%w: %s", ErrCodeExpired, authflow.MessageCodeExpired)
		} else {
			flow.VerifyFailed(verifyErr.Error(), s.now().UTC())
		}
		if err := s.flows.PutFlow(ctx, flow); err != nil {
			return VerifyCodeResult{}, flow, fmt.Errorf("store auth flow: %w", err)
		}
		return VerifyCodeResult{}, flow, result
	}

	if err := s.flows.DeleteFlow(ctx, flow.AttemptID); err != nil {
		s.logger.WarnContext(ctx, "delete verified auth flow failed", "attempt_id", flow.AttemptID, "error", err)
	}

	out := VerifyCodeResult{Session: sess, NextStep: NextStepName}
	item, exists, err := s.profiles.GetByUserID(ctx, sess.User.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "load profile after sign-in failed", "user_id", sess.User.UserID, "error", err)
		return out, flow, nil
	}
	if exists {
		out.Profile = item
		if item.HasName() {
			out.NextStep = NextStepDashboard
		}
	}
	return out, flow, nil
}

// SaveName stores the minimal name fields collected right after sign-in.
func (s *AuthService) SaveName(ctx context.Context, userID, firstName, lastName string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SaveName")
	defer span.End()

	userID = strings.TrimSpace(userID)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if firstName == "" || lastName == "" {
		return profile.Profile{}, fmt.Errorf("%w: first_name and last_name are required", ErrInvalidInput)
	}

	existing, _, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	existing.UserID = userID
	existing.FirstName = firstName
	existing.LastName = lastName

	stored, err := s.profiles.Upsert(ctx, existing)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile name: %w", err)
	}
	return stored, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.GetProfile")
	defer span.End()

	item, exists, err := s.profiles.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile for user=%s", ErrNotFound, userID)
	}
	return item, nil
}

// ResolveSession classifies the bearer token once per request. Tokens that
// fail verification are signed out best effort. An unreachable provider is
// returned as an error instead so outages do not log users out.
func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ResolveSession")
	defer span.End()

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return session.Unauthenticated(), nil
	}

	principal, err := s.identity.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			return session.State{}, err
		}
		s.signOutQuietly(ctx, accessToken)
		return session.Invalid(err.Error()), nil
	}

	item, exists, err := s.profiles.GetByUserID(ctx, principal.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile lookup during session resolve failed", "user_id", principal.UserID, "error", err)
		s.signOutQuietly(ctx, accessToken)
		return session.Invalid("profile unavailable"), nil
	}

	return session.Authenticated(principal, exists && item.IsComplete()), nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Refresh")
	defer span.End()

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return session.Session{}, fmt.Errorf("%w: refresh_token is required", ErrInvalidInput)
	}
	sess, err := s.identity.RefreshSession(ctx, refreshToken)
	if err != nil {
		return session.Session{}, fmt.Errorf("refresh session: %w", err)
	}
	return sess, nil
}

func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignOut")
	defer span.End()

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}
	if err := s.identity.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (s *AuthService) loadOrStartFlow(ctx context.Context, attemptID string) (authflow.Flow, error) {
	attemptID = strings.TrimSpace(attemptID)
	if attemptID != "" {
		flow, exists, err := s.flows.GetFlow(ctx, attemptID)
		if err != nil {
			return authflow.Flow{}, fmt.Errorf("get auth flow: %w", err)
		}
		if exists {
			return flow, nil
		}
	} else {
		id, err := s.ids.NewID()
		if err != nil {
			return authflow.Flow{}, fmt.Errorf("generate attempt id: %w", err)
		}
		attemptID = id
	}
	return authflow.New(attemptID, s.now().UTC()), nil
}

func (s *AuthService) signOutQuietly(ctx context.Context, accessToken string) {
	if err := s.identity.SignOut(ctx, accessToken); err != nil {
		s.logger.WarnContext(ctx, "sign out of invalid session failed", "error", err)
	}
}
