package hostedauth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v5"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	basecache "github.com/riskibarqy/creator-hub/internal/platform/cache"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
	"github.com/riskibarqy/creator-hub/internal/platform/resilience"
	"github.com/riskibarqy/creator-hub/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
)

const maxResponseBytes = 1 << 20

var errTransient = crerr.New("identity provider transient failure")

type Config struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	JWTSecret         string
	Timeout           time.Duration
	MaxRetries        int
	RetryInterval     time.Duration
	PrincipalCacheTTL time.Duration
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client talks to a GoTrue-compatible auth API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	jwtSecret     []byte
	maxRetries    int
	retryInterval time.Duration
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	principals    *basecache.Store
	principalCacheTTL time.Duration
	flight        singleflight.Group
	now           func() time.Time
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 500 * time.Millisecond
	}

	var secret []byte
	if s := strings.TrimSpace(cfg.JWTSecret); s != "" {
		secret = []byte(s)
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		jwtSecret:     secret,
		maxRetries:    max(cfg.MaxRetries, 0),
		retryInterval: retryInterval,
		logger:        logger.Named("hostedauth"),
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		principals:    basecache.NewStore(cfg.PrincipalCacheTTL),
		principalCacheTTL: cfg.PrincipalCacheTTL,
		now:           time.Now,
	}
}

func (c *Client) SendOTP(ctx context.Context, req usecase.OTPRequest) error {
	payload := otpRequest{
		Email:      req.Email,
		CreateUser: req.CreateUser,
		Data:       req.Metadata,
	}
	return c.doJSON(ctx, call{method: http.MethodPost, path: "/otp", body: payload})
}

func (c *Client) VerifyOTP(ctx context.Context, email, code string) (session.Session, error) {
	var resp sessionResponse
	err := c.doJSON(ctx, call{
		method: http.MethodPost,
		path:      "/verify",
		body:      verifyRequest{Type: "email", Email: email, Token: code},
		target:    &resp,
		verifyOTP: true,
	})
	if err != nil {
		return session.Session{}, err
	}
	return c.toSession(resp)
}

func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (session.Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return session.Session{}, fmt.Errorf("%w: refresh token is required", usecase.ErrInvalidInput)
	}

	var resp sessionResponse
	err := c.doJSON(ctx, call{
		method:    http.MethodPost,
		path:      "/token",
		query:     url.Values{"grant_type": []string{"refresh_token"}},
		body:      refreshRequest{RefreshToken: refreshToken},
		target:    &resp,
		retryable: true,
	})
	if err != nil {
		return session.Session{}, err
	}
	return c.toSession(resp)
}

// VerifyAccessToken checks the token locally, then asks the provider for the
// user behind it. Confirmed principals are cached per token.
func (c *Client) VerifyAccessToken(ctx context.Context, accessToken string) (session.Principal, error) {
	accessToken = strings.TrimSpace(accessToken)
	claims, err := c.parseToken(accessToken)
	if err != nil {
		return session.Principal{}, err
	}

	key := hashToken(accessToken)
	if v, ok := c.principals.Get(ctx, key); ok {
		if principal, ok := v.(session.Principal); ok {
			return principal, nil
		}
	}

	out, err, _ := c.flight.Do(key, func() (any, error) {
		var resp userResponse
		if err := c.doJSON(ctx, call{
			method:    http.MethodGet,
			path:      "/user",
			bearer:    accessToken,
			target:    &resp,
			retryable: true,
		}); err != nil {
			return nil, err
		}
		principal := resp.principal()
		if principal.UserID == "" || principal.UserID != claims.subject {
			return nil, fmt.Errorf("%w: token subject does not match provider user", usecase.ErrUnauthorized)
		}
		c.principals.SetWithTTL(ctx, key, principal, c.principalTTL(claims.expiresAt))
		return principal, nil
	})
	if err != nil {
		return session.Principal{}, err
	}

	principal, _ := out.(session.Principal)
	return principal, nil
}

// SignOut revokes the session. Tokens the provider no longer knows count as
// signed out.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil
	}
	c.principals.Delete(ctx, hashToken(accessToken))

	err := c.doJSON(ctx, call{method: http.MethodPost, path: "/logout", bearer: accessToken})
	if err != nil && (crerr.Is(err, usecase.ErrUnauthorized) || crerr.Is(err, usecase.ErrNotFound)) {
		return nil
	}
	return err
}

type call struct {
	method    string
	path      string
	query     url.Values
	bearer    string
	body      any
	target    any
	retryable bool
	// verifyOTP maps expiry errors to an expired passcode instead of an
	// expired session.
	verifyOTP bool
}

func (c *Client) doJSON(ctx context.Context, in call) error {
	var payload []byte
	if in.body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if err := sonic.ConfigDefault.NewEncoder(buf).Encode(in.body); err != nil {
			return fmt.Errorf("encode %s request: %w", in.path, err)
		}
		payload = buf.B
	}

	fullURL := buildURL(c.baseURL, in.path)
	if len(in.query) > 0 {
		fullURL += "?" + in.query.Encode()
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, in, fullURL, payload)
		return reqErr
	}, isTransient)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "identity provider circuit breaker rejected request", "path", in.path, "state", c.breaker.State())
			return fmt.Errorf("%w: identity provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if isTransient(err) {
			c.logger.WarnContext(ctx, "identity provider request failed", "path", in.path, "error", c.redact(err.Error(), in.bearer))
			return fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, c.redact(err.Error(), in.bearer))
		}
		return err
	}

	if in.target == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, in.target); err != nil {
		return fmt.Errorf("decode %s response: %w", in.path, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, in call, fullURL string, payload []byte) ([]byte, error) {
	tries := uint(1)
	if in.retryable {
		tries += uint(c.maxRetries)
	}

	return backoff.Retry(ctx, func() ([]byte, error) {
		raw, err := c.send(ctx, in, fullURL, payload)
		if err != nil && !isTransient(err) {
			return nil, backoff.Permanent(err)
		}
		return raw, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryInterval)),
		backoff.WithMaxTries(tries),
	)
}

func (c *Client) send(ctx context.Context, in call, fullURL string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, in.method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", in.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if in.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+in.bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("send %s request: %w", in.path, err), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("read %s response: %w", in.path, err), errTransient)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, classifyStatus(resp.StatusCode, raw, in.verifyOTP)
}

func (c *Client) toSession(resp sessionResponse) (session.Session, error) {
	if strings.TrimSpace(resp.AccessToken) == "" {
		return session.Session{}, fmt.Errorf("%w: provider returned no access token", usecase.ErrDependencyUnavailable)
	}

	expiresAt := time.Time{}
	switch {
	case resp.ExpiresAt > 0:
		expiresAt = time.Unix(resp.ExpiresAt, 0).UTC()
	case resp.ExpiresIn > 0:
		expiresAt = c.now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}

	tokenType := resp.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    tokenType,
		ExpiresAt:    expiresAt,
		User:         resp.User.principal(),
	}, nil
}

// principalTTL caps the configured cache lifetime at the token's remaining
// lifetime.
func (c *Client) principalTTL(expiresAt time.Time) time.Duration {
	remaining := expiresAt.Sub(c.now())
	if remaining <= 0 {
		return time.Second
	}
	if c.principalCacheTTL > 0 {
		return min(c.principalCacheTTL, remaining)
	}
	return remaining
}

func (c *Client) redact(value, bearer string) string {
	for _, secret := range []string{bearer, c.apiKey} {
		if secret != "" {
			value = strings.ReplaceAll(value, secret, "REDACTED")
		}
	}
	return value
}
