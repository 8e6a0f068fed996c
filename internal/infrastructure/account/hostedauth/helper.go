package hostedauth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	"github.com/riskibarqy/creator-hub/internal/usecase"
)

type otpRequest struct {
	Email      string         `json:"email"`
	CreateUser bool           `json:"create_user"`
	Data       map[string]any `json:"data,omitempty"`
}

type verifyRequest struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u userResponse) principal() session.Principal {
	role, _ := u.UserMetadata["role"].(string)
	return session.Principal{
		UserID: strings.TrimSpace(u.ID),
		Email:  strings.TrimSpace(u.Email),
		Role:   strings.TrimSpace(role),
	}
}

type errorResponse struct {
	Code             int    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

func (e errorResponse) text() string {
	for _, candidate := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return ""
}

// classifyStatus maps a non-2xx provider response onto usecase errors. Expiry
// means an expired passcode on /verify and an expired session everywhere else.
func classifyStatus(status int, raw []byte, verifyOTP bool) error {
	var body errorResponse
	_ = sonic.Unmarshal(raw, &body)
	msg := body.text()
	if msg == "" {
		msg = http.StatusText(status)
	}
	code := strings.ToLower(body.ErrorCode)
	lower := strings.ToLower(msg)

	switch {
	case status == http.StatusTooManyRequests || code == "over_email_send_rate_limit":
		return fmt.Errorf("%w: %s", usecase.ErrRateLimited, msg)
	case verifyOTP && (code == "otp_expired" || strings.Contains(lower, "expired")):
		return fmt.Errorf("%w: %s", usecase.ErrCodeExpired, msg)
	case status == http.StatusUnauthorized || status == http.StatusForbidden,
		code == "session_expired", strings.Contains(lower, "expired"):
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, msg)
	case isRetryableStatus(status):
		return crerr.Mark(fmt.Errorf("provider status=%d: %s", status, msg), errTransient)
	default:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, msg)
	}
}

func isRetryableStatus(status int) bool {
	return status >= http.StatusInternalServerError
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

type tokenClaims struct {
	subject   string
	expiresAt time.Time
}

// parseToken validates the signature when a secret is configured. Without one
// only the structure and expiry are checked and /user stays authoritative.
func (c *Client) parseToken(token string) (tokenClaims, error) {
	if token == "" {
		return tokenClaims{}, fmt.Errorf("%w: missing access token", usecase.ErrUnauthorized)
	}

	claims := jwt.RegisteredClaims{}
	var err error
	if len(c.jwtSecret) > 0 {
		_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
			return c.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	}
	if err != nil {
		return tokenClaims{}, fmt.Errorf("%w: invalid access token", usecase.ErrUnauthorized)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return tokenClaims{}, fmt.Errorf("%w: access token missing subject or expiry", usecase.ErrUnauthorized)
	}
	if !claims.ExpiresAt.After(c.now()) {
		return tokenClaims{}, fmt.Errorf("%w: access token expired", usecase.ErrUnauthorized)
	}

	return tokenClaims{subject: claims.Subject, expiresAt: claims.ExpiresAt.Time}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
