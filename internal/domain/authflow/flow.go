package authflow

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type Stage string

const (
	StageAwaitingEmail Stage = "awaiting-email"
	StageAwaitingCode  Stage = "awaiting-code"
)

// RoleCreator tags accounts created through the creator sign-in flow.
const RoleCreator = "creator"

const CodeLength = 6

const (
	MessageRateLimited = "Too many requests. Please wait a minute before requesting another code."
	MessageCodeExpired = "Your verification code has expired. Please request a new one."
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidCode  = errors.New("verification code must be 6 digits")
	ErrWrongStage   = errors.New("operation not allowed in current stage")
)

// Flow is one email passcode sign-in attempt.
type Flow struct {
	AttemptID string    `json:"attempt_id"`
	Stage     Stage     `json:"stage"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(attemptID string, now time.Time) Flow {
	return Flow{
		AttemptID: attemptID,
		Stage:     StageAwaitingEmail,
		UpdatedAt: now,
	}
}

// BeginRequest validates the email and marks a passcode request in flight.
// Allowed from both stages; re-requesting from awaiting-code is a resend.
func (f *Flow) BeginRequest(email string, now time.Time) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		f.Error = err.Error()
		f.UpdatedAt = now
		return err
	}

	f.Email = normalized
	f.Loading = true
	f.Error = ""
	f.UpdatedAt = now
	return nil
}

func (f *Flow) CodeSent(now time.Time) {
	f.Stage = StageAwaitingCode
	f.Code = ""
	f.Loading = false
	f.Error = ""
	f.UpdatedAt = now
}

// RequestFailed keeps the current stage and surfaces the message.
func (f *Flow) RequestFailed(message string, now time.Time) {
	f.Loading = false
	f.Error = message
	f.UpdatedAt = now
}

func (f *Flow) BeginVerify(code string, now time.Time) error {
	if f.Stage != StageAwaitingCode {
		return fmt.Errorf("%w: request a code first", ErrWrongStage)
	}
	normalized, err := NormalizeCode(code)
	if err != nil {
		f.Error = err.Error()
		f.UpdatedAt = now
		return err
	}

	f.Code = normalized
	f.Loading = true
	f.Error = ""
	f.UpdatedAt = now
	return nil
}

// CodeExpired sends the attempt back to email entry with the code cleared.
func (f *Flow) CodeExpired(now time.Time) {
	f.Stage = StageAwaitingEmail
	f.Code = ""
	f.Loading = false
	f.Error = MessageCodeExpired
	f.UpdatedAt = now
}

// VerifyFailed surfaces the message without resetting stage or code.
func (f *Flow) VerifyFailed(message string, now time.Time) {
	f.Loading = false
	f.Error = message
	f.UpdatedAt = now
}

func NormalizeEmail(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidEmail)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return strings.ToLower(addr.Address), nil
}

func NormalizeCode(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if len(value) != CodeLength {
		return "", ErrInvalidCode
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return "", ErrInvalidCode
		}
	}
	return value, nil
}
