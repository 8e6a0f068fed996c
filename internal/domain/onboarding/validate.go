package onboarding

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	dateLayout            = "2006-01-02"
	maxProfilePictureSize = 5 << 20
)

var ErrInvalidStep = errors.New("wizard step is incomplete")

// StepError reports the first field that blocks advancement past a step.
type StepError struct {
	Step    Step
	Field   string
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *StepError) Unwrap() error {
	return ErrInvalidStep
}

func stepError(step Step, field, message string) error {
	return &StepError{Step: step, Field: field, Message: message}
}

// ValidateStep checks the section owned by step.
func ValidateStep(d Draft, step Step, now time.Time) error {
	switch step {
	case StepBasicInfo:
		return ValidateBasicInfo(d.Basic, now)
	case StepSocialLinks:
		return ValidateSocialLinks(d.Social)
	case StepProfileMedia:
		return ValidateProfileMedia(d.Media)
	default:
		return fmt.Errorf("%w: unknown step %d", ErrInvalidStep, step)
	}
}

// ValidateAll checks every step in order and returns the first failure.
func ValidateAll(d Draft, now time.Time) error {
	for step := FirstStep; step <= LastStep; step++ {
		if err := ValidateStep(d, step, now); err != nil {
			return err
		}
	}
	return nil
}

func ValidateBasicInfo(b BasicInfo, now time.Time) error {
	if strings.TrimSpace(b.FirstName) == "" {
		return stepError(StepBasicInfo, "first_name", "first name is required")
	}
	if strings.TrimSpace(b.LastName) == "" {
		return stepError(StepBasicInfo, "last_name", "last name is required")
	}
	if strings.TrimSpace(b.DateOfBirth) == "" {
		return stepError(StepBasicInfo, "date_of_birth", "date of birth is required")
	}
	dob, err := ParseDateOfBirth(b.DateOfBirth)
	if err != nil {
		return stepError(StepBasicInfo, "date_of_birth", "date of birth must be YYYY-MM-DD")
	}
	if !dob.Before(now) {
		return stepError(StepBasicInfo, "date_of_birth", "date of birth must be in the past")
	}
	return nil
}

func ValidateSocialLinks(s SocialLinks) error {
	if len(s.TikTokAccounts) == 0 || strings.TrimSpace(s.TikTokAccounts[0].URL) == "" {
		return stepError(StepSocialLinks, "tiktok_accounts[0].url", "a TikTok account URL is required")
	}
	for i, item := range s.TikTokAccounts {
		if i > 0 && strings.TrimSpace(item.URL) == "" {
			continue
		}
		if !IsTikTokURL(item.URL) {
			return stepError(StepSocialLinks, fmt.Sprintf("tiktok_accounts[%d].url", i), "Please enter a valid TikTok URL (must include tiktok.com)")
		}
		if strings.TrimSpace(item.Niche) == "" {
			return stepError(StepSocialLinks, fmt.Sprintf("tiktok_accounts[%d].niche", i), "niche is required")
		}
		if !IsKnownNiche(item.Niche) {
			return stepError(StepSocialLinks, fmt.Sprintf("tiktok_accounts[%d].niche", i), fmt.Sprintf("unknown niche %q", item.Niche))
		}
	}
	if strings.TrimSpace(s.GMV) == "" {
		return stepError(StepSocialLinks, "gmv", "GMV is required")
	}
	if _, err := ParseGMV(s.GMV); err != nil {
		return stepError(StepSocialLinks, "gmv", "GMV must be a number")
	}
	if GMVTooLarge(s.GMV) {
		return stepError(StepSocialLinks, "gmv", "GMV is too large")
	}
	return nil
}

func ValidateProfileMedia(m ProfileMedia) error {
	picture := strings.TrimSpace(m.ProfilePicture)
	if picture == "" {
		return nil
	}
	if strings.HasPrefix(picture, "data:") {
		if err := validateImageDataURL(picture); err != nil {
			return stepError(StepProfileMedia, "profile_picture", err.Error())
		}
		return nil
	}
	parsed, err := url.Parse(picture)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return stepError(StepProfileMedia, "profile_picture", "profile picture must be an image URL or data URL")
	}
	return nil
}

func IsTikTokURL(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "tiktok.com")
}

func ParseDateOfBirth(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}

func validateImageDataURL(raw string) error {
	header, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok {
		return errors.New("malformed data URL")
	}
	if !strings.HasPrefix(header, "image/") || !strings.HasSuffix(header, ";base64") {
		return errors.New("profile picture must be a base64 image")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxProfilePictureSize {
		return errors.New("profile picture exceeds 5 MiB")
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return errors.New("profile picture is not valid base64")
	}
	return nil
}
