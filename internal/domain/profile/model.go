package profile

import (
	"strings"
	"time"
)

// Profile is the creator identity record linked to an auth user.
type Profile struct {
	ID                string
	UserID            string
	FirstName         string
	LastName          string
	DateOfBirth       string
	About             string
	ProfilePictureURL string
	InstagramURL      string
	GMV               *float64
	GMVProofURL       string
	Tier              Tier
	Completed         bool
	TikTokAccounts    []TikTokAccount
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TikTokAccount is a child record of Profile.
type TikTokAccount struct {
	ID        string
	ProfileID string
	URL       string
	Niche     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasName reports whether both name fields are populated.
func (p Profile) HasName() bool {
	return strings.TrimSpace(p.FirstName) != "" && strings.TrimSpace(p.LastName) != ""
}

// IsComplete is the single completeness predicate used by every gate.
func (p Profile) IsComplete() bool {
	return p.Completed && p.HasName() && strings.TrimSpace(p.DateOfBirth) != ""
}

func (p Profile) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
