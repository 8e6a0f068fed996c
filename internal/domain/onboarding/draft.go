package onboarding

import (
	"strings"
	"time"
)

// BasicInfo holds the fields collected on step 1.
type BasicInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

// TikTokAccount is one platform-account entry on step 2.
type TikTokAccount struct {
	URL   string `json:"url"`
	Niche string `json:"niche"`
}

// SocialLinks holds the fields collected on step 2. GMV is stored formatted.
type SocialLinks struct {
	TikTokAccounts []TikTokAccount `json:"tiktok_accounts"`
	GMV            string          `json:"gmv"`
	GMVProofURL    string          `json:"gmv_proof_url"`
	Instagram      string          `json:"instagram"`
}

// ProfileMedia holds the optional fields collected on step 3.
type ProfileMedia struct {
	ProfilePicture string `json:"profile_picture"`
	About          string `json:"about"`
}

// Draft is the record accumulated across the wizard, one section per step.
type Draft struct {
	Basic  BasicInfo    `json:"basic"`
	Social SocialLinks  `json:"social"`
	Media  ProfileMedia `json:"media"`
}

func NewDraft() Draft {
	return Draft{
		Social: SocialLinks{TikTokAccounts: []TikTokAccount{{}}},
	}
}

// Patch is a partial update. Nil fields are left unchanged; a non-nil
// TikTokAccounts replaces the whole list.
type Patch struct {
	FirstName      *string
	LastName       *string
	DateOfBirth    *string
	TikTokAccounts []TikTokAccount
	GMV            *string
	GMVProofURL    *string
	Instagram      *string
	ProfilePicture *string
	About          *string
}

func (p Patch) IsZero() bool {
	return p.FirstName == nil && p.LastName == nil && p.DateOfBirth == nil &&
		p.TikTokAccounts == nil && p.GMV == nil && p.GMVProofURL == nil &&
		p.Instagram == nil && p.ProfilePicture == nil && p.About == nil
}

// Apply merges the patch into a copy of the draft.
func (d Draft) Apply(p Patch) Draft {
	out := d.clone()
	if p.FirstName != nil {
		out.Basic.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		out.Basic.LastName = *p.LastName
	}
	if p.DateOfBirth != nil {
		out.Basic.DateOfBirth = strings.TrimSpace(*p.DateOfBirth)
	}
	if p.TikTokAccounts != nil {
		accounts := make([]TikTokAccount, 0, len(p.TikTokAccounts))
		for _, item := range p.TikTokAccounts {
			accounts = append(accounts, TikTokAccount{
				URL:   strings.TrimSpace(item.URL),
				Niche: normalizeNiche(item.Niche),
			})
		}
		if len(accounts) == 0 {
			accounts = append(accounts, TikTokAccount{})
		}
		out.Social.TikTokAccounts = accounts
	}
	if p.GMV != nil {
		out.Social.GMV = FormatGMV(*p.GMV)
	}
	if p.GMVProofURL != nil {
		out.Social.GMVProofURL = strings.TrimSpace(*p.GMVProofURL)
	}
	if p.Instagram != nil {
		out.Social.Instagram = strings.TrimSpace(*p.Instagram)
	}
	if p.ProfilePicture != nil {
		out.Media.ProfilePicture = strings.TrimSpace(*p.ProfilePicture)
	}
	if p.About != nil {
		out.Media.About = *p.About
	}
	return out
}

// AddTikTokAccount appends an empty account entry.
func (d Draft) AddTikTokAccount() Draft {
	out := d.clone()
	out.Social.TikTokAccounts = append(out.Social.TikTokAccounts, TikTokAccount{})
	return out
}

// RemoveTikTokAccount drops the entry at index. The first entry is required
// and cannot be removed.
func (d Draft) RemoveTikTokAccount(index int) (Draft, bool) {
	if index <= 0 || index >= len(d.Social.TikTokAccounts) {
		return d, false
	}
	out := d.clone()
	out.Social.TikTokAccounts = append(out.Social.TikTokAccounts[:index], out.Social.TikTokAccounts[index+1:]...)
	return out, true
}

// IsEmpty reports whether every field is still at its empty default.
func (d Draft) IsEmpty() bool {
	if strings.TrimSpace(d.Basic.FirstName) != "" ||
		strings.TrimSpace(d.Basic.LastName) != "" ||
		strings.TrimSpace(d.Basic.DateOfBirth) != "" {
		return false
	}
	for _, item := range d.Social.TikTokAccounts {
		if strings.TrimSpace(item.URL) != "" || strings.TrimSpace(item.Niche) != "" {
			return false
		}
	}
	if d.Social.GMV != "" || d.Social.GMVProofURL != "" || d.Social.Instagram != "" {
		return false
	}
	return d.Media.ProfilePicture == "" && strings.TrimSpace(d.Media.About) == ""
}

// FilledTikTokAccounts returns the entries that carry a URL.
func (d Draft) FilledTikTokAccounts() []TikTokAccount {
	out := make([]TikTokAccount, 0, len(d.Social.TikTokAccounts))
	for _, item := range d.Social.TikTokAccounts {
		if strings.TrimSpace(item.URL) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (d Draft) clone() Draft {
	out := d
	out.Social.TikTokAccounts = append([]TikTokAccount(nil), d.Social.TikTokAccounts...)
	return out
}

const (
	SaveStateIdle    = "idle"
	SaveStatePending = "pending"
	SaveStateSaved   = "saved"
	SaveStateSkipped = "skipped"
	SaveStateFailed  = "failed"
)

// SaveStatus is the outcome of the most recent auto-save that was not
// superseded by a newer edit.
type SaveStatus struct {
	State      string     `json:"state"`
	Error      string     `json:"error,omitempty"`
	Generation uint64     `json:"generation"`
	SavedAt    *time.Time `json:"saved_at,omitempty"`
}

// Wizard is the per-user wizard session. Revision increases on every draft
// change and tags the auto-save scheduled for it.
type Wizard struct {
	UserID    string     `json:"user_id"`
	Step      Step       `json:"step"`
	Draft     Draft      `json:"draft"`
	Revision  uint64     `json:"revision"`
	Save      SaveStatus `json:"save"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewWizard(userID string, now time.Time) Wizard {
	return Wizard{
		UserID:    userID,
		Step:      FirstStep,
		Draft:     NewDraft(),
		Save:      SaveStatus{State: SaveStateIdle},
		UpdatedAt: now,
	}
}
