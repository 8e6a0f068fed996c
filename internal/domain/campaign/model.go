package campaign

import (
	"strings"
	"time"
)

const (
	StatusOpen       = "open"
	StatusActive     = "active"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"

	TypeRetainer = "retainer"
)

// Campaign is a brand-authored sponsorship listing.
type Campaign struct {
	ID                   string
	ProfileID            string
	Name                 string
	BrandName            string
	ProductName          string
	BrandShopLink        string
	ProductImageURL      string
	About                string
	Category             string
	Platform             string
	CampaignType         string
	Amount               float64
	BaseCommission       float64
	CommissionBoost      float64
	RetainerMin          *float64
	RetainerMax          *float64
	GMVTarget            []float64
	VideosPerDay         int
	CampaignDurationDays int
	FreeSamples          bool
	Prizes               bool
	TrackingLink         string
	ApplicationStartDate *time.Time
	ApplicationEndDate   *time.Time
	Status               string
	Deliverables         []Deliverable
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (c Campaign) IsOpen() bool {
	return strings.EqualFold(strings.TrimSpace(c.Status), StatusOpen)
}

// IsActiveLike reports statuses counted as active on the dashboard.
func (c Campaign) IsActiveLike() bool {
	switch strings.ToLower(strings.TrimSpace(c.Status)) {
	case StatusOpen, StatusActive, StatusInProgress:
		return true
	default:
		return false
	}
}

func (c Campaign) IsRetainer() bool {
	return strings.EqualFold(strings.TrimSpace(c.CampaignType), TypeRetainer)
}

const (
	DeliverableStatusPending   = "pending"
	DeliverableStatusOverdue   = "overdue"
	DeliverableStatusCompleted = "completed"
	DeliverableStatusApproved  = "approved"
)

// Deliverable is a dated obligation tied to a campaign and a creator profile.
type Deliverable struct {
	ID          string
	CampaignID  string
	ProfileID   string
	Title       string
	Description string
	DueDate     time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d Deliverable) IsDone() bool {
	switch strings.ToLower(strings.TrimSpace(d.Status)) {
	case DeliverableStatusCompleted, DeliverableStatusApproved:
		return true
	default:
		return false
	}
}

const (
	ApplicationStatusSubmitted = "submitted"
)

// Application records a creator applying to a campaign.
type Application struct {
	ID         string
	CampaignID string
	ProfileID  string
	Pitch      string
	Status     string
	CreatedAt  time.Time
}
