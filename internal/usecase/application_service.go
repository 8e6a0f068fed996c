package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
)

const maxPitchLength = 2000

type ApplyInput struct {
	UserID     string
	CampaignID string
	Pitch      string
}

type ApplicationService struct {
	campaigns    campaign.Repository
	applications campaign.ApplicationRepository
	profiles     profile.Repository
	now          func() time.Time
}

func NewApplicationService(
	campaigns campaign.Repository,
	applications campaign.ApplicationRepository,
	profiles profile.Repository,
) *ApplicationService {
	return &ApplicationService{
		campaigns:    campaigns,
		applications: applications,
		profiles:     profiles,
		now:          time.Now,
	}
}

// Apply records an application for an open campaign. Repeating it returns the
// existing application.
func (s *ApplicationService) Apply(ctx context.Context, input ApplyInput) (campaign.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApplicationService.Apply")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Pitch = strings.TrimSpace(input.Pitch)
	if input.UserID == "" {
		return campaign.Application{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.Pitch) > maxPitchLength {
		return campaign.Application{}, fmt.Errorf("%w: pitch must be at most %d characters", ErrInvalidInput, maxPitchLength)
	}

	item, exists, err := s.profiles.GetByUserID(ctx, input.UserID)
	if err != nil {
		return campaign.Application{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists || !item.IsComplete() {
		return campaign.Application{}, fmt.Errorf("%w: complete your profile before applying", ErrProfileIncomplete)
	}

	if input.CampaignID == "" {
		return campaign.Application{}, fmt.Errorf("%w: campaign id is required", ErrNotFound)
	}
	target, exists, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return campaign.Application{}, fmt.Errorf("get campaign: %w", err)
	}
	if !exists {
		return campaign.Application{}, fmt.Errorf("%w: campaign=%s", ErrNotFound, input.CampaignID)
	}
	if !target.IsOpen() {
		return campaign.Application{}, fmt.Errorf("%w: campaign is not accepting applications", ErrInvalidInput)
	}

	application, err := s.applications.Create(ctx, campaign.Application{
		CampaignID: target.ID,
		ProfileID:  item.ID,
		Pitch:      input.Pitch,
		Status:     campaign.ApplicationStatusSubmitted,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return campaign.Application{}, fmt.Errorf("create application: %w", err)
	}
	return application, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]campaign.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApplicationService.ListMine")
	defer span.End()

	item, exists, err := s.profiles.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return []campaign.Application{}, nil
	}

	out, err := s.applications.ListByProfile(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return out, nil
}
