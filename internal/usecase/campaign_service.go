package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
)

// View states rendered by clients instead of treating misses as errors.
const (
	ViewStateResults         = "results"
	ViewStateEmpty           = "empty"
	ViewStateNotFound        = "not_found"
	ViewStateReady           = "ready"
	ViewStateCompleteProfile = "complete_profile"

	MessageNoCampaigns = "No campaigns found"
	OnboardingRedirect = "/onboarding"
	DashboardRedirect  = "/dashboard"
)

type CatalogView struct {
	State     string
	Message   string
	Search    string
	Category  string
	Campaigns []campaign.Campaign
}

type CatalogMeta struct {
	Categories    []string
	SkeletonCount int
}

type CampaignView struct {
	State    string
	Campaign campaign.Campaign
}

type ApplicationView struct {
	State    string
	Redirect string
	Campaign campaign.Campaign
	Profile  profile.Profile
}

type CampaignService struct {
	campaigns campaign.Repository
	profiles  profile.Repository
}

func NewCampaignService(campaigns campaign.Repository, profiles profile.Repository) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		profiles:  profiles,
	}
}

// List returns open campaigns, newest first, matching the trimmed search on
// brand or product name and the category. "All" or empty disables the
// category filter.
func (s *CampaignService) List(ctx context.Context, search, category string) (CatalogView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CampaignService.List")
	defer span.End()

	normalized, err := campaign.NormalizeCategory(category)
	if err != nil {
		return CatalogView{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	search = strings.TrimSpace(search)

	items, err := s.campaigns.ListOpen(ctx, campaign.ListFilter{Search: search, Category: normalized})
	if err != nil {
		return CatalogView{}, fmt.Errorf("list open campaigns: %w", err)
	}

	view := CatalogView{
		State:     ViewStateResults,
		Search:    search,
		Category:  normalized,
		Campaigns: items,
	}
	if view.Category == "" {
		view.Category = campaign.CategoryAll
	}
	if len(items) == 0 {
		view.State = ViewStateEmpty
		view.Message = MessageNoCampaigns
		view.Campaigns = []campaign.Campaign{}
	}
	return view, nil
}

func (s *CampaignService) Catalog() CatalogMeta {
	return CatalogMeta{
		Categories:    campaign.Categories(),
		SkeletonCount: campaign.SkeletonCount,
	}
}

// Get returns the not_found state for an empty or unknown ID.
func (s *CampaignService) Get(ctx context.Context, campaignID string) (CampaignView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CampaignService.Get")
	defer span.End()

	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return CampaignView{State: ViewStateNotFound}, nil
	}

	item, exists, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return CampaignView{}, fmt.Errorf("get campaign: %w", err)
	}
	if !exists {
		return CampaignView{State: ViewStateNotFound}, nil
	}
	return CampaignView{State: ViewStateReady, Campaign: item}, nil
}

// GetApplicationView checks the caller's profile before looking at the
// campaign, so incomplete profiles are redirected whatever the campaign ID.
func (s *CampaignService) GetApplicationView(ctx context.Context, userID, campaignID string) (ApplicationView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CampaignService.GetApplicationView")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ApplicationView{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return ApplicationView{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists || !item.IsComplete() {
		return ApplicationView{State: ViewStateCompleteProfile, Redirect: OnboardingRedirect}, nil
	}

	detail, err := s.Get(ctx, campaignID)
	if err != nil {
		return ApplicationView{}, err
	}
	if detail.State == ViewStateNotFound {
		return ApplicationView{State: ViewStateNotFound, Profile: item}, nil
	}
	return ApplicationView{State: ViewStateReady, Campaign: detail.Campaign, Profile: item}, nil
}
