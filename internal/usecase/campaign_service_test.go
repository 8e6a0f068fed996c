package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	campaignmock "github.com/riskibarqy/creator-hub/internal/mocks/domain/campaign"
	profilemock "github.com/riskibarqy/creator-hub/internal/mocks/domain/profile"
	"github.com/stretchr/testify/mock"
)

func completeProfile() profile.Profile {
	return profile.Profile{
		ID:          "p-1",
		UserID:      "user-1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1990-05-17",
		Completed:   true,
	}
}

func TestCampaignService_List_AllEqualsUnfiltered(t *testing.T) {
	t.Parallel()

	campaigns := campaignmock.NewRepository(t)
	svc := NewCampaignService(campaigns, profilemock.NewRepository(t))
	items := []campaign.Campaign{{ID: "c-1", BrandName: "Acme Corp", Status: campaign.StatusOpen}}

	campaigns.On("ListOpen", mock.Anything, campaign.ListFilter{}).Return(items, nil).Twice()

	all, err := svc.List(t.Context(), "", "All")
	if err != nil {
		t.Fatalf("List(All) error: %v", err)
	}
	unfiltered, err := svc.List(t.Context(), "  ", "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all.Campaigns) != len(unfiltered.Campaigns) || all.State != ViewStateResults || all.Category != campaign.CategoryAll {
		t.Fatalf("unexpected views: all=%+v unfiltered=%+v", all, unfiltered)
	}
}

func TestCampaignService_List_NormalizesInput(t *testing.T) {
	t.Parallel()

	campaigns := campaignmock.NewRepository(t)
	svc := NewCampaignService(campaigns, profilemock.NewRepository(t))
	campaigns.On("ListOpen", mock.Anything, campaign.ListFilter{Search: "Acme", Category: "Beauty"}).
		Return([]campaign.Campaign{}, nil).
		Once()

	view, err := svc.List(t.Context(), "  Acme ", "beauty")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if view.State != ViewStateEmpty || view.Message != MessageNoCampaigns || view.Campaigns == nil {
		t.Fatalf("unexpected empty view: %+v", view)
	}

	if _, err := svc.List(t.Context(), "", "Sports"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}

func TestCampaignService_Get_NotFoundIsAState(t *testing.T) {
	t.Parallel()

	campaigns := campaignmock.NewRepository(t)
	svc := NewCampaignService(campaigns, profilemock.NewRepository(t))
	campaigns.On("GetByID", mock.Anything, "missing").Return(campaign.Campaign{}, false, nil).Once()

	for _, id := range []string{"", "missing"} {
		view, err := svc.Get(t.Context(), id)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", id, err)
		}
		if view.State != ViewStateNotFound {
			t.Fatalf("Get(%q) state=%s", id, view.State)
		}
	}
}

func TestCampaignService_GetApplicationView(t *testing.T) {
	t.Parallel()

	t.Run("incomplete profile is redirected regardless of campaign", func(t *testing.T) {
		t.Parallel()
		profiles := profilemock.NewRepository(t)
		svc := NewCampaignService(campaignmock.NewRepository(t), profiles)
		incomplete := completeProfile()
		incomplete.Completed = false
		profiles.On("GetByUserID", mock.Anything, "user-1").Return(incomplete, true, nil).Twice()

		for _, id := range []string{"c-1", ""} {
			view, err := svc.GetApplicationView(t.Context(), "user-1", id)
			if err != nil {
				t.Fatalf("GetApplicationView error: %v", err)
			}
			if view.State != ViewStateCompleteProfile || view.Redirect != OnboardingRedirect {
				t.Fatalf("unexpected view: %+v", view)
			}
		}
	})

	t.Run("complete profile sees campaign", func(t *testing.T) {
		t.Parallel()
		profiles := profilemock.NewRepository(t)
		campaigns := campaignmock.NewRepository(t)
		svc := NewCampaignService(campaigns, profiles)
		profiles.On("GetByUserID", mock.Anything, "user-1").Return(completeProfile(), true, nil).Twice()
		campaigns.On("GetByID", mock.Anything, "c-1").Return(campaign.Campaign{ID: "c-1", Status: campaign.StatusOpen}, true, nil).Once()
		campaigns.On("GetByID", mock.Anything, "c-2").Return(campaign.Campaign{}, false, nil).Once()

		view, err := svc.GetApplicationView(t.Context(), "user-1", "c-1")
		if err != nil || view.State != ViewStateReady || view.Campaign.ID != "c-1" || view.Profile.ID != "p-1" {
			t.Fatalf("unexpected view=%+v err=%v", view, err)
		}
		view, err = svc.GetApplicationView(t.Context(), "user-1", "c-2")
		if err != nil || view.State != ViewStateNotFound {
			t.Fatalf("unexpected view=%+v err=%v", view, err)
		}
	})
}

func TestApplicationService_Apply(t *testing.T) {
	t.Parallel()

	t.Run("incomplete profile", func(t *testing.T) {
		t.Parallel()
		profiles := profilemock.NewRepository(t)
		svc := NewApplicationService(campaignmock.NewRepository(t), campaignmock.NewApplicationRepository(t), profiles)
		profiles.On("GetByUserID", mock.Anything, "user-1").Return(profile.Profile{}, false, nil).Once()

		if _, err := svc.Apply(t.Context(), ApplyInput{UserID: "user-1", CampaignID: "c-1"}); !errors.Is(err, ErrProfileIncomplete) {
			t.Fatalf("expected ErrProfileIncomplete, got %v", err)
		}
	})

	t.Run("closed campaign", func(t *testing.T) {
		t.Parallel()
		profiles := profilemock.NewRepository(t)
		campaigns := campaignmock.NewRepository(t)
		svc := NewApplicationService(campaigns, campaignmock.NewApplicationRepository(t), profiles)
		profiles.On("GetByUserID", mock.Anything, "user-1").Return(completeProfile(), true, nil).Once()
		campaigns.On("GetByID", mock.Anything, "c-1").Return(campaign.Campaign{ID: "c-1", Status: campaign.StatusClosed}, true, nil).Once()

		if _, err := svc.Apply(t.Context(), ApplyInput{UserID: "user-1", CampaignID: "c-1"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing campaign", func(t *testing.T) {
		t.Parallel()
		profiles := profilemock.NewRepository(t)
		campaigns := campaignmock.NewRepository(t)
		svc := NewApplicationService(campaigns, campaignmock.NewApplicationRepository(t), profiles)
		profiles.On("GetByUserID", mock.Anything, "user-1").Return(completeProfile(), true, nil).Once()
		campaigns.On("GetByID", mock.Anything, "c-9").Return(campaign.Campaign{}, false, nil).Once()

		if _, err := svc.Apply(t.Context(), ApplyInput{UserID: "user-1", CampaignID: "c-9"}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("submitted", func(t *testing.T) {
		t.Parallel()
		profiles := profilemock.NewRepository(t)
		campaigns := campaignmock.NewRepository(t)
		applications := campaignmock.NewApplicationRepository(t)
		svc := NewApplicationService(campaigns, applications, profiles)
		profiles.On("GetByUserID", mock.Anything, "user-1").Return(completeProfile(), true, nil).Once()
		campaigns.On("GetByID", mock.Anything, "c-1").Return(campaign.Campaign{ID: "c-1", Status: campaign.StatusOpen}, true, nil).Once()
		applications.On("Create", mock.Anything, mock.MatchedBy(func(item campaign.Application) bool {
			return item.CampaignID == "c-1" && item.ProfileID == "p-1" && item.Pitch == "hi" && item.Status == campaign.ApplicationStatusSubmitted
		})).Return(campaign.Application{ID: "a-1", CampaignID: "c-1", ProfileID: "p-1"}, nil).Once()

		got, err := svc.Apply(t.Context(), ApplyInput{UserID: "user-1", CampaignID: "c-1", Pitch: " hi "})
		if err != nil || got.ID != "a-1" {
			t.Fatalf("unexpected application=%+v err=%v", got, err)
		}
	})
}
