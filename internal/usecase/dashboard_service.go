package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/dashboard"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	"github.com/sourcegraph/conc/pool"
)

type DashboardService struct {
	campaigns campaign.Repository
	profiles  profile.Repository
	now       func() time.Time
}

func NewDashboardService(campaigns campaign.Repository, profiles profile.Repository) *DashboardService {
	return &DashboardService{
		campaigns: campaigns,
		profiles:  profiles,
		now:       time.Now,
	}
}

// Get summarizes the caller's campaigns and deliverables. Users without a
// profile get an empty summary.
func (s *DashboardService) Get(ctx context.Context, userID string) (dashboard.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return dashboard.Summary{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("get profile: %w", err)
	}
	now := s.now().UTC()
	if !exists {
		return dashboard.Summarize(nil, nil, now), nil
	}

	var (
		campaigns    []campaign.Campaign
		deliverables []campaign.Deliverable
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		out, err := s.campaigns.ListByProfile(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list campaigns by profile: %w", err)
		}
		campaigns = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.campaigns.ListDeliverablesByProfile(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list deliverables by profile: %w", err)
		}
		deliverables = out
		return nil
	})
	if err := p.Wait(); err != nil {
		return dashboard.Summary{}, err
	}

	return dashboard.Summarize(campaigns, deliverables, now), nil
}
