package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
)

type CampaignRepository struct {
	mu           sync.RWMutex
	items        map[string]campaign.Campaign
	deliverables []campaign.Deliverable
	applications *ApplicationRepository
}

// NewCampaignRepository serves campaigns from memory. applications may be nil;
// when set, ListByProfile includes campaigns the profile applied to.
func NewCampaignRepository(campaigns []campaign.Campaign, deliverables []campaign.Deliverable, applications *ApplicationRepository) *CampaignRepository {
	items := make(map[string]campaign.Campaign, len(campaigns))
	for _, item := range campaigns {
		items[item.ID] = item
	}
	return &CampaignRepository{
		items:        items,
		deliverables: append([]campaign.Deliverable(nil), deliverables...),
		applications: applications,
	}
}

func (r *CampaignRepository) ListOpen(_ context.Context, filter campaign.ListFilter) ([]campaign.Campaign, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]campaign.Campaign, 0, len(r.items))
	for _, item := range r.items {
		if !item.IsOpen() {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.BrandName), search) &&
			!strings.Contains(strings.ToLower(item.ProductName), search) {
			continue
		}
		out = append(out, r.withDeliverables(item))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *CampaignRepository) GetByID(_ context.Context, campaignID string) (campaign.Campaign, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[campaignID]
	if !ok {
		return campaign.Campaign{}, false, nil
	}
	return r.withDeliverables(item), true, nil
}

func (r *CampaignRepository) ListByProfile(ctx context.Context, profileID string) ([]campaign.Campaign, error) {
	related := make(map[string]struct{})
	if r.applications != nil {
		applied, err := r.applications.ListByProfile(ctx, profileID)
		if err != nil {
			return nil, err
		}
		for _, item := range applied {
			related[item.CampaignID] = struct{}{}
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.deliverables {
		if d.ProfileID == profileID {
			related[d.CampaignID] = struct{}{}
		}
	}

	out := make([]campaign.Campaign, 0)
	for _, item := range r.items {
		if _, ok := related[item.ID]; ok || item.ProfileID == profileID {
			out = append(out, item)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *CampaignRepository) ListDeliverablesByProfile(_ context.Context, profileID string) ([]campaign.Deliverable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]campaign.Deliverable, 0)
	for _, d := range r.deliverables {
		if d.ProfileID == profileID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

// AddDeliverable appends a deliverable.
func (r *CampaignRepository) AddDeliverable(item campaign.Deliverable) {
	r.mu.Lock()
	r.deliverables = append(r.deliverables, item)
	r.mu.Unlock()
}

func (r *CampaignRepository) withDeliverables(item campaign.Campaign) campaign.Campaign {
	item.Deliverables = make([]campaign.Deliverable, 0)
	for _, d := range r.deliverables {
		if d.CampaignID == item.ID {
			item.Deliverables = append(item.Deliverables, d)
		}
	}
	item.GMVTarget = append([]float64(nil), item.GMVTarget...)
	return item
}

func sortNewestFirst(items []campaign.Campaign) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
