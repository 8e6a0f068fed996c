package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	idgen "github.com/riskibarqy/creator-hub/internal/platform/id"
)

type ApplicationRepository struct {
	mu    sync.RWMutex
	items map[string]campaign.Application
	ids   idgen.Generator
	now   func() time.Time
}

func NewApplicationRepository(ids idgen.Generator) *ApplicationRepository {
	return &ApplicationRepository{
		items: make(map[string]campaign.Application),
		ids:   ids,
		now:   time.Now,
	}
}

func (r *ApplicationRepository) Create(_ context.Context, item campaign.Application) (campaign.Application, error) {
	key := item.CampaignID + ":" + item.ProfileID

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[key]; ok {
		return existing, nil
	}

	newID, err := r.ids.NewID()
	if err != nil {
		return campaign.Application{}, err
	}
	item.ID = newID
	if strings.TrimSpace(item.Status) == "" {
		item.Status = campaign.ApplicationStatusSubmitted
	}
	item.CreatedAt = r.now()
	r.items[key] = item
	return item, nil
}

func (r *ApplicationRepository) ListByProfile(_ context.Context, profileID string) ([]campaign.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]campaign.Application, 0)
	for _, item := range r.items {
		if item.ProfileID == profileID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
