package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	idgen "github.com/riskibarqy/creator-hub/internal/platform/id"
)

type ProfileRepository struct {
	mu     sync.RWMutex
	byUser map[string]profile.Profile
	ids    idgen.Generator
	now    func() time.Time
}

func NewProfileRepository(ids idgen.Generator) *ProfileRepository {
	return &ProfileRepository{
		byUser: make(map[string]profile.Profile),
		ids:    ids,
		now:    time.Now,
	}
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byUser[userID]
	if !ok {
		return profile.Profile{}, false, nil
	}
	item.TikTokAccounts = append([]profile.TikTokAccount(nil), item.TikTokAccounts...)
	return item, true, nil
}

// Upsert matches the SQL store: completed never flips back and a missing
// tier keeps the stored one.
func (r *ProfileRepository) Upsert(_ context.Context, item profile.Profile) (profile.Profile, error) {
	userID := strings.TrimSpace(item.UserID)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byUser[userID]
	if !ok {
		newID, err := r.ids.NewID()
		if err != nil {
			return profile.Profile{}, err
		}
		existing = profile.Profile{ID: newID, UserID: userID, CreatedAt: now}
	}

	stored := item
	stored.ID = existing.ID
	stored.UserID = userID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = now
	stored.Completed = existing.Completed || item.Completed
	stored.TikTokAccounts = existing.TikTokAccounts
	if stored.Tier == "" {
		stored.Tier = existing.Tier
	}
	if stored.Tier == "" {
		stored.Tier = profile.TierBronze
	}
	r.byUser[userID] = stored

	out := stored
	out.TikTokAccounts = append([]profile.TikTokAccount(nil), stored.TikTokAccounts...)
	return out, nil
}

func (r *ProfileRepository) ReplaceTikTokAccounts(_ context.Context, profileID string, accounts []profile.TikTokAccount) error {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, item := range r.byUser {
		if item.ID != profileID {
			continue
		}
		replaced := make([]profile.TikTokAccount, 0, len(accounts))
		for _, account := range accounts {
			url := strings.TrimSpace(account.URL)
			if url == "" {
				continue
			}
			newID, err := r.ids.NewID()
			if err != nil {
				return err
			}
			replaced = append(replaced, profile.TikTokAccount{
				ID:        newID,
				ProfileID: profileID,
				URL:       url,
				Niche:     strings.TrimSpace(account.Niche),
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		item.TikTokAccounts = replaced
		r.byUser[userID] = item
		return nil
	}
	return fmt.Errorf("replace tiktok accounts: profile %s not found", profileID)
}

// TierCalculator classifies GMV in process for stores without calculate_tier.
type TierCalculator struct{}

func (TierCalculator) CalculateTier(_ context.Context, gmv float64) (profile.Tier, error) {
	return profile.TierForGMV(gmv), nil
}
