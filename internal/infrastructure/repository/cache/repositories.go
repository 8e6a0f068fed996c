package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	basecache "github.com/riskibarqy/creator-hub/internal/platform/cache"
)

const (
	profilePrefix      = "profile:user:"
	campaignListPrefix = "campaign:list:"
	campaignByIDPrefix = "campaign:id:"
)

type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, profilePrefix+userID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedProfile{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfile)
	item := cached.value
	item.TikTokAccounts = append([]profile.TikTokAccount(nil), item.TikTokAccounts...)
	return item, cached.exists, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) (profile.Profile, error) {
	stored, err := r.next.Upsert(ctx, item)
	r.cache.Delete(ctx, profilePrefix+strings.TrimSpace(item.UserID))
	return stored, err
}

// ReplaceTikTokAccounts only knows the profile ID, so every cached profile
// is dropped.
func (r *ProfileRepository) ReplaceTikTokAccounts(ctx context.Context, profileID string, accounts []profile.TikTokAccount) error {
	err := r.next.ReplaceTikTokAccounts(ctx, profileID, accounts)
	r.cache.DeletePrefix(ctx, profilePrefix)
	return err
}

type cachedProfile struct {
	value  profile.Profile
	exists bool
}

type CampaignRepository struct {
	next  campaign.Repository
	cache *basecache.Store
}

func NewCampaignRepository(next campaign.Repository, cache *basecache.Store) *CampaignRepository {
	return &CampaignRepository{next: next, cache: cache}
}

func (r *CampaignRepository) ListOpen(ctx context.Context, filter campaign.ListFilter) ([]campaign.Campaign, error) {
	key := campaignListPrefix + strings.TrimSpace(filter.Category) + ":" + strings.ToLower(strings.TrimSpace(filter.Search))
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListOpen(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]campaign.Campaign(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]campaign.Campaign)
	return append([]campaign.Campaign(nil), items...), nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, campaignID string) (campaign.Campaign, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, campaignByIDPrefix+campaignID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, campaignID)
		if err != nil {
			return nil, err
		}
		return cachedCampaign{value: item, exists: exists}, nil
	})
	if err != nil {
		return campaign.Campaign{}, false, err
	}

	cached, _ := v.(cachedCampaign)
	return cached.value, cached.exists, nil
}

// ListByProfile and ListDeliverablesByProfile feed the dashboard and are
// always read through.
func (r *CampaignRepository) ListByProfile(ctx context.Context, profileID string) ([]campaign.Campaign, error) {
	return r.next.ListByProfile(ctx, profileID)
}

func (r *CampaignRepository) ListDeliverablesByProfile(ctx context.Context, profileID string) ([]campaign.Deliverable, error) {
	return r.next.ListDeliverablesByProfile(ctx, profileID)
}

type cachedCampaign struct {
	value  campaign.Campaign
	exists bool
}
