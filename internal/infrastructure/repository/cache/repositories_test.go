package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	basecache "github.com/riskibarqy/creator-hub/internal/platform/cache"
)

type countingProfiles struct {
	gets    int
	profile profile.Profile
}

func (r *countingProfiles) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.gets++
	if r.profile.UserID != userID {
		return profile.Profile{}, false, nil
	}
	return r.profile, true, nil
}

func (r *countingProfiles) Upsert(_ context.Context, item profile.Profile) (profile.Profile, error) {
	item.ID = "p1"
	r.profile = item
	return item, nil
}

func (r *countingProfiles) ReplaceTikTokAccounts(context.Context, string, []profile.TikTokAccount) error {
	return nil
}

func TestProfileRepository_InvalidatesOnWrite(t *testing.T) {
	t.Parallel()

	next := &countingProfiles{profile: profile.Profile{UserID: "u1", FirstName: "Jane"}}
	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		if _, _, err := repo.GetByUserID(t.Context(), "u1"); err != nil {
			t.Fatalf("GetByUserID error: %v", err)
		}
	}
	if next.gets != 1 {
		t.Fatalf("expected cached reads, got %d loads", next.gets)
	}

	if _, err := repo.Upsert(t.Context(), profile.Profile{UserID: "u1", FirstName: "Janet"}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	got, ok, err := repo.GetByUserID(t.Context(), "u1")
	if err != nil || !ok {
		t.Fatalf("GetByUserID failed: ok=%v err=%v", ok, err)
	}
	if got.FirstName != "Janet" || next.gets != 2 {
		t.Fatalf("expected fresh read after upsert, got %+v after %d loads", got, next.gets)
	}

	if err := repo.ReplaceTikTokAccounts(t.Context(), "p1", nil); err != nil {
		t.Fatalf("ReplaceTikTokAccounts error: %v", err)
	}
	if _, _, err := repo.GetByUserID(t.Context(), "u1"); err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if next.gets != 3 {
		t.Fatalf("expected reload after account replace, got %d loads", next.gets)
	}
}

type countingCampaigns struct {
	lists int
}

func (r *countingCampaigns) ListOpen(context.Context, campaign.ListFilter) ([]campaign.Campaign, error) {
	r.lists++
	return []campaign.Campaign{{ID: "c1", Status: campaign.StatusOpen}}, nil
}

func (r *countingCampaigns) GetByID(_ context.Context, campaignID string) (campaign.Campaign, bool, error) {
	return campaign.Campaign{}, false, nil
}

func (r *countingCampaigns) ListByProfile(context.Context, string) ([]campaign.Campaign, error) {
	return nil, nil
}

func (r *countingCampaigns) ListDeliverablesByProfile(context.Context, string) ([]campaign.Deliverable, error) {
	return nil, nil
}

func TestCampaignRepository_ListOpenKeyedByFilter(t *testing.T) {
	t.Parallel()

	next := &countingCampaigns{}
	repo := NewCampaignRepository(next, basecache.NewStore(time.Minute))

	_, _ = repo.ListOpen(t.Context(), campaign.ListFilter{Search: "Acme"})
	_, _ = repo.ListOpen(t.Context(), campaign.ListFilter{Search: " acme "})
	if next.lists != 1 {
		t.Fatalf("expected normalized search to share a key, got %d loads", next.lists)
	}

	items, _ := repo.ListOpen(t.Context(), campaign.ListFilter{Category: "Beauty"})
	if next.lists != 2 {
		t.Fatalf("expected category to use its own key, got %d loads", next.lists)
	}

	items[0].ID = "mutated"
	again, _ := repo.ListOpen(t.Context(), campaign.ListFilter{Category: "Beauty"})
	if again[0].ID != "c1" {
		t.Fatalf("cached slice was aliased")
	}

	_, ok, err := repo.GetByID(t.Context(), "missing")
	if err != nil || ok {
		t.Fatalf("expected cached miss, ok=%v err=%v", ok, err)
	}
}

type slowReadProfiles struct {
	mu      sync.Mutex
	profile profile.Profile
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *slowReadProfiles) GetByUserID(_ context.Context, _ string) (profile.Profile, bool, error) {
	r.mu.Lock()
	snapshot := r.profile
	r.mu.Unlock()

	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.started)
		<-r.release
	}
	return snapshot, true, nil
}

func (r *slowReadProfiles) Upsert(_ context.Context, item profile.Profile) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = item
	return item, nil
}

func (r *slowReadProfiles) ReplaceTikTokAccounts(context.Context, string, []profile.TikTokAccount) error {
	return nil
}

func TestProfileRepository_ReadDuringUpsertIsNotCached(t *testing.T) {
	t.Parallel()

	next := &slowReadProfiles{
		profile: profile.Profile{ID: "p1", UserID: "u1"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	repo := NewProfileRepository(next, basecache.NewStore(time.Minute))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = repo.GetByUserID(context.Background(), "u1")
	}()

	<-next.started
	if _, err := repo.Upsert(t.Context(), profile.Profile{ID: "p1", UserID: "u1", Completed: true}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	close(next.release)
	<-done

	got, ok, err := repo.GetByUserID(t.Context(), "u1")
	if err != nil || !ok {
		t.Fatalf("GetByUserID failed: ok=%v err=%v", ok, err)
	}
	if !got.Completed {
		t.Fatalf("expected completed profile after upsert, got stale %+v", got)
	}
}
