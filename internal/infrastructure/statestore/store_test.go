package statestore

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/creator-hub/internal/domain/authflow"
	"github.com/riskibarqy/creator-hub/internal/domain/onboarding"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "creatorhub:", ttl), mr
}

func TestStore_WizardRoundTrip(t *testing.T) {
	t.Parallel()

	redisStore, _ := newRedisStore(t, time.Hour)
	stores := map[string]*Store{
		"memory": NewMemory(time.Hour),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
			wizard := onboarding.NewWizard("u1", now)
			wizard.Step = onboarding.StepSocialLinks
			wizard.Revision = 3
			wizard.Draft.Basic.FirstName = "Jane"
			wizard.Draft.Social.TikTokAccounts = []onboarding.TikTokAccount{{URL: "https://tiktok.com/@jane", Niche: "beauty"}}

			if err := store.PutWizard(t.Context(), wizard); err != nil {
				t.Fatalf("PutWizard error: %v", err)
			}
			wizard.Draft.Social.TikTokAccounts[0].URL = "mutated"

			got, ok, err := store.GetWizard(t.Context(), "u1")
			if err != nil || !ok {
				t.Fatalf("GetWizard failed: ok=%v err=%v", ok, err)
			}
			if got.Step != onboarding.StepSocialLinks || got.Revision != 3 || got.Draft.Basic.FirstName != "Jane" {
				t.Fatalf("unexpected wizard: %+v", got)
			}
			if got.Draft.Social.TikTokAccounts[0].URL != "https://tiktok.com/@jane" {
				t.Fatalf("stored draft aliased caller slice: %+v", got.Draft.Social.TikTokAccounts)
			}

			if err := store.DeleteWizard(t.Context(), "u1"); err != nil {
				t.Fatalf("DeleteWizard error: %v", err)
			}
			if _, ok, err := store.GetWizard(t.Context(), "u1"); err != nil || ok {
				t.Fatalf("expected deleted wizard, ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestStore_FlowExpiresInRedis(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, 10*time.Minute)
	flow := authflow.New("attempt-1", time.Now())
	flow.CodeSent(time.Now())

	if err := store.PutFlow(t.Context(), flow); err != nil {
		t.Fatalf("PutFlow error: %v", err)
	}
	if !mr.Exists("creatorhub:authflow:attempt-1") {
		t.Fatalf("expected prefixed key in redis")
	}

	got, ok, err := store.GetFlow(t.Context(), "attempt-1")
	if err != nil || !ok {
		t.Fatalf("GetFlow failed: ok=%v err=%v", ok, err)
	}
	if got.Stage != authflow.StageAwaitingCode {
		t.Fatalf("unexpected stage: %s", got.Stage)
	}

	mr.FastForward(11 * time.Minute)
	if _, ok, err := store.GetFlow(t.Context(), "attempt-1"); err != nil || ok {
		t.Fatalf("expected expired flow, ok=%v err=%v", ok, err)
	}
}

func TestStore_RedisUnavailable(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, time.Minute)
	mr.SetError("LOADING redis is loading the dataset in memory")

	if _, _, err := store.GetFlow(t.Context(), "attempt-1"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
