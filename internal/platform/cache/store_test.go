package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errLoad = errors.New("load failed")

func TestStore_GetOrLoad_SharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "profile", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "profile:user:u1", loader)
			if err != nil {
				results <- err
				return
			}
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != "profile" {
			t.Fatalf("unexpected result: %v", v)
		}
	}
	if got := calls.Load(); got < 1 || got > workers {
		t.Fatalf("unexpected loader calls: %d", got)
	}
	if _, ok := store.Get(context.Background(), "profile:user:u1"); !ok {
		t.Fatalf("expected value to be cached")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errLoad
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errLoad) {
			t.Fatalf("expected load error, got %v", err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected loader to run twice, got %d", calls.Load())
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "a", 1)
	store.SetWithTTL(context.Background(), "b", 2, 0)

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "a"); ok {
		t.Fatalf("expected a to expire")
	}
	if _, ok := store.Get(context.Background(), "b"); !ok {
		t.Fatalf("expected b without ttl to persist")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "campaign:list:a", 1)
	store.Set(ctx, "campaign:list:b", 2)
	store.Set(ctx, "campaign:id:1", 3)

	store.DeletePrefix(ctx, "campaign:list:")
	if store.Len() != 1 {
		t.Fatalf("expected one entry left, got %d", store.Len())
	}
	store.Delete(ctx, "campaign:id:1")
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestStore_GetOrLoad_SkipsLoadOverlappingDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan any, 1)
	go func() {
		v, _ := store.GetOrLoad(context.Background(), "profile:user:u1", func(context.Context) (any, error) {
			close(started)
			<-release
			return "before-write", nil
		})
		done <- v
	}()

	<-started
	store.Delete(context.Background(), "profile:user:u1")
	close(release)
	if v := <-done; v != "before-write" {
		t.Fatalf("expected in-flight caller to get its load, got %v", v)
	}

	if _, ok := store.Get(context.Background(), "profile:user:u1"); ok {
		t.Fatalf("expected load overlapping delete to stay uncached")
	}

	v, err := store.GetOrLoad(context.Background(), "profile:user:u1", func(context.Context) (any, error) {
		return "after-write", nil
	})
	if err != nil || v != "after-write" {
		t.Fatalf("expected fresh load, got %v err=%v", v, err)
	}
	if cached, ok := store.Get(context.Background(), "profile:user:u1"); !ok || cached != "after-write" {
		t.Fatalf("expected fresh load to be cached, got %v ok=%v", cached, ok)
	}
}
