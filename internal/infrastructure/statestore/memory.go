package statestore

import (
	"context"
	"time"

	basecache "github.com/riskibarqy/creator-hub/internal/platform/cache"
)

// NewMemory keeps state in process. Values are stored encoded so callers
// never share slices with the store.
func NewMemory(ttl time.Duration) *Store {
	return &Store{
		backend: &memoryBackend{entries: basecache.NewStore(ttl)},
		ttl:     ttl,
	}
}

type memoryBackend struct {
	entries *basecache.Store
}

func (b *memoryBackend) get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := b.entries.Get(ctx, key)
	if !ok {
		return nil, false, nil
	}
	raw, _ := v.([]byte)
	return raw, true, nil
}

func (b *memoryBackend) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b.entries.SetWithTTL(ctx, key, value, ttl)
	return nil
}

func (b *memoryBackend) del(ctx context.Context, key string) error {
	b.entries.Delete(ctx, key)
	return nil
}
