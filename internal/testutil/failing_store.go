package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/estimate/internal/kv"
)

// FailingStore wraps a kv.Store and injects an error on the Nth Set call.
// Get calls pass through unchanged. Set calls are counted starting at 1.
type FailingStore struct {
	kv.Store
	FailOn int32
	Err    error

	calls atomic.Int32
}

func (s *FailingStore) Set(ctx context.Context, key, value string) error {
	if s.calls.Add(1) == s.FailOn {
		return s.Err
	}
	return s.Store.Set(ctx, key, value)
}

// CorruptStore returns a store whose key already holds raw.
func CorruptStore(key, raw string) *kv.MemoryStore {
	store := kv.NewMemoryStore()
	_ = store.Set(context.Background(), key, raw)
	return store
}
