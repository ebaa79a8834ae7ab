// Package kv defines the key-value capability that estimate records are
// persisted through, and the backends that provide it.
package kv

import "context"

// Store is a string key-value store. Get reports ok=false, with a nil
// error, when the key has never been set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// PrefixedStore namespaces every key of an underlying store so several
// workspaces can share one backend.
type PrefixedStore struct {
	inner  Store
	prefix string
}

// WithPrefix wraps inner so that keys are stored as "<prefix>:<key>".
// An empty prefix returns inner unchanged.
func WithPrefix(inner Store, prefix string) Store {
	if prefix == "" {
		return inner
	}
	return &PrefixedStore{inner: inner, prefix: prefix + ":"}
}

func (s *PrefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *PrefixedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}
