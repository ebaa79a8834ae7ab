package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/kv"
)

// KVSettingsRepo implements SettingsRepo on a key-value store.
type KVSettingsRepo struct {
	store kv.Store
}

// NewKVSettingsRepo creates a new KVSettingsRepo.
func NewKVSettingsRepo(store kv.Store) *KVSettingsRepo {
	return &KVSettingsRepo{store: store}
}

// Get returns the stored settings, or a freshly built default when none are
// stored. The default is not written back.
func (r *KVSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	raw, ok, err := r.store.Get(ctx, SettingsKey)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	if !ok {
		return domain.DefaultSettings(), nil
	}

	var s domain.Settings
	if err := decodeRecord(SettingsKey, raw, &s); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// Exists reports whether a settings record has been saved.
func (r *KVSettingsRepo) Exists(ctx context.Context) (bool, error) {
	_, ok, err := r.store.Get(ctx, SettingsKey)
	if err != nil {
		return false, fmt.Errorf("loading settings: %w", err)
	}
	return ok, nil
}

// Save overwrites the whole settings record.
func (r *KVSettingsRepo) Save(ctx context.Context, s domain.Settings) error {
	raw, err := encodeRecord(SettingsKey, s)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, SettingsKey, raw); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
