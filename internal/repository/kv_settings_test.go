package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/kv"
	"github.com/alexanderramin/estimate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_DefaultsWithoutWriting(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewKVSettingsRepo(store)
	ctx := context.Background()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, s.JobTypes)
	assert.NotEmpty(t, s.Templates)
	assert.Zero(t, store.Writes())

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSettingsRepo_DefaultsAreFreshPerCall(t *testing.T) {
	repo := NewKVSettingsRepo(kv.NewMemoryStore())
	ctx := context.Background()

	first, err := repo.Get(ctx)
	require.NoError(t, err)
	first.JobTypes[0].MonthlyRate = 0
	first.Templates = nil

	second, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), second)
}

func TestSettingsRepo_SaveOverwrites(t *testing.T) {
	repo := NewKVSettingsRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	engineer := testutil.NewTestJobType("Engineer", 900000)
	custom := domain.Settings{
		JobTypes: []domain.JobType{engineer},
		Templates: []domain.Template{
			testutil.NewTestTemplate("Small", testutil.NewTestWorkItem("Build", engineer.ID, 2)),
		},
	}
	require.NoError(t, repo.Save(ctx, custom))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	emptied := domain.Settings{JobTypes: []domain.JobType{}, Templates: []domain.Template{}}
	require.NoError(t, repo.Save(ctx, emptied))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.JobTypes)
	assert.Empty(t, got.Templates)
}

func TestSettingsRepo_TemplateItemsCarryNoIDs(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewKVSettingsRepo(store)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, domain.DefaultSettings()))

	raw, ok, err := store.Get(ctx, SettingsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"manMonths":0.5`)
	assert.NotContains(t, raw, `"workItems":[{"id"`)
}

func TestSettingsRepo_Corrupt(t *testing.T) {
	repo := NewKVSettingsRepo(testutil.CorruptStore(SettingsKey, `{"jobTypes":[{"id":"1","name":"PG","hourlyRate":5000}],"templates":[]}`))

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptRecord))
	assert.Contains(t, err.Error(), SettingsKey)
}
