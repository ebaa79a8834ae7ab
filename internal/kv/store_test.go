package kv_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/kv"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore checks the contract every backend must honour.
func exerciseStore(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()

	v, ok, err := store.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)

	require.NoError(t, store.Set(ctx, "estimate_projects", `[]`))
	v, ok, err = store.Get(ctx, "estimate_projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	// Overwrite replaces the whole value.
	require.NoError(t, store.Set(ctx, "estimate_projects", `[{"id":"1"}]`))
	v, _, err = store.Get(ctx, "estimate_projects")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, v)

	// Keys are independent.
	require.NoError(t, store.Set(ctx, "estimate_settings", `{}`))
	v, _, err = store.Get(ctx, "estimate_projects")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, v)

	// Empty string is a stored value, not absence.
	require.NoError(t, store.Set(ctx, "empty", ""))
	_, ok, err = store.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore(t *testing.T) {
	store := kv.NewMemoryStore()
	exerciseStore(t, store)
	assert.Equal(t, 4, store.Writes())
	assert.Equal(t, 3, store.Keys())
}

func TestSQLStore_SQLite(t *testing.T) {
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	exerciseStore(t, kv.NewSQLStore(database, kv.DialectSQLite))
}

func TestSQLStore_SQLiteFilePersists(t *testing.T) {
	path := t.TempDir() + "/estimate.db"
	ctx := context.Background()

	first, err := db.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.NewSQLStore(first, kv.DialectSQLite).Set(ctx, "k", "v"))
	require.NoError(t, first.Close())

	second, err := db.OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := kv.NewSQLStore(second, kv.DialectSQLite).Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

// setupTestPostgres skips unless ESTIMATE_TEST_POSTGRES_DSN is set.
func setupTestPostgres(t *testing.T) *sql.DB {
	dsn := os.Getenv("ESTIMATE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ESTIMATE_TEST_POSTGRES_DSN not set, skipping PostgreSQL integration test")
	}
	database, err := db.OpenPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = database.Exec(`DELETE FROM kv_records WHERE record_key IN ('estimate_projects', 'estimate_settings', 'empty')`)
		database.Close()
	})
	return database
}

func TestSQLStore_Postgres(t *testing.T) {
	database := setupTestPostgres(t)
	exerciseStore(t, kv.NewSQLStore(database, kv.DialectPostgres))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := kv.NewRedisStore(client)
	exerciseStore(t, store)

	// Values are stored without expiry.
	assert.Zero(t, mr.TTL("estimate_projects"))
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := kv.DialRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestDialRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := kv.DialRedis(context.Background(), addr, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}

func TestWithPrefix(t *testing.T) {
	inner := kv.NewMemoryStore()
	ctx := context.Background()

	assert.Same(t, inner, kv.WithPrefix(inner, "").(*kv.MemoryStore))

	a := kv.WithPrefix(inner, "client-a")
	b := kv.WithPrefix(inner, "client-b")
	require.NoError(t, a.Set(ctx, "estimate_projects", "A"))
	require.NoError(t, b.Set(ctx, "estimate_projects", "B"))

	v, _, err := a.Get(ctx, "estimate_projects")
	require.NoError(t, err)
	assert.Equal(t, "A", v)

	v, ok, err := inner.Get(ctx, "client-b:estimate_projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "B", v)

	_, ok, _ = inner.Get(ctx, "estimate_projects")
	assert.False(t, ok)
}
