package kvstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitnessdump/fitdump/internal/config"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRedis(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStoreWithClient(client, prefix), mr
}

func backends(t *testing.T) map[string]Store {
	sqlStore, err := NewSQLStore(context.Background(), setupTestDB(t), "kv")
	require.NoError(t, err)
	redisStore, _ := setupTestRedis(t, "test:")

	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
		"sql":    sqlStore,
	}
}

func TestStore_Contract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "auth")
			require.Error(t, err)
			assert.True(t, IsNotFound(err))

			ok, err := store.Exists(ctx, "auth")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "auth", []byte(`{"token":"a"}`)))
			require.NoError(t, store.Set(ctx, "auth", []byte(`{"token":"b"}`)))
			require.NoError(t, store.Set(ctx, "savedFoods_user_1", []byte(`[]`)))

			got, err := store.Get(ctx, "auth")
			require.NoError(t, err)
			assert.Equal(t, `{"token":"b"}`, string(got))

			ok, err = store.Exists(ctx, "auth")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, store.Delete(ctx, "auth"))
			require.NoError(t, store.Delete(ctx, "auth"))
			_, err = store.Get(ctx, "auth")
			assert.True(t, IsNotFound(err))

			require.NoError(t, store.Clear(ctx))
			ok, err = store.Exists(ctx, "savedFoods_user_1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	type record struct {
		Token string `json:"token"`
	}
	require.NoError(t, SetJSON(ctx, store, "auth", record{Token: "t"}))

	var got record
	require.NoError(t, GetJSON(ctx, store, "auth", &got))
	assert.Equal(t, "t", got.Token)

	require.NoError(t, store.Set(ctx, "broken", []byte("{")))
	err := GetJSON(ctx, store, "broken", &got)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	assert.True(t, IsNotFound(GetJSON(ctx, store, "missing", &got)))
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRedisStore_ClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t, "fitdump:")

	require.NoError(t, mr.Set("other:key", "v"))
	require.NoError(t, store.Set(ctx, "auth", []byte("x")))
	assert.True(t, mr.Exists("fitdump:auth"))

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists("fitdump:auth"))
	assert.True(t, mr.Exists("other:key"))
}

func TestNewRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := NewRedisStore(RedisConfig{Addr: mr.Addr(), Prefix: "p:"})
	require.NoError(t, err)
	defer store.Close()

	_, err = NewRedisStore(RedisConfig{Addr: "localhost:99999"})
	assert.Error(t, err)
}

func TestSQLStore_TableName(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewSQLStore(context.Background(), db, "kv; DROP TABLE users")
	assert.Error(t, err)

	store, err := NewSQLStore(context.Background(), db, "")
	require.NoError(t, err)
	assert.Equal(t, "kv", store.tableName)

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv", name)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	dsn := t.TempDir() + "/nested/fitdump.db"
	store, err = Open(ctx, config.StorageConfig{Driver: config.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "auth", []byte("x")))
	require.NoError(t, store.Close())

	store, err = Open(ctx, config.StorageConfig{Driver: config.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	got, err := store.Get(ctx, "auth")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
	require.NoError(t, store.Close())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	store, err = Open(ctx, config.StorageConfig{
		Driver: config.DriverRedis,
		Prefix: "fitdump:",
		Redis:  config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "auth", []byte("x")))
	assert.True(t, mr.Exists("fitdump:auth"))

	_, err = Open(ctx, config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}
