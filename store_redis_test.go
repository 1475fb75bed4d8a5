package botroles

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, context.Context) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ""), context.Background()
}

// TestRedisStoreSaveLoad validates the Redis snapshot round-trip.
func TestRedisStoreSaveLoad(t *testing.T) {
	store, ctx := setupRedisStore(t)

	h1 := NewHierarchy()
	reg1 := buildTestRegistry(t, h1)
	require.NoError(t, store.Save(ctx, "mybot", reg1))

	reg2, err := store.Load(ctx, "mybot", NewHierarchy())
	require.NoError(t, err)
	assert.Equal(t, reg1.Names(), reg2.Names())
	assert.True(t, reg1.Admins().Equals(reg2.Admins()))

	mods, ok := reg2.Get("moderators")
	require.True(t, ok)
	assert.True(t, mods.Evaluate(ctx, UserUpdate(1)))
}

// TestRedisStoreKeyPrefix validates key namespacing.
func TestRedisStoreKeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	store := NewRedisStore(rdb, "acme")
	reg := NewRegistry(NewHierarchy())
	require.NoError(t, store.Save(ctx, "mybot", reg))

	assert.True(t, mr.Exists("acme:mybot"))
	assert.False(t, mr.Exists("botroles:mybot"))
}

// TestRedisStoreLoadMissing validates the not-found error.
func TestRedisStoreLoadMissing(t *testing.T) {
	store, ctx := setupRedisStore(t)

	_, err := store.Load(ctx, "missing", NewHierarchy())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.True(t, IsSnapshotNotFound(err))
}

// TestRedisStoreDelete validates removal and its idempotency.
func TestRedisStoreDelete(t *testing.T) {
	store, ctx := setupRedisStore(t)

	reg := NewRegistry(NewHierarchy())
	require.NoError(t, store.Save(ctx, "mybot", reg))
	require.NoError(t, store.Delete(ctx, "mybot"))

	_, err := store.Load(ctx, "mybot", NewHierarchy())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, store.Delete(ctx, "mybot"))
}

// TestRedisStoreCorruptData validates that garbage stored under the key
// surfaces as a corrupt snapshot.
func TestRedisStoreCorruptData(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, mr.Set("botroles:mybot", "garbage"))
	store := NewRedisStore(rdb, "")

	_, err := store.Load(context.Background(), "mybot", NewHierarchy())
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}
