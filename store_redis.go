package botroles

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists registry snapshots in Redis. Snapshots are small
// (a handful of roles and edges), so they are stored as single opaque
// values under "<prefix>:<key>".
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed snapshot store. An empty prefix
// defaults to "botroles".
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "botroles"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) storageKey(key string) string {
	return s.prefix + ":" + key
}

// Save stores the registry snapshot under the given key. Snapshots never
// expire; they are replaced by the next Save.
func (s *RedisStore) Save(ctx context.Context, key string, reg *Registry) error {
	data, err := reg.MarshalBinary()
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.storageKey(key), data, 0).Err(); err != nil {
		return NewError(ErrStorage, err.Error())
	}
	return nil
}

// Load reads the snapshot stored under key and rebuilds the registry inside
// the given hierarchy. Returns ErrSnapshotNotFound when no snapshot exists.
func (s *RedisStore) Load(ctx context.Context, key string, h *Hierarchy) (*Registry, error) {
	data, err := s.rdb.Get(ctx, s.storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, NewError(ErrSnapshotNotFound, key)
		}
		return nil, NewError(ErrStorage, err.Error())
	}
	return RestoreRegistry(h, data)
}

// Delete removes the snapshot stored under key. Deleting an absent key is a
// no-op.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.storageKey(key)).Err(); err != nil {
		return NewError(ErrStorage, err.Error())
	}
	return nil
}
