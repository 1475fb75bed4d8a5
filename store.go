package botroles

import (
	"context"
	"log"
	"time"

	"github.com/uptrace/bun"

	"github.com/fernandezvara/dbkit"
)

// RegistryRecord is the persisted form of a registry snapshot. Several
// registries can be stored side by side under distinct keys (one per bot
// application, or one per deployment stage).
type RegistryRecord struct {
	bun.BaseModel `bun:"table:registry_snapshots,alias:rs"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Key       string    `bun:"key,notnull,unique"`
	Data      []byte    `bun:"data,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Store persists registry snapshots in Postgres through dbkit. It only
// moves opaque snapshot bytes; the snapshot format itself is defined by
// Registry.MarshalBinary/RestoreRegistry.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	store := botroles.NewStore(db)
//	db.Migrate(ctx, store.Migrations())
//
//	store.Save(ctx, "mybot", registry)
//	registry, err := store.Load(ctx, "mybot", h)
type Store struct {
	db dbkit.IDB
}

// NewStore creates a Postgres-backed snapshot store.
func NewStore(db dbkit.IDB) *Store {
	return &Store{db: db}
}

// Migrations returns the database migrations required by the store.
// Run them with dbkit.Migrate (or db.Migrate) before first use.
func (s *Store) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "botroles-001",
			Description: "Create registry_snapshots table",
			SQL: `
                CREATE TABLE IF NOT EXISTS registry_snapshots (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    key TEXT NOT NULL UNIQUE,
                    data BYTEA NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
	}
}

// Save upserts the registry snapshot under the given key.
func (s *Store) Save(ctx context.Context, key string, reg *Registry) error {
	data, err := reg.MarshalBinary()
	if err != nil {
		return err
	}

	record := &RegistryRecord{Key: key, Data: data}
	result, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err = dbkit.WithErr(result, err, "SaveRegistrySnapshot").Err(); err != nil {
		return NewError(ErrStorage, err.Error())
	}

	log.Printf("botroles: saved registry snapshot %q (%d bytes)", key, len(data))
	return nil
}

// Load reads the snapshot stored under key and rebuilds the registry inside
// the given hierarchy. Returns ErrSnapshotNotFound when no snapshot exists.
func (s *Store) Load(ctx context.Context, key string, h *Hierarchy) (*Registry, error) {
	var record RegistryRecord
	err := s.db.NewSelect().
		Model(&record).
		Where("key = ?", key).
		Scan(ctx)
	if err = dbkit.WithErr1(err, "LoadRegistrySnapshot").Err(); err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrSnapshotNotFound, key)
		}
		return nil, NewError(ErrStorage, err.Error())
	}
	return RestoreRegistry(h, record.Data)
}

// Delete removes the snapshot stored under key. Deleting an absent key is a
// no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	result, err := s.db.NewDelete().
		Table("registry_snapshots").
		Where("key = ?", key).
		Exec(ctx)
	if err = dbkit.WithErr(result, err, "DeleteRegistrySnapshot").Err(); err != nil {
		return NewError(ErrStorage, err.Error())
	}
	return nil
}
