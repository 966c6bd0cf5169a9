package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SlotStore persists key-value slots in the storage_slots table. Every Set
// overwrites the whole value.
type SlotStore struct {
	pool *pgxpool.Pool
}

func NewSlotStore(pool *pgxpool.Pool) *SlotStore {
	return &SlotStore{pool: pool}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `
		SELECT value
		FROM storage_slots
		WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select slot %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO storage_slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert slot %q: %w", key, err)
	}
	return nil
}
