package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Store реализует domain.KVStore поверх таблицы checkout_drafts
type Store struct {
	db DBTX
}

// NewStore создает новый Store
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Get возвращает значение по ключу
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx,
		`SELECT value FROM checkout_drafts WHERE key = $1`,
		key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("postgres: failed to get %q: %w", key, err)
	}
	return value, nil
}

// Set сохраняет значение по ключу
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO checkout_drafts (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to set %q: %w", key, err)
	}
	return nil
}

// Remove удаляет значение по ключу
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM checkout_drafts WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres: failed to remove %q: %w", key, err)
	}
	return nil
}

// PurgeOlderThan удаляет черновики, не изменявшиеся дольше maxAge
func (s *Store) PurgeOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM checkout_drafts WHERE updated_at < $1`,
		time.Now().Add(-maxAge),
	)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to purge drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Ping проверяет соединение с базой данных
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
