package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store реализует domain.KVStore поверх локального файла SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open открывает или создает базу по пути path (":memory:" для тестов)
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to connect to database: %w", err)
	}

	// SQLite допускает одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close закрывает соединение с базой
func (s *Store) Close() error {
	return s.db.Close()
}

// Get возвращает значение по ключу
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM checkout_drafts WHERE key = ?`,
		key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("sqlite: failed to get %q: %w", key, err)
	}
	return value, nil
}

// Set сохраняет значение по ключу
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkout_drafts (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to set %q: %w", key, err)
	}
	return nil
}

// Remove удаляет значение по ключу
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkout_drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: failed to remove %q: %w", key, err)
	}
	return nil
}

// PurgeOlderThan удаляет черновики, не изменявшиеся дольше maxAge
func (s *Store) PurgeOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM checkout_drafts WHERE updated_at < ?`,
		s.now().Add(-maxAge).UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: failed to purge drafts: %w", err)
	}
	return res.RowsAffected()
}

// Ping проверяет соединение с базой
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
