package memory

import (
	"context"
	"sync"

	"github.com/avc/storefront-gateway/internal/domain"
)

// Store хранит черновики в памяти процесса
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New создает новый Store
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get возвращает значение по ключу
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set сохраняет значение по ключу
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.data[key] = stored
	s.mu.Unlock()
	return nil
}

// Remove удаляет значение по ключу
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Ping всегда успешен
func (s *Store) Ping(context.Context) error {
	return nil
}

// Len возвращает число сохраненных ключей
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
