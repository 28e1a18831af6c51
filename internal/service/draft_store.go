package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

const draftKeyPrefix = "checkout:draft:"

// DraftKey возвращает ключ черновика сессии в хранилище
func DraftKey(sessionID string) string {
	return draftKeyPrefix + sessionID
}

// DraftStore хранит черновик заказа одной сессии в key-value хранилище
type DraftStore struct {
	kv     domain.KVStore
	key    string
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewDraftStore создает новый DraftStore
func NewDraftStore(kv domain.KVStore, sessionID string, logger *zap.Logger) *DraftStore {
	return &DraftStore{
		kv:     kv,
		key:    DraftKey(sessionID),
		logger: logger,
		now:    time.Now,
	}
}

// Load читает черновик; отсутствующий или поврежденный черновик считается пустым
func (s *DraftStore) Load(ctx context.Context) (domain.DraftOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save сохраняет черновик
func (s *DraftStore) Save(ctx context.Context, draft domain.DraftOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, draft)
}

// Update атомарно изменяет сохраненный черновик
func (s *DraftStore) Update(ctx context.Context, fn func(draft *domain.DraftOrder)) (domain.DraftOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.load(ctx)
	if err != nil {
		return draft, err
	}
	fn(&draft)
	if err := s.save(ctx, draft); err != nil {
		return draft, err
	}
	return draft, nil
}

// Clear удаляет черновик
func (s *DraftStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, s.key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("draft store: failed to clear draft: %w", err)
	}
	return nil
}

func (s *DraftStore) load(ctx context.Context) (domain.DraftOrder, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.NewDraftOrder(), nil
		}
		return domain.NewDraftOrder(), fmt.Errorf("draft store: failed to load draft: %w", err)
	}

	draft := domain.NewDraftOrder()
	if err := json.Unmarshal(data, &draft); err != nil {
		s.logger.Warn("Discarding unreadable checkout draft", zap.String("key", s.key), zap.Error(err))
		return domain.NewDraftOrder(), nil
	}
	draft.ApplyDefaults()
	return draft, nil
}

func (s *DraftStore) save(ctx context.Context, draft domain.DraftOrder) error {
	draft.ApplyDefaults()
	draft.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("draft store: failed to encode draft: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("draft store: failed to save draft: %w", err)
	}
	return nil
}

// MergeProfile объединяет черновик с профилем при смене гость/вход.
// Значение профиля используется, если пользователь не ввел в поле ничего своего,
// то есть поле пусто или совпадает с ранее известным значением профиля.
func MergeProfile(draft domain.DraftOrder, profile *domain.Profile) domain.DraftOrder {
	if profile == nil {
		return draft
	}

	var known domain.Profile
	if draft.KnownProfile != nil {
		known = *draft.KnownProfile
	}

	draft.FirstName = mergeField(draft.FirstName, known.FirstName, profile.FirstName)
	draft.LastName = mergeField(draft.LastName, known.LastName, profile.LastName)
	draft.Email = mergeField(draft.Email, known.Email, profile.Email)
	draft.Phone = mergeField(draft.Phone, known.PhoneNumber, profile.PhoneNumber)

	p := *profile
	draft.KnownProfile = &p
	return draft
}

func mergeField(current, known, incoming string) string {
	if incoming == "" {
		return current
	}
	if current == "" || current == known {
		return incoming
	}
	return current
}
