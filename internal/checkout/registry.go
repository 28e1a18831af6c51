package checkout

import (
	"fmt"
	"sync"
	"time"

	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/avc/storefront-gateway/internal/service"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

// Registry хранит сессии оформления по идентификатору браузерной сессии
type Registry struct {
	cfg       SessionConfig
	kv        domain.KVStore
	validator *validatorv10.Validate
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry создает новый Registry.
// Сессии разделяют только пул соединений к storefront API.
func NewRegistry(cfg SessionConfig, kv domain.KVStore, logger *zap.Logger) *Registry {
	if cfg.Transport == nil {
		cfg.Transport = cleanhttp.DefaultPooledTransport()
	}
	return &Registry{
		cfg:       cfg,
		kv:        kv,
		validator: service.NewContactValidator(),
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// GetOrCreate возвращает сессию, создавая ее при первом обращении
func (r *Registry) GetOrCreate(id string) (*Session, error) {
	if s, ok := r.Get(id); ok {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.Touch()
		return s, nil
	}

	s, err := NewSession(id, r.cfg, r.kv, r.validator, r.logger)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to create session: %w", err)
	}
	r.sessions[id] = s
	r.logger.Debug("Checkout session created", zap.String("session_id", id))
	return s, nil
}

// Get возвращает существующую сессию
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Отметка под блокировкой: EvictIdle не закроет только что выданную сессию
	s, ok := r.sessions[id]
	if ok {
		s.Touch()
	}
	return s, ok
}

// Remove закрывает и удаляет сессию
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Snapshot возвращает список живых сессий
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// EvictIdle удаляет сессии без активности дольше maxIdle.
// Сессии с незавершенными запросами не трогаются.
// Черновики остаются в хранилище и подхватываются при следующем визите.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if !s.Busy() && s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

// Len возвращает число живых сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close закрывает все сессии
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
