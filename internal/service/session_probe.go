package service

import (
	"context"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// SessionProbe определяет текущую классификацию аутентификации.
// Каждый вызов Probe выполняет полную последовательность запросов.
type SessionProbe struct {
	backend domain.RefreshBackend
	logger  *zap.Logger
}

// NewSessionProbe создает новый SessionProbe
func NewSessionProbe(backend domain.RefreshBackend, logger *zap.Logger) *SessionProbe {
	return &SessionProbe{
		backend: backend,
		logger:  logger,
	}
}

// Probe возвращает статус сессии и никогда не завершается ошибкой
func (p *SessionProbe) Probe(ctx context.Context) domain.SessionStatus {
	hasCredential, err := p.backend.HasRefreshCredential(ctx)
	if err != nil {
		p.logger.Warn("Refresh credential check failed, falling back to guest access", zap.Error(err))
		return p.establishGuest(ctx)
	}
	if !hasCredential {
		return p.establishGuest(ctx)
	}

	result, err := p.backend.Refresh(ctx)
	if err != nil {
		if isUnauthorized(err) {
			return domain.SessionExpired
		}
		p.logger.Warn("Session refresh failed", zap.Error(err))
		return domain.SessionError
	}
	if result.IsGuest() {
		return domain.SessionGuest
	}
	return domain.SessionAuthenticated
}

// establishGuest запрашивает гостевой доступ при отсутствии refresh credential
func (p *SessionProbe) establishGuest(ctx context.Context) domain.SessionStatus {
	if _, err := p.backend.Refresh(ctx); err != nil {
		p.logger.Warn("Guest access request failed", zap.Error(err))
		return domain.SessionError
	}
	return domain.SessionGuest
}
