package service

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// refreshWaveKey единственный ключ волны refresh внутри сессии
const refreshWaveKey = "refresh"

// Prober определяет проверку статуса сессии
type Prober interface {
	Probe(ctx context.Context) domain.SessionStatus
}

type retriedKey struct{}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func isRetried(ctx context.Context) bool {
	retried, _ := ctx.Value(retriedKey{}).(bool)
	return retried
}

func isRefreshPath(path string) bool {
	return path == pathRefreshCheck || path == pathTokenRefresh
}

// RefreshCoordinator обрабатывает 401 ответы защищенных вызовов:
// не более одной проверки сессии на волну отказов, общий результат для всех ожидающих.
type RefreshCoordinator struct {
	prober Prober
	logout domain.LogoutBackend
	logger *zap.Logger

	group   singleflight.Group
	waiting atomic.Int32
	probes  atomic.Int64

	mu     sync.RWMutex
	status domain.SessionStatus
}

// NewRefreshCoordinator создает новый RefreshCoordinator
func NewRefreshCoordinator(prober Prober, logout domain.LogoutBackend, logger *zap.Logger) *RefreshCoordinator {
	return &RefreshCoordinator{
		prober: prober,
		logout: logout,
		logger: logger,
		status: domain.SessionUnknown,
	}
}

// Execute выполняет вызов и восстанавливает его после отказа авторизации
func (c *RefreshCoordinator) Execute(ctx context.Context, path string, call func(ctx context.Context) error) error {
	err := call(ctx)
	if err == nil || !isUnauthorized(err) || isRetried(ctx) || isRefreshPath(path) {
		return err
	}

	status, waitErr := c.join(ctx)
	if waitErr != nil {
		return waitErr
	}

	switch status {
	case domain.SessionAuthenticated:
		return call(markRetried(ctx))
	case domain.SessionGuest:
		// Гостевой сессии нельзя молча повторять запрос, требующий входа
		return err
	case domain.SessionExpired:
		return &domain.APIError{
			Kind:    domain.KindSessionExpired,
			Status:  http.StatusUnauthorized,
			Message: "Your session has expired. Please log in again.",
		}
	default:
		return &domain.APIError{
			Kind:    domain.KindTransient,
			Message: "Could not verify your session. Please try again.",
		}
	}
}

// Check проверяет сессию в рамках общей волны
func (c *RefreshCoordinator) Check(ctx context.Context) (domain.SessionStatus, error) {
	return c.join(ctx)
}

// Status возвращает текущий статус сессии
func (c *RefreshCoordinator) Status() domain.SessionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Waiting возвращает число вызовов, ожидающих текущую волну
func (c *RefreshCoordinator) Waiting() int {
	return int(c.waiting.Load())
}

// Probes возвращает число выполненных проверок сессии
func (c *RefreshCoordinator) Probes() int64 {
	return c.probes.Load()
}

// join присоединяет вызов к текущей волне или начинает новую
func (c *RefreshCoordinator) join(ctx context.Context) (domain.SessionStatus, error) {
	// Волна не зависит от отмены контекста вызвавшего ее запроса
	waveCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(refreshWaveKey, func() (interface{}, error) {
		return c.runWave(waveCtx), nil
	})

	c.waiting.Add(1)
	defer c.waiting.Add(-1)

	select {
	case res := <-ch:
		return res.Val.(domain.SessionStatus), nil
	case <-ctx.Done():
		return domain.SessionUnknown, ctx.Err()
	}
}

// runWave выполняется лидером волны
func (c *RefreshCoordinator) runWave(ctx context.Context) domain.SessionStatus {
	c.setStatus(domain.SessionChecking)
	c.probes.Add(1)

	status := c.prober.Probe(ctx)
	c.setStatus(status)

	c.logger.Debug("Session probe finished", zap.String("status", string(status)))

	if status == domain.SessionExpired {
		if err := c.logout.Logout(ctx); err != nil {
			c.logger.Warn("Logout after session expiry failed", zap.Error(err))
		}
	}
	return status
}

func (c *RefreshCoordinator) setStatus(status domain.SessionStatus) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}
