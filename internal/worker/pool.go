package worker

import (
	"context"
	"sync"
	"time"

	"github.com/avc/storefront-gateway/internal/checkout"
	"github.com/avc/storefront-gateway/internal/domain"
	"go.uber.org/zap"
)

// SessionRegistry определяет источник живых сессий оформления
type SessionRegistry interface {
	Snapshot() []*checkout.Session
	EvictIdle(maxIdle time.Duration) int
}

// Purger определяет очистку устаревших черновиков в долговременном хранилище
type Purger interface {
	PurgeOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}

// PoolConfig параметры пула
type PoolConfig struct {
	Workers      int
	QueueSize    int
	ScanInterval time.Duration // Период повторной проверки сессий
	CheckTimeout time.Duration
	IdleTTL      time.Duration // Сессии без активности дольше IdleTTL вытесняются
	DraftMaxAge  time.Duration // Черновики старше DraftMaxAge удаляются из хранилища
}

// Pool представляет пул воркеров, поддерживающих сессии оформления
type Pool struct {
	cfg      PoolConfig
	queue    chan *checkout.Session
	registry SessionRegistry
	purger   Purger
	logger   *zap.Logger

	wg        sync.WaitGroup
	scannerWG sync.WaitGroup
}

// NewPool создает новый worker pool. purger может быть nil.
func NewPool(cfg PoolConfig, registry SessionRegistry, purger Purger, logger *zap.Logger) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 30 * time.Second
	}
	return &Pool{
		cfg:      cfg,
		queue:    make(chan *checkout.Session, cfg.QueueSize),
		registry: registry,
		purger:   purger,
		logger:   logger,
	}
}

// Start запускает worker pool
func (p *Pool) Start(ctx context.Context) {
	// Запускаем воркеры
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	// Запускаем сканер сессий
	p.scannerWG.Add(1)
	go p.scanner(ctx)
}

// Stop останавливает worker pool. Контекст Start должен быть отменен до вызова.
func (p *Pool) Stop() {
	p.scannerWG.Wait()
	close(p.queue)
	p.wg.Wait()
}

// worker проверяет сессии из очереди
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Info("keeper worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("keeper worker stopping", zap.Int("worker_id", id))
			return
		case s, ok := <-p.queue:
			if !ok {
				return
			}
			p.checkSession(ctx, s)
		}
	}
}

// scanner периодически ставит сессии на проверку
func (p *Pool) scanner(ctx context.Context) {
	defer p.scannerWG.Done()

	ticker := time.NewTicker(p.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("keeper scanner stopping")
			return
		case <-ticker.C:
			p.scan(ctx)
		}
	}
}

// scan вытесняет простаивающие сессии и отправляет остальные в очередь
func (p *Pool) scan(ctx context.Context) {
	if p.cfg.IdleTTL > 0 {
		if evicted := p.registry.EvictIdle(p.cfg.IdleTTL); evicted > 0 {
			p.logger.Info("idle checkout sessions evicted", zap.Int("count", evicted))
		}
	}

	for _, s := range p.registry.Snapshot() {
		select {
		case p.queue <- s:
			// Успешно добавлено в очередь
		case <-ctx.Done():
			return
		default:
			// Очередь заполнена, проверим на следующем проходе
			p.logger.Warn("queue is full, skipping session", zap.String("session_id", s.ID()))
		}
	}

	p.purge(ctx)
}

// checkSession проверяет одну сессию через ее RefreshCoordinator
func (p *Pool) checkSession(ctx context.Context, s *checkout.Session) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.CheckTimeout)
	defer cancel()

	status, err := s.Check(ctx)
	if err != nil {
		p.logger.Warn("session check abandoned", zap.String("session_id", s.ID()), zap.Error(err))
		return
	}

	switch status {
	case domain.SessionExpired:
		p.logger.Info("checkout session expired", zap.String("session_id", s.ID()))
	case domain.SessionError:
		p.logger.Warn("checkout session could not be verified", zap.String("session_id", s.ID()))
	default:
		p.logger.Debug("checkout session checked",
			zap.String("session_id", s.ID()),
			zap.String("status", string(status)),
		)
	}
}

// purge удаляет устаревшие черновики, если хранилище это поддерживает
func (p *Pool) purge(ctx context.Context) {
	if p.purger == nil || p.cfg.DraftMaxAge <= 0 {
		return
	}

	purged, err := p.purger.PurgeOlderThan(ctx, p.cfg.DraftMaxAge)
	if err != nil {
		p.logger.Error("failed to purge stale drafts", zap.Error(err))
		return
	}
	if purged > 0 {
		p.logger.Info("stale drafts purged", zap.Int64("count", purged))
	}
}
