package app

import (
	"time"

	"github.com/avc/storefront-gateway/internal/checkout"
	"github.com/avc/storefront-gateway/internal/config"
	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/avc/storefront-gateway/internal/handlers"
	"github.com/avc/storefront-gateway/internal/service"
	"github.com/avc/storefront-gateway/internal/utils/jwt"
	"github.com/avc/storefront-gateway/internal/worker"
	"go.uber.org/zap"
)

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	session  *handlers.SessionHandler
	cart     *handlers.CartHandler
	checkout *handlers.CheckoutHandler
	health   *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	registry   *checkout.Registry
	handlers   *handlerSet
	jwtManager *jwt.Manager
	workerPool *worker.Pool
}

// initDependencies создает все зависимости приложения
func initDependencies(cfg *config.Config, storage *draftStorage, logger *zap.Logger) *dependencies {
	// Реестр сессий оформления
	sessionConfig := checkout.SessionConfig{
		APIBaseURL:      cfg.APIBaseURL,
		UpstreamTimeout: cfg.UpstreamTimeout,
		RetryMax:        cfg.UpstreamRetryMax,
		Sync: service.SyncConfig{
			Debounce: cfg.SyncDebounce,
			Rates: service.Rates{
				Surcharge: domain.Rate(cfg.SurchargeRate),
				Tax:       domain.Rate(cfg.TaxRate),
			},
		},
	}
	registry := checkout.NewRegistry(sessionConfig, storage.kv, logger)

	// Создание утилит
	jwtManager := jwt.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	// Создание handlers
	hdlrs := &handlerSet{
		session:  handlers.NewSessionHandler(registry, logger),
		cart:     handlers.NewCartHandler(logger),
		checkout: handlers.NewCheckoutHandler(logger),
		health:   handlers.NewHealthHandler(storage.pinger, cfg.StorageBackend, registry, logger),
	}

	// Создание keeper worker pool
	workerPoolConfig := worker.PoolConfig{
		Workers:      cfg.KeeperWorkers,
		QueueSize:    cfg.KeeperQueueSize,
		ScanInterval: cfg.KeeperScanInterval,
		CheckTimeout: cfg.UpstreamTimeout + 5*time.Second,
		IdleTTL:      cfg.SessionIdleTTL,
		DraftMaxAge:  cfg.DraftMaxAge,
	}
	workerPool := worker.NewPool(workerPoolConfig, registry, storage.purger, logger)

	return &dependencies{
		registry:   registry,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		workerPool: workerPool,
	}
}
