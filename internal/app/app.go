package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avc/storefront-gateway/internal/checkout"
	"github.com/avc/storefront-gateway/internal/config"
	"github.com/avc/storefront-gateway/internal/worker"
	"go.uber.org/zap"
)

// App представляет приложение
type App struct {
	config     *config.Config
	logger     *zap.Logger
	storage    *draftStorage
	registry   *checkout.Registry
	router     http.Handler
	workerPool *worker.Pool
	server     *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Инициализация хранилища черновиков
	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Инициализация зависимостей
	deps := initDependencies(cfg, storage, logger)

	// Настройка роутера
	router := setupRouter(deps, logger)

	// Создание HTTP сервера
	server := createServer(cfg.RunAddress, router)

	return &App{
		config:     cfg,
		logger:     logger,
		storage:    storage,
		registry:   deps.registry,
		router:     router,
		workerPool: deps.workerPool,
		server:     server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск keeper worker pool
	a.workerPool.Start(ctx)
	a.logger.Info("session keeper started",
		zap.String("storefront_api", a.config.APIBaseURL),
		zap.String("storage", a.config.StorageBackend),
	)

	// Запуск HTTP сервера и ожидание сигнала завершения
	err := a.runServer(ctx)

	// Graceful shutdown выполняется и при ошибке запуска
	a.shutdown(cancel)

	return err
}
