package app

import (
	"context"
	"fmt"

	"github.com/avc/storefront-gateway/internal/config"
	"github.com/avc/storefront-gateway/internal/domain"
	"github.com/avc/storefront-gateway/internal/storage/dynamodb"
	"github.com/avc/storefront-gateway/internal/storage/memory"
	"github.com/avc/storefront-gateway/internal/storage/postgres"
	"github.com/avc/storefront-gateway/internal/storage/sqlite"
	"github.com/avc/storefront-gateway/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// draftStorage хранилище черновиков с его служебными возможностями
type draftStorage struct {
	kv     domain.KVStore
	pinger domain.Pinger
	purger worker.Purger // nil, если хранилище удаляет записи само
	close  func()
}

// initStorage открывает хранилище черновиков, выбранное в конфигурации
func initStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*draftStorage, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		return initPostgres(ctx, cfg.DatabaseURI, logger)

	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite draft storage", zap.String("path", cfg.SQLitePath))
		return &draftStorage{
			kv:     store,
			pinger: store,
			purger: store,
			close: func() {
				if err := store.Close(); err != nil {
					logger.Error("failed to close sqlite", zap.Error(err))
				}
			},
		}, nil

	case config.StorageDynamoDB:
		client, err := dynamodb.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		store := dynamodb.NewStore(client, cfg.DynamoTable, cfg.DraftMaxAge)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to reach dynamodb table: %w", err)
		}
		logger.Info("connected to dynamodb draft storage", zap.String("table", cfg.DynamoTable))
		// Устаревшие записи удаляет TTL таблицы
		return &draftStorage{kv: store, pinger: store, close: func() {}}, nil

	default:
		store := memory.New()
		logger.Warn("using in-memory draft storage, drafts are lost on restart")
		return &draftStorage{kv: store, pinger: store, close: func() {}}, nil
	}
}

// initPostgres создает пул соединений с базой данных и выполняет миграции
func initPostgres(ctx context.Context, databaseURI string, logger *zap.Logger) (*draftStorage, error) {
	dbPool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database")

	if err := postgres.RunMigrations(ctx, dbPool, logger); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations completed successfully")

	store := postgres.NewStore(dbPool)
	return &draftStorage{
		kv:     store,
		pinger: store,
		purger: store,
		close:  dbPool.Close,
	}, nil
}
