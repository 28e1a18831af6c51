package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Поддерживаемые хранилища черновиков
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageDynamoDB = "dynamodb"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress string // Адрес и порт запуска сервиса
	APIBaseURL string // Базовый адрес storefront API
	LogLevel   string // Уровень логирования

	// Хранилище черновиков
	StorageBackend string
	DatabaseURI    string // URI подключения к Postgres
	SQLitePath     string
	DynamoTable    string
	DynamoEndpoint string // Переопределение адреса DynamoDB (локальный эмулятор)
	AWSRegion      string
	DraftMaxAge    time.Duration // Черновики старше удаляются

	// Браузерная сессия
	SessionSecret  string        // Секретный ключ подписи cookie
	SessionTTL     time.Duration // Время жизни cookie
	SessionIdleTTL time.Duration // Простаивающие сессии вытесняются из памяти

	// Оформление заказа
	SyncDebounce  time.Duration
	SurchargeRate float64
	TaxRate       float64

	// Storefront API
	UpstreamTimeout  time.Duration
	UpstreamRetryMax int

	// Keeper конфигурация
	KeeperWorkers      int           // Количество воркеров
	KeeperQueueSize    int           // Размер очереди сессий
	KeeperScanInterval time.Duration // Интервал повторной проверки сессий
}

// Load загружает конфигурацию из переменных окружения и флагов командной строки
func Load() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse загружает конфигурацию из переданных аргументов и переменных окружения.
// Приоритет: env переменные > флаги > дефолтные значения
func Parse(args []string) (*Config, error) {
	cfg := &Config{
		LogLevel:           "info",
		StorageBackend:     StorageMemory,
		SQLitePath:         "checkout.db",
		DynamoTable:        "checkout_drafts",
		AWSRegion:          "us-east-1",
		DraftMaxAge:        72 * time.Hour,
		SessionTTL:         24 * time.Hour,
		SessionIdleTTL:     30 * time.Minute,
		SyncDebounce:       750 * time.Millisecond,
		SurchargeRate:      0.035,
		TaxRate:            0.08125,
		UpstreamTimeout:    10 * time.Second,
		UpstreamRetryMax:   2,
		KeeperWorkers:      2,
		KeeperQueueSize:    100,
		KeeperScanInterval: 4 * time.Minute,
	}

	// Определяем флаги
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.APIBaseURL, "u", "", "storefront API base URL")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "draft storage backend: memory, postgres, sqlite, dynamodb")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "sqlite database file")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Переменные окружения имеют приоритет над флагами
	lookupString("RUN_ADDRESS", &cfg.RunAddress)
	lookupString("API_URL", &cfg.APIBaseURL)
	lookupString("STORAGE_BACKEND", &cfg.StorageBackend)
	lookupString("DATABASE_URI", &cfg.DatabaseURI)
	lookupString("SQLITE_PATH", &cfg.SQLitePath)
	lookupString("DYNAMO_TABLE", &cfg.DynamoTable)
	lookupString("DYNAMO_ENDPOINT", &cfg.DynamoEndpoint)
	lookupString("AWS_REGION", &cfg.AWSRegion)
	lookupString("LOG_LEVEL", &cfg.LogLevel)

	// Секрет cookie (только из env, не из флагов для безопасности)
	if envSecret, ok := os.LookupEnv("SESSION_SECRET"); ok && envSecret != "" {
		cfg.SessionSecret = envSecret
	} else {
		cfg.SessionSecret = "default-secret-key-change-in-production"
	}

	lookupDuration("SESSION_TTL", &cfg.SessionTTL)
	lookupDuration("SESSION_IDLE_TTL", &cfg.SessionIdleTTL)
	lookupDuration("DRAFT_MAX_AGE", &cfg.DraftMaxAge)
	lookupDuration("SYNC_DEBOUNCE", &cfg.SyncDebounce)
	lookupDuration("UPSTREAM_TIMEOUT", &cfg.UpstreamTimeout)
	lookupDuration("KEEPER_SCAN_INTERVAL", &cfg.KeeperScanInterval)

	lookupRate("SURCHARGE_RATE", &cfg.SurchargeRate)
	lookupRate("TAX_RATE", &cfg.TaxRate)

	// Ноль повторов допустим
	if envRetry, ok := os.LookupEnv("UPSTREAM_RETRY_MAX"); ok {
		if n, err := strconv.Atoi(envRetry); err == nil && n >= 0 {
			cfg.UpstreamRetryMax = n
		}
	}

	lookupPositiveInt("KEEPER_WORKERS", &cfg.KeeperWorkers)
	lookupPositiveInt("KEEPER_QUEUE_SIZE", &cfg.KeeperQueueSize)

	// Валидация обязательных параметров
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("storefront API URL is required (use -u flag or API_URL env)")
	}

	switch cfg.StorageBackend {
	case StorageMemory, StorageSQLite, StorageDynamoDB:
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI is required for postgres storage (use -d flag or DATABASE_URI env)")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
		}
	}
}

func lookupPositiveInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func lookupRate(key string, dst *float64) {
	if v, ok := os.LookupEnv(key); ok {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 && r < 1 {
			*dst = r
		}
	}
}
