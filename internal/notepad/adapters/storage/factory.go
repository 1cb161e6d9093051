package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quicknote/internal/notepad/config"
	"quicknote/internal/notepad/ports/storage"
	"quicknote/pkg/db/postgres"
	"quicknote/pkg/db/redis"
	"quicknote/pkg/logger"
)

// Константы для логирования.
const (
	LogOpeningStore    = "opening blob store"
	ErrUnknownDriver   = "unknown storage driver"
	ErrOpenStoreFailed = "failed to open blob store"
)

// Open создает хранилище по драйверу из конфигурации.
func Open(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	logger.Log(ctx).Info(ctx, LogOpeningStore, zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil

	case config.DriverFile:
		store, err := NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenStoreFailed, err)
		}
		return store, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, cfg.Redis.Options())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenStoreFailed, err)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil

	case config.DriverPostgres:
		if cfg.Postgres.AutoMigrate {
			if err := postgres.MigrateDSN(ctx, cfg.Postgres.DSN, cfg.Postgres.MigrationsPath); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrOpenStoreFailed, err)
			}
		}
		db, err := postgres.New(ctx, cfg.Postgres.PoolConfig())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenStoreFailed, err)
		}
		return NewPostgresStore(db.Pool(), func() { db.Close(ctx) }), nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
}
