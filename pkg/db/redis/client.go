// Package redis предоставляет подключение к Redis с проверкой доступности.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quicknote/pkg/logger"
)

// Сообщения логгера.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
)

// Options содержит настройки подключения к Redis.
type Options struct {
	Addr            string
	Password        string
	DB              int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdle         int
	IdleTimeout     time.Duration
	MaxConnLifetime time.Duration
}

// Connect создает клиент Redis и проверяет соединение командой PING.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("addr", opts.Addr))
	log.Info(ctx, LogConnecting)

	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		DialTimeout:     opts.ConnectTimeout,
		ReadTimeout:     opts.ReadTimeout,
		WriteTimeout:    opts.WriteTimeout,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdle,
		ConnMaxIdleTime: opts.IdleTimeout,
		ConnMaxLifetime: opts.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info(ctx, LogConnected)
	return client, nil
}
