// Package storage содержит реализации хранилища блобов.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quicknote/internal/notepad/ports/storage"
	"quicknote/pkg/logger"
)

// ErrCloseRedisFailed - ошибка закрытия клиента Redis.
const ErrCloseRedisFailed = "failed to close redis client"

// RedisStore хранит блобы строками под общим префиксом, без срока жизни.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ storage.BlobStore = (*RedisStore)(nil)

// NewRedisStore создает хранилище поверх подключенного клиента.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) fail(ctx context.Context, msg, key string, err error) error {
	logger.Log(ctx).Error(ctx, msg,
		zap.String("backend", "redis"),
		zap.String("key", s.prefix+key),
		zap.Error(err))
	return fmt.Errorf("%s %q: %w", msg, key, err)
}

// Get читает значение. Отсутствующий ключ дает storage.ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", storage.ErrNotFound
	case err != nil:
		return "", s.fail(ctx, ErrGetBlobFailed, key, err)
	}
	return value, nil
}

// Set заменяет значение целиком одной командой SET.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return s.fail(ctx, ErrSetBlobFailed, key, err)
	}
	return nil
}

// Delete удаляет ключ. Отсутствие ключа ошибкой не считается.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return s.fail(ctx, ErrDeleteBlobFailed, key, err)
	}
	return nil
}

// Close закрывает клиент.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrCloseRedisFailed, err)
	}
	return nil
}
