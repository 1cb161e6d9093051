package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"quicknote/internal/notepad/ports/storage"
	"quicknote/pkg/logger"
)

// Константы для ошибок и логирования.
const (
	ErrGetBlobFailed    = "failed to get blob"
	ErrSetBlobFailed    = "failed to set blob"
	ErrDeleteBlobFailed = "failed to delete blob"

	LogGetBlob    = "getting blob"
	LogSetBlob    = "setting blob"
	LogDeleteBlob = "deleting blob"
)

// SQL запросы.
const (
	querySelectBlob = `SELECT value FROM blobs WHERE key = $1`
	queryUpsertBlob = `INSERT INTO blobs (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	queryDeleteBlob = `DELETE FROM blobs WHERE key = $1`
)

// Querier - подмножество pgxpool.Pool, достаточное для хранилища.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore хранит блобы в таблице blobs.
type PostgresStore struct {
	db      Querier
	closeFn func()
}

// NewPostgresStore создает хранилище. closeFn вызывается в Close и может быть nil.
func NewPostgresStore(db Querier, closeFn func()) *PostgresStore {
	return &PostgresStore{db: db, closeFn: closeFn}
}

// Get получает значение по ключу.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx).With(zap.String("key", key))
	log.Debug(ctx, LogGetBlob)

	var value string
	if err := s.db.QueryRow(ctx, querySelectBlob, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		log.Error(ctx, ErrGetBlobFailed, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrGetBlobFailed, err)
	}

	return value, nil
}

// Set вставляет или заменяет значение одной командой.
func (s *PostgresStore) Set(ctx context.Context, key string, value string) error {
	log := logger.Log(ctx).With(zap.String("key", key))
	log.Debug(ctx, LogSetBlob)

	if _, err := s.db.Exec(ctx, queryUpsertBlob, key, value); err != nil {
		log.Error(ctx, ErrSetBlobFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSetBlobFailed, err)
	}

	return nil
}

// Delete удаляет значение по ключу. Отсутствие строки ошибкой не считается.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("key", key))
	log.Debug(ctx, LogDeleteBlob)

	if _, err := s.db.Exec(ctx, queryDeleteBlob, key); err != nil {
		log.Error(ctx, ErrDeleteBlobFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteBlobFailed, err)
	}

	return nil
}

// Close освобождает пул соединений.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
