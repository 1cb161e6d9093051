// Package storage определяет интерфейс хранилища блобов по строковому ключу.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда по ключу ничего не сохранено.
var ErrNotFound = errors.New("blob not found")

// BlobStore - синхронное хранилище строк по ключу без транзакций.
// Set заменяет значение целиком: после ошибки записи прежнее значение остается нетронутым.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string) error

	Delete(ctx context.Context, key string) error

	Close() error
}
