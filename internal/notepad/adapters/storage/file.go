package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"quicknote/internal/notepad/ports/storage"
	"quicknote/pkg/logger"
)

// Имя файла хранилища внутри каталога.
const storeFileName = "store.json"

// Константы для ошибок.
const (
	ErrCreateDirFailed = "failed to create storage directory"
	ErrReadFileFailed  = "failed to read storage file"
	ErrDecodeFailed    = "failed to decode storage file"
	ErrWriteFileFailed = "failed to write storage file"
)

// FileStore хранит все ключи одним JSON объектом в файле.
// Каждая запись заменяет файл атомарно.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создает каталог dir при необходимости.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateDirFailed, err)
	}
	return &FileStore{path: filepath.Join(dir, storeFileName)}, nil
}

// Path возвращает путь к файлу хранилища.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrReadFileFailed, err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDecodeFailed, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFileFailed, err)
	}
	if err := renameio.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFileFailed, err)
	}
	return nil
}

// Get получает значение по ключу.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrReadFileFailed, zap.String("key", key), zap.Error(err))
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

// Set сохраняет значение для ключа.
func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrReadFileFailed, zap.String("key", key), zap.Error(err))
		return err
	}

	values[key] = value
	if err := s.write(values); err != nil {
		logger.Log(ctx).Error(ctx, ErrWriteFileFailed, zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete удаляет значение по ключу.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	if err := s.write(values); err != nil {
		logger.Log(ctx).Error(ctx, ErrWriteFileFailed, zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Close ничего не делает.
func (s *FileStore) Close() error {
	return nil
}
