package storage

import (
	"context"
	"sync"

	"quicknote/internal/notepad/ports/storage"
)

// MemoryStore хранит блобы в памяти процесса.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore создает пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get получает значение по ключу.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

// Set сохраняет значение для ключа.
func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Delete удаляет значение по ключу.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Close ничего не делает.
func (s *MemoryStore) Close() error {
	return nil
}
