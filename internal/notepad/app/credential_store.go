package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/services"
	"quicknote/internal/notepad/ports/storage"
	"quicknote/pkg/logger"
)

// Ключи учетных данных в хранилище.
const (
	KeyAPIKey       = "notion_api_key"
	KeyCollectionID = "notion_database_id"
)

// Константы для логирования.
const (
	LogCredentialsLoaded     = "notion credentials loaded"
	LogCredentialsConfigured = "notion credentials configured"
	LogCredentialsCleared    = "notion credentials cleared"
	LogCredentialUnreadable  = "stored notion API key cannot be opened, treating as unconfigured"
	ErrMsgLoadCredentials    = "failed to load credentials"
	ErrMsgStoreCredentials   = "failed to store credentials"
	ErrMsgClearCredentials   = "failed to clear credentials"
	ErrMsgRollbackCredential = "failed to restore previous API key"
)

// CredentialStore хранит учетные данные Notion в хранилище блобов.
// Создается один раз и внедряется во все места, где нужны учетные данные.
type CredentialStore struct {
	mu     sync.RWMutex
	store  storage.BlobStore
	sealer services.Sealer
	cred   entities.Credential
}

// NewCredentialStore создает хранилище учетных данных.
func NewCredentialStore(store storage.BlobStore, sealer services.Sealer) *CredentialStore {
	return &CredentialStore{store: store, sealer: sealer}
}

var _ services.CredentialService = (*CredentialStore)(nil)

// Load читает учетные данные из хранилища.
func (s *CredentialStore) Load(ctx context.Context) error {
	log := logger.Log(ctx)

	sealedKey, err := s.get(ctx, KeyAPIKey)
	if err != nil {
		log.Error(ctx, ErrMsgLoadCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrMsgLoadCredentials, ErrPersistence, err)
	}
	collectionID, err := s.get(ctx, KeyCollectionID)
	if err != nil {
		log.Error(ctx, ErrMsgLoadCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrMsgLoadCredentials, ErrPersistence, err)
	}

	apiKey, err := s.sealer.Open(sealedKey)
	if err != nil {
		log.Warn(ctx, LogCredentialUnreadable, zap.Error(err))
		apiKey = ""
	}

	s.mu.Lock()
	s.cred = entities.Credential{APIKey: apiKey, CollectionID: collectionID}
	s.mu.Unlock()

	log.Info(ctx, LogCredentialsLoaded, zap.Bool("configured", s.IsConfigured()))
	return nil
}

func (s *CredentialStore) get(ctx context.Context, key string) (string, error) {
	value, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return value, err
}

// Configure сохраняет оба значения. Формат ключа API не проверяется.
// Если вторая запись не удалась, первая откатывается.
func (s *CredentialStore) Configure(ctx context.Context, apiKey, collectionID string) error {
	apiKey = strings.TrimSpace(apiKey)
	collectionID = strings.TrimSpace(collectionID)
	if apiKey == "" || collectionID == "" {
		return ErrMissingField
	}

	log := logger.Log(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := s.sealer.Seal(apiKey)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStoreCredentials, err)
	}

	if err := s.store.Set(ctx, KeyAPIKey, sealed); err != nil {
		log.Error(ctx, ErrMsgStoreCredentials, zap.String("key", KeyAPIKey), zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrMsgStoreCredentials, ErrPersistence, err)
	}

	if err := s.store.Set(ctx, KeyCollectionID, collectionID); err != nil {
		log.Error(ctx, ErrMsgStoreCredentials, zap.String("key", KeyCollectionID), zap.Error(err))
		s.rollbackAPIKey(ctx)
		return fmt.Errorf("%s: %w: %w", ErrMsgStoreCredentials, ErrPersistence, err)
	}

	s.cred = entities.Credential{APIKey: apiKey, CollectionID: collectionID}
	log.Info(ctx, LogCredentialsConfigured)
	return nil
}

// rollbackAPIKey возвращает в хранилище прежний ключ API. Вызывается под s.mu.
func (s *CredentialStore) rollbackAPIKey(ctx context.Context) {
	var err error
	if s.cred.APIKey == "" {
		err = s.store.Delete(ctx, KeyAPIKey)
	} else {
		var sealed string
		if sealed, err = s.sealer.Seal(s.cred.APIKey); err == nil {
			err = s.store.Set(ctx, KeyAPIKey, sealed)
		}
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrMsgRollbackCredential, zap.Error(err))
	}
}

// Clear удаляет оба значения.
func (s *CredentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	errKey := s.store.Delete(ctx, KeyAPIKey)
	errID := s.store.Delete(ctx, KeyCollectionID)
	if err := errors.Join(errKey, errID); err != nil {
		logger.Log(ctx).Error(ctx, ErrMsgClearCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w: %w", ErrMsgClearCredentials, ErrPersistence, err)
	}

	s.cred = entities.Credential{}
	logger.Log(ctx).Info(ctx, LogCredentialsCleared)
	return nil
}

// IsConfigured сообщает, что оба значения заданы.
func (s *CredentialStore) IsConfigured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.IsComplete()
}

// Credential возвращает текущие учетные данные и признак их полноты.
func (s *CredentialStore) Credential() (entities.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.cred.IsComplete()
}

// CollectionID возвращает идентификатор базы, не раскрывая ключ API.
func (s *CredentialStore) CollectionID() (string, bool) {
	cred, ok := s.Credential()
	if !ok {
		return "", false
	}
	return cred.CollectionID, true
}
