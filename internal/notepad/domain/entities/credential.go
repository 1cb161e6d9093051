package entities

import (
	"errors"
	"regexp"
)

// ErrInvalidCollectionID возвращается для идентификатора базы не из 32 hex-символов.
var ErrInvalidCollectionID = errors.New("invalid database ID format")

var collectionIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Credential - ключ API и идентификатор целевой базы внешнего сервиса.
type Credential struct {
	APIKey       string
	CollectionID string
}

// IsComplete сообщает, что оба значения заданы.
func (c Credential) IsComplete() bool {
	return c.APIKey != "" && c.CollectionID != ""
}

// ValidateCollectionID проверяет формат идентификатора базы.
func ValidateCollectionID(id string) error {
	if !collectionIDPattern.MatchString(id) {
		return ErrInvalidCollectionID
	}
	return nil
}
