// Package external определяет интерфейс клиента внешней документной базы.
package external

import (
	"context"
	"fmt"
)

// Document - содержимое создаваемой страницы.
type Document struct {
	Title      string
	Paragraphs []string
}

// DocumentClient создает документы во внешней базе от имени владельца ключа.
type DocumentClient interface {
	// CheckCollection проверяет, что база существует и доступна по ключу.
	CheckCollection(ctx context.Context, apiKey, collectionID string) error

	// CreateDocument создает документ и возвращает его идентификатор.
	CreateDocument(ctx context.Context, apiKey, collectionID string, doc Document) (string, error)
}

// ServiceError - ошибка, о которой сообщил внешний сервис.
type ServiceError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("external service error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("external service error %d: %s", e.Status, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
