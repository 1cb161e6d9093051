// Package app реализует бизнес-логику блокнота: коллекцию заметок,
// учетные данные, сессию редактора и экспорт в Notion.
package app

import "errors"

// Ошибки уровня бизнес-логики.
var (
	ErrPersistence           = errors.New("failed to persist state")
	ErrMissingField          = errors.New("API key and database ID are required")
	ErrMissingContent        = errors.New("note content is required")
	ErrUnconfigured          = errors.New("notion credentials are not configured")
	ErrCollectionUnreachable = errors.New("notion database is not reachable")
	ErrExternalFailure       = errors.New("failed to post to Notion")
	ErrBlockLimitExceeded    = errors.New("block limit exceeded")
	ErrExportInFlight        = errors.New("export of this note is already in progress")
)

// ExternalError - отказ внешнего сервиса при создании документа.
// Соответствует ErrExternalFailure через errors.Is.
type ExternalError struct {
	Message string
	Err     error
}

func (e *ExternalError) Error() string {
	return e.Message
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// Is сопоставляет ошибку с ErrExternalFailure.
func (e *ExternalError) Is(target error) bool {
	return target == ErrExternalFailure
}
