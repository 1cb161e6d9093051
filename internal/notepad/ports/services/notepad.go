package services

import (
	"context"

	"quicknote/internal/notepad/app/dto"
)

// NotesService определяет операции редактора над коллекцией заметок.
type NotesService interface {
	ListNotes(ctx context.Context) *dto.ListNotesResponse

	CurrentNote(ctx context.Context) *dto.CurrentNoteResponse

	CreateNote(ctx context.Context) (*dto.CurrentNoteResponse, error)

	SelectNext(ctx context.Context) (*dto.CurrentNoteResponse, error)

	// ChangeCurrent применяет правку текущей заметки через ограничитель блоков.
	ChangeCurrent(ctx context.Context, req *dto.ChangeNoteRequest) (*dto.CurrentNoteResponse, error)

	DeleteCurrent(ctx context.Context) (*dto.CurrentNoteResponse, error)

	// ExportCurrent отправляет текущую заметку и при необходимости удаляет ее после успеха.
	ExportCurrent(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error)
}

// CredentialService управляет учетными данными Notion.
type CredentialService interface {
	Configure(ctx context.Context, apiKey, collectionID string) error

	Clear(ctx context.Context) error

	// CollectionID возвращает идентификатор базы и признак наличия учетных данных.
	CollectionID() (string, bool)
}

// ProxyService отправляет произвольный текст в Notion с сохраненными учетными данными.
type ProxyService interface {
	Post(ctx context.Context, req *dto.PostRequest) (string, error)
}
