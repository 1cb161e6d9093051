// Package dto содержит объекты запросов и ответов локального API.
package dto

// Note представляет заметку.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BlockState описывает заполненность текущей заметки.
type BlockState struct {
	Committed int  `json:"committed"`
	Live      int  `json:"live"`
	Limit     int  `json:"limit"`
	Warn      bool `json:"warn"`
	Blocked   bool `json:"blocked"`
}

// ListNotesResponse содержит все заметки и позицию курсора.
type ListNotesResponse struct {
	Notes  []Note `json:"notes"`
	Cursor int    `json:"cursor"`
}

// CurrentNoteResponse содержит текущую заметку.
type CurrentNoteResponse struct {
	Note   Note       `json:"note"`
	Cursor int        `json:"cursor"`
	Count  int        `json:"count"`
	Blocks BlockState `json:"blocks"`
}

// ChangeNoteRequest содержит правку текущей заметки.
// Content обязателен, Title меняется только если передан.
type ChangeNoteRequest struct {
	Content *string `json:"content"`
	Title   *string `json:"title"`
}

// ExportRequest задает режим экспорта текущей заметки.
type ExportRequest struct {
	Delete bool `json:"delete"`
}

// ExportResponse содержит результат экспорта.
type ExportResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
	Deleted bool   `json:"deleted"`
}

// PostRequest содержит текст для прямой отправки в Notion.
type PostRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

// CredentialsRequest содержит учетные данные Notion.
type CredentialsRequest struct {
	APIKey     string `json:"apiKey"`
	DatabaseID string `json:"databaseId"`
}
