package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/external"
	"quicknote/pkg/logger"
)

// Параметры заголовка по умолчанию.
const (
	DefaultTitleMarker = "Quick note"
	titleSnippetRunes  = 100
	titleEllipsis      = "..."
)

// Константы для логирования.
const (
	LogExporting           = "exporting note"
	LogExported            = "note exported"
	LogPreflightFailed     = "notion database pre-flight check failed"
	LogExportFailed        = "failed to export note"
	LogInvalidCollectionID = "rejected malformed database id"
)

// ExportGateway проверяет учетные данные и создает документ во внешней базе.
type ExportGateway struct {
	client    external.DocumentClient
	preflight bool
	marker    string
}

// ExportOption настраивает ExportGateway.
type ExportOption func(*ExportGateway)

// WithPreflight включает проверку доступности базы перед созданием документа.
func WithPreflight(enabled bool) ExportOption {
	return func(g *ExportGateway) {
		g.preflight = enabled
	}
}

// WithTitleMarker задает префикс заголовка для заметок без заголовка.
func WithTitleMarker(marker string) ExportOption {
	return func(g *ExportGateway) {
		if marker != "" {
			g.marker = marker
		}
	}
}

// NewExportGateway создает ExportGateway.
func NewExportGateway(client external.DocumentClient, opts ...ExportOption) *ExportGateway {
	g := &ExportGateway{client: client, marker: DefaultTitleMarker}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Export отправляет заметку и возвращает идентификатор созданного документа.
// Повторов нет: одна попытка создания на вызов.
func (g *ExportGateway) Export(ctx context.Context, note entities.Note, cred *entities.Credential) (string, error) {
	if cred == nil || !cred.IsComplete() {
		return "", ErrUnconfigured
	}

	log := logger.Log(ctx).With(zap.String("database_id", cred.CollectionID))

	if err := entities.ValidateCollectionID(cred.CollectionID); err != nil {
		log.Warn(ctx, LogInvalidCollectionID)
		return "", err
	}

	if g.preflight {
		if err := g.client.CheckCollection(ctx, cred.APIKey, cred.CollectionID); err != nil {
			log.Warn(ctx, LogPreflightFailed, zap.Error(err))
			return "", fmt.Errorf("%w: %w", ErrCollectionUnreachable, err)
		}
	}

	doc := g.BuildDocument(note)
	log.Debug(ctx, LogExporting, zap.String("title", doc.Title), zap.Int("paragraphs", len(doc.Paragraphs)))

	id, err := g.client.CreateDocument(ctx, cred.APIKey, cred.CollectionID, doc)
	if err != nil {
		log.Error(ctx, LogExportFailed, zap.Error(err))
		return "", &ExternalError{Message: externalMessage(err), Err: err}
	}

	log.Info(ctx, LogExported, zap.String("document_id", id))
	return id, nil
}

// externalMessage возвращает сообщение сервиса, если он его прислал.
func externalMessage(err error) string {
	var svcErr *external.ServiceError
	if errors.As(err, &svcErr) && svcErr.Status != 0 && svcErr.Message != "" {
		return svcErr.Message
	}
	return ErrExternalFailure.Error()
}

// BuildDocument собирает документ: заголовок и по абзацу на каждую строку.
func (g *ExportGateway) BuildDocument(note entities.Note) external.Document {
	title := note.Title
	if strings.TrimSpace(title) == "" {
		title = FallbackTitle(g.marker, note.Content)
	}
	return external.Document{
		Title:      title,
		Paragraphs: entities.SplitParagraphs(note.Content),
	}
}

// FallbackTitle строит заголовок из начала текста с префиксом marker.
func FallbackTitle(marker, content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if flat == "" {
		return marker
	}

	runes := []rune(flat)
	if len(runes) > titleSnippetRunes {
		return marker + ": " + string(runes[:titleSnippetRunes]) + titleEllipsis
	}
	return marker + ": " + flat
}
