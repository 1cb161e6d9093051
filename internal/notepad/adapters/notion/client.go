// Package notion реализует клиент документной базы поверх Notion API.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"quicknote/internal/notepad/ports/external"
	"quicknote/internal/notepad/resilience"
	"quicknote/pkg/logger"
)

// Константы для логирования.
const (
	LogCheckingDatabase = "checking notion database"
	LogCreatingPage     = "creating notion page"
	LogPageCreated      = "notion page created"
	LogRequestFailed    = "notion request failed"

	operationCheck  = "database.get"
	operationCreate = "page.create"

	serviceName = "notion"

	// DefaultTitleProperty - идентификатор свойства заголовка, одинаковый для любой базы.
	DefaultTitleProperty = "title"

	// MaxTextLength - предел Notion на длину одного text-объекта в символах.
	MaxTextLength = 2000
)

// Client реализует external.DocumentClient.
type Client struct {
	httpClient    *http.Client
	guard         *resilience.Guard
	titleProperty string
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задает HTTP клиент для запросов.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithGuard задает ограничитель частоты и Circuit Breaker.
func WithGuard(g *resilience.Guard) Option {
	return func(c *Client) {
		c.guard = g
	}
}

// WithTitleProperty задает имя свойства заголовка в базе.
func WithTitleProperty(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.titleProperty = name
		}
	}
}

// NewClient создает клиент Notion.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:    http.DefaultClient,
		titleProperty: DefaultTitleProperty,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.guard == nil {
		c.guard = resilience.NewGuard(serviceName, 0, 1, BreakerConfig(0, 0))
	}
	return c
}

var _ external.DocumentClient = (*Client)(nil)

func (c *Client) api(apiKey string) *notionapi.Client {
	return notionapi.NewClient(notionapi.Token(apiKey), notionapi.WithHTTPClient(c.httpClient))
}

// CheckCollection проверяет, что база существует и доступна по ключу.
func (c *Client) CheckCollection(ctx context.Context, apiKey, collectionID string) error {
	log := logger.Log(ctx).With(zap.String("database_id", collectionID))
	log.Debug(ctx, LogCheckingDatabase)

	err := c.guard.Execute(ctx, operationCheck, func() error {
		_, err := c.api(apiKey).Database.Get(ctx, notionapi.DatabaseID(collectionID))
		return wrapError(err)
	})
	if err != nil {
		log.Warn(ctx, LogRequestFailed, zap.String("operation", operationCheck), zap.Error(err))
		return err
	}
	return nil
}

// CreateDocument создает страницу в базе и возвращает ее идентификатор.
func (c *Client) CreateDocument(ctx context.Context, apiKey, collectionID string, doc external.Document) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("database_id", collectionID),
		zap.Int("paragraphs", len(doc.Paragraphs)))
	log.Debug(ctx, LogCreatingPage)

	req := c.pageRequest(collectionID, doc)

	var pageID string
	err := c.guard.Execute(ctx, operationCreate, func() error {
		page, err := c.api(apiKey).Page.Create(ctx, req)
		if err != nil {
			return wrapError(err)
		}
		pageID = page.ID.String()
		return nil
	})
	if err != nil {
		log.Warn(ctx, LogRequestFailed, zap.String("operation", operationCreate), zap.Error(err))
		return "", err
	}

	log.Info(ctx, LogPageCreated, zap.String("page_id", pageID))
	return pageID, nil
}

func (c *Client) pageRequest(collectionID string, doc external.Document) *notionapi.PageCreateRequest {
	children := make([]notionapi.Block, 0, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		children = append(children, &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: richText(p),
			},
		})
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(collectionID),
		},
		Properties: notionapi.Properties{
			c.titleProperty: notionapi.TitleProperty{
				Title: richText(doc.Title),
			},
		},
		Children: children,
	}
}

// richText режет строку на отрезки не длиннее MaxTextLength символов.
// Для пустой строки возвращается пустой набор: Notion не принимает пустой текст.
func richText(content string) []notionapi.RichText {
	runes := []rune(content)
	out := make([]notionapi.RichText, 0, (len(runes)+MaxTextLength-1)/MaxTextLength)
	for start := 0; start < len(runes); start += MaxTextLength {
		end := min(start+MaxTextLength, len(runes))
		out = append(out, notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: string(runes[start:end])},
		})
	}
	return out
}

// wrapError приводит ошибки notionapi к external.ServiceError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return &external.ServiceError{
			Status:  apiErr.Status,
			Code:    string(apiErr.Code),
			Message: apiErr.Message,
			Err:     err,
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return &external.ServiceError{
		Message: fmt.Sprintf("transport error: %v", err),
		Err:     err,
	}
}

// IsServiceFailure сообщает, говорит ли ошибка о сбое самого сервиса,
// а не о неверном запросе.
func IsServiceFailure(err error) bool {
	var svcErr *external.ServiceError
	if !errors.As(err, &svcErr) {
		return false
	}
	return svcErr.Status == 0 ||
		svcErr.Status == http.StatusTooManyRequests ||
		svcErr.Status >= http.StatusInternalServerError
}

// BreakerConfig возвращает настройки Circuit Breaker для Notion.
func BreakerConfig(threshold int, cooldown time.Duration) resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig()
	if threshold > 0 {
		cfg.ErrorThreshold = threshold
	}
	if cooldown > 0 {
		cfg.Timeout = cooldown
	}
	cfg.IsFailure = IsServiceFailure
	return cfg
}
