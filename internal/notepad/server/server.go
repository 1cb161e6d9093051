// Package server собирает зависимости quicknote и управляет HTTP сервером.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpadapter "quicknote/internal/notepad/adapters/http"
	"quicknote/internal/notepad/adapters/notion"
	"quicknote/internal/notepad/adapters/services"
	"quicknote/internal/notepad/adapters/storage"
	"quicknote/internal/notepad/app"
	"quicknote/internal/notepad/config"
	"quicknote/internal/notepad/ports/external"
	ports "quicknote/internal/notepad/ports/storage"
	"quicknote/internal/notepad/resilience"
	"quicknote/pkg/logger"
)

// Константы для сообщений.
const (
	LogInitStorage    = "initializing storage"
	LogInitServices   = "initializing services"
	LogInitHTTPServer = "initializing HTTP server"
	LogStartingHTTP   = "starting HTTP server"
	LogStoppingHTTP   = "stopping HTTP server"
	LogClosingStorage = "closing storage"
	LogAPIGuard       = "API token guard enabled"

	ErrOpenStorage     = "failed to open storage"
	ErrLoadNotes       = "failed to load notes"
	ErrLoadCredentials = "failed to load credentials"
	ErrInitSealer      = "failed to initialize credential sealer"
)

// Server - собранное приложение.
type Server struct {
	cfg     *config.Config
	app     *fiber.App
	store   ports.BlobStore
	session *app.EditorSession
}

// Option настраивает сборку сервера.
type Option func(*options)

type options struct {
	store  ports.BlobStore
	client external.DocumentClient
}

// WithStore задает готовое хранилище вместо драйвера из конфигурации.
func WithStore(store ports.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithDocumentClient задает клиент документной базы вместо Notion.
func WithDocumentClient(client external.DocumentClient) Option {
	return func(o *options) {
		o.client = client
	}
}

// New собирает сервер по конфигурации.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	log := logger.Log(ctx)

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
	store := o.store
	if store == nil {
		var err error
		if store, err = storage.Open(ctx, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenStorage, err)
		}
	}

	srv, err := build(ctx, cfg, store, o.client)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return srv, nil
}

func build(ctx context.Context, cfg *config.Config, store ports.BlobStore, client external.DocumentClient) (*Server, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogInitServices)

	sealer, err := services.NewSealer(cfg.Security.CredentialKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitSealer, err)
	}

	notes, err := app.LoadNoteStore(ctx, store, cfg.Storage.NotesKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadNotes, err)
	}

	creds := app.NewCredentialStore(store, sealer)
	if err := creds.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadCredentials, err)
	}

	if client == nil {
		client = notion.NewClient(
			notion.WithHTTPClient(&http.Client{Timeout: cfg.Notion.Timeout}),
			notion.WithTitleProperty(cfg.Notion.TitleProperty),
			notion.WithGuard(resilience.NewGuard("notion", cfg.Notion.RateLimit, cfg.Notion.Burst,
				notion.BreakerConfig(cfg.Notion.BreakerThreshold, cfg.Notion.BreakerCooldown))),
		)
	}

	gateway := app.NewExportGateway(client,
		app.WithPreflight(cfg.Notion.Preflight),
		app.WithTitleMarker(cfg.Notion.TitleMarker))

	session := app.NewEditorSession(ctx, notes, creds, gateway,
		app.WithBlockLimit(cfg.Editor.BlockLimit),
		app.WithDebounce(cfg.Editor.Debounce))

	log.Info(ctx, LogInitHTTPServer)
	fiberApp := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})

	svc := httpadapter.Services{
		Notes:       session,
		Credentials: creds,
		Proxy:       app.NewNotionProxy(creds, gateway),
	}
	if cfg.Security.APISecret != "" {
		log.Info(ctx, LogAPIGuard)
		svc.Tokens = services.NewJWT(cfg.Security.APISecret)
	}
	httpadapter.SetupRouter(fiberApp, svc)

	return &Server{cfg: cfg, app: fiberApp, store: store, session: session}, nil
}

// App возвращает HTTP приложение.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen запускает HTTP сервер и блокируется до его остановки.
func (s *Server) Listen(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogStartingHTTP, zap.String("address", s.cfg.HTTP.GetAddress()))
	return s.app.Listen(s.cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown останавливает HTTP сервер, таймер редактора и закрывает хранилище.
func (s *Server) Shutdown(ctx context.Context) error {
	log := logger.Log(ctx)

	log.Info(ctx, LogStoppingHTTP)
	errHTTP := s.app.ShutdownWithContext(ctx)
	errSession := s.session.Close(ctx)

	log.Info(ctx, LogClosingStorage)
	errStore := s.store.Close()

	return errors.Join(errHTTP, errSession, errStore)
}
