// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"quicknote/internal/notepad/adapters/http/credentials"
	"quicknote/internal/notepad/adapters/http/middleware"
	"quicknote/internal/notepad/adapters/http/notes"
	"quicknote/internal/notepad/adapters/http/notion"
	"quicknote/internal/notepad/ports/services"
)

// Services - зависимости обработчиков.
type Services struct {
	Notes       services.NotesService
	Credentials services.CredentialService
	Proxy       services.ProxyService
	// Tokens включает проверку Bearer токена, если не nil.
	Tokens services.TokenService
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, svc Services) {
	notesHandler := notes.NewHandler(svc.Notes)
	credentialsHandler := credentials.NewHandler(svc.Credentials)
	notionHandler := notion.NewHandler(svc.Proxy)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Проверка доступности (публичная).
	apiV1.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if svc.Tokens != nil {
		apiV1.Use(middleware.NewAuthMiddleware(svc.Tokens))
	}

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/current", notesHandler.CurrentNote)
	notesRoutes.Put("/current", notesHandler.ChangeCurrent)
	notesRoutes.Delete("/current", notesHandler.DeleteCurrent)
	notesRoutes.Post("/next", notesHandler.SelectNext)
	notesRoutes.Post("/current/export", notesHandler.ExportCurrent)

	credentialRoutes := apiV1.Group("/credentials")
	credentialRoutes.Post("/", credentialsHandler.Store)
	credentialRoutes.Get("/", credentialsHandler.Get)
	credentialRoutes.Delete("/", credentialsHandler.Delete)

	apiV1.Post("/notion", notionHandler.Post)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
		})
	})
}
