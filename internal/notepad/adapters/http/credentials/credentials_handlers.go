// Package credentials содержит HTTP-обработчики учетных данных Notion.
package credentials

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/notepad/adapters/http/middleware"
	"quicknote/internal/notepad/adapters/http/response"
	"quicknote/internal/notepad/app"
	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/services"
	"quicknote/pkg/logger"
)

// Константы сообщений.
const (
	LogHandlerStore  = "handling store credentials request"
	LogHandlerGet    = "handling get credentials request"
	LogHandlerDelete = "handling delete credentials request"

	MsgNoCredentials = "No credentials found"
)

// Handler обработчик HTTP-запросов учетных данных.
type Handler struct {
	credentialService services.CredentialService
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(credentialService services.CredentialService) *Handler {
	return &Handler{credentialService: credentialService}
}

// Store сохраняет ключ API и идентификатор базы.
func (h *Handler) Store(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Store"))
	log.Debug(userCtx, LogHandlerStore)

	var req dto.CredentialsRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(userCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	if req.APIKey == "" || req.DatabaseID == "" {
		return response.HandleError(ctx, app.ErrMissingField)
	}
	if err := entities.ValidateCollectionID(req.DatabaseID); err != nil {
		return response.HandleError(ctx, err)
	}

	if err := h.credentialService.Configure(userCtx, req.APIKey, req.DatabaseID); err != nil {
		log.Error(userCtx, "failed to store credentials", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, fiber.Map{"success": true})
}

// Get сообщает идентификатор базы. Ключ API не возвращается.
func (h *Handler) Get(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).Debug(userCtx, LogHandlerGet)

	databaseID, ok := h.credentialService.CollectionID()
	if !ok {
		return response.Error(ctx, fiber.StatusNotFound, MsgNoCredentials)
	}

	return response.JSON(ctx, fiber.StatusOK, fiber.Map{
		"success":    true,
		"databaseId": databaseID,
	})
}

// Delete удаляет учетные данные.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Delete"))
	log.Debug(userCtx, LogHandlerDelete)

	if err := h.credentialService.Clear(userCtx); err != nil {
		log.Error(userCtx, "failed to clear credentials", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, fiber.Map{"success": true})
}
