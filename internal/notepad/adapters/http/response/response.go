// Package response формирует JSON ответы локального API.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"quicknote/internal/notepad/app"
	"quicknote/internal/notepad/domain/entities"
)

// Тексты ошибок для клиента.
const (
	MsgInvalidRequestBody  = "invalid request body"
	MsgInvalidDatabaseID   = "Invalid database ID format"
	MsgUnconfigured        = "Notion is not configured"
	MsgInternalServerError = "Internal server error"
	MsgBlockLimitExceeded  = "block limit exceeded"
	MsgExportInFlight      = "export already in progress"
	MsgUnreachableDatabase = "Notion database is not reachable"
)

// Error отправляет {"success":false,"error":msg} со статусом status.
func Error(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}

// JSON отправляет body со статусом status.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// HandleError отображает ошибку бизнес-логики в HTTP ответ.
func HandleError(ctx fiber.Ctx, err error) error {
	var extErr *app.ExternalError

	switch {
	case errors.Is(err, app.ErrUnconfigured):
		return JSON(ctx, fiber.StatusUnauthorized, fiber.Map{
			"success":   false,
			"error":     MsgUnconfigured,
			"configure": true,
		})
	case errors.Is(err, entities.ErrInvalidCollectionID):
		return Error(ctx, fiber.StatusBadRequest, MsgInvalidDatabaseID)
	case errors.Is(err, app.ErrMissingField):
		return Error(ctx, fiber.StatusBadRequest, app.ErrMissingField.Error())
	case errors.Is(err, app.ErrMissingContent):
		return Error(ctx, fiber.StatusBadRequest, app.ErrMissingContent.Error())
	case errors.Is(err, app.ErrBlockLimitExceeded):
		return Error(ctx, fiber.StatusUnprocessableEntity, MsgBlockLimitExceeded)
	case errors.Is(err, app.ErrExportInFlight):
		return Error(ctx, fiber.StatusConflict, MsgExportInFlight)
	case errors.Is(err, app.ErrCollectionUnreachable):
		return Error(ctx, fiber.StatusBadGateway, MsgUnreachableDatabase)
	case errors.As(err, &extErr):
		return Error(ctx, fiber.StatusInternalServerError, extErr.Message)
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return Error(ctx, fiberErr.Code, fiberErr.Message)
		}
		return Error(ctx, fiber.StatusInternalServerError, MsgInternalServerError)
	}
}
