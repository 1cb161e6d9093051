// Package notion содержит HTTP-обработчик прямой отправки текста в Notion.
package notion

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/notepad/adapters/http/middleware"
	"quicknote/internal/notepad/adapters/http/response"
	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/ports/services"
	"quicknote/pkg/logger"
)

// LogHandlerPost - сообщение о начале обработки.
const LogHandlerPost = "handling notion post request"

// Handler обработчик прямой отправки.
type Handler struct {
	proxyService services.ProxyService
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(proxyService services.ProxyService) *Handler {
	return &Handler{proxyService: proxyService}
}

// Post создает страницу из {content, title?}.
func (h *Handler) Post(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Post"))
	log.Debug(userCtx, LogHandlerPost)

	var req dto.PostRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(userCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	id, err := h.proxyService.Post(userCtx, &req)
	if err != nil {
		log.Error(userCtx, "Error posting to Notion", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, fiber.Map{
		"success": true,
		"data":    id,
	})
}
