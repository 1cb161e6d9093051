// Package notes содержит HTTP-обработчики редактора заметок.
package notes

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/notepad/adapters/http/middleware"
	"quicknote/internal/notepad/adapters/http/response"
	"quicknote/internal/notepad/app"
	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/ports/services"
	"quicknote/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerListNotes     = "handling list notes request"
	LogHandlerCurrentNote   = "handling current note request"
	LogHandlerCreateNote    = "handling create note request"
	LogHandlerSelectNext    = "handling select next request"
	LogHandlerChangeCurrent = "handling change note request"
	LogHandlerDeleteCurrent = "handling delete note request"
	LogHandlerExportCurrent = "handling export note request"
)

// Handler обработчик HTTP-запросов редактора.
type Handler struct {
	notesService services.NotesService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService services.NotesService) *Handler {
	return &Handler{notesService: notesService}
}

// ListNotes возвращает все заметки и курсор.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).Debug(userCtx, LogHandlerListNotes)

	return response.JSON(ctx, fiber.StatusOK, h.notesService.ListNotes(userCtx))
}

// CurrentNote возвращает текущую заметку.
func (h *Handler) CurrentNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	logger.Log(userCtx).Debug(userCtx, LogHandlerCurrentNote)

	return response.JSON(ctx, fiber.StatusOK, h.notesService.CurrentNote(userCtx))
}

// CreateNote добавляет пустую заметку.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	resp, err := h.notesService.CreateNote(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to create note", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, resp)
}

// SelectNext переключает на следующую заметку.
func (h *Handler) SelectNext(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.SelectNext"))
	log.Debug(userCtx, LogHandlerSelectNext)

	resp, err := h.notesService.SelectNext(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to select next note", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, resp)
}

// ChangeCurrent применяет правку текущей заметки.
func (h *Handler) ChangeCurrent(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ChangeCurrent"))
	log.Debug(userCtx, LogHandlerChangeCurrent)

	var req dto.ChangeNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(userCtx, response.MsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}
	if req.Content == nil {
		return response.HandleError(ctx, app.ErrMissingContent)
	}

	resp, err := h.notesService.ChangeCurrent(userCtx, &req)
	if errors.Is(err, app.ErrBlockLimitExceeded) {
		return response.JSON(ctx, fiber.StatusUnprocessableEntity, fiber.Map{
			"success": false,
			"error":   response.MsgBlockLimitExceeded,
			"current": resp,
		})
	}
	if err != nil {
		log.Error(userCtx, "failed to change note", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, resp)
}

// DeleteCurrent удаляет текущую заметку.
func (h *Handler) DeleteCurrent(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteCurrent"))
	log.Debug(userCtx, LogHandlerDeleteCurrent)

	resp, err := h.notesService.DeleteCurrent(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to delete note", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, resp)
}

// ExportCurrent отправляет текущую заметку в Notion.
func (h *Handler) ExportCurrent(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ExportCurrent"))
	log.Debug(userCtx, LogHandlerExportCurrent)

	var req dto.ExportRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().Body(&req); err != nil {
			log.Warn(userCtx, response.MsgInvalidRequestBody, zap.Error(err))
			return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
		}
	}

	resp, err := h.notesService.ExportCurrent(userCtx, &req)
	if err != nil {
		log.Warn(userCtx, "failed to export note", zap.Error(err))
		return response.HandleError(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, resp)
}
