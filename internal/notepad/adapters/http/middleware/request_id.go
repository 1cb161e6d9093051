// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"quicknote/pkg/logger"
)

// Ключи и заголовки запроса.
const (
	HeaderRequestID = "X-Request-ID"
	localsContext   = "userContext"
)

// NewRequestIDMiddleware присваивает запросу идентификатор и кладет его в контекст логгера.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(localsContext, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(localsContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}
