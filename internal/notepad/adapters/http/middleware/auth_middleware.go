package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quicknote/internal/notepad/ports/services"
	"quicknote/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware проверяет Bearer токен локального API.
func NewAuthMiddleware(tokens services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(ctx, ErrorNoAuthHeader)
		}

		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(ctx, ErrorInvalidTokenFormat)
		}

		if _, err := tokens.ValidateAccessToken(requestCtx, token); err != nil {
			return unauthorized(ctx, ErrorInvalidToken)
		}

		return ctx.Next()
	}
}

func unauthorized(ctx fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
