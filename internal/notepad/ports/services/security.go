// Package services определяет интерфейсы сервисов quicknote.
package services

import (
	"context"
	"errors"
	"time"
)

// Ошибки проверки токена.
var (
	ErrInvalidJWTToken = errors.New("invalid token")
	ErrExpiredJWTToken = errors.New("token expired")
)

// TokenService выпускает и проверяет токены доступа к локальному API.
type TokenService interface {
	IssueToken(subject string, ttl time.Duration) (string, error)

	ValidateAccessToken(ctx context.Context, tokenString string) (string, error)
}

// Sealer защищает значения, сохраняемые в хранилище.
type Sealer interface {
	Seal(plaintext string) (string, error)

	// Open возвращает исходное значение. Незапечатанные значения возвращаются как есть.
	Open(value string) (string, error)
}
