package logger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки пакета logger.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

var (
	global   atomic.Pointer[Logger]
	fallback = newFallback()
)

// newFallback строит logger, который пишет только предупреждения и ошибки.
// Он используется, пока глобальный logger не задан.
func newFallback() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return &Logger{l: zl.With(zap.String("logger", "fallback"))}
}

// NewContext кладет logger в контекст.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext извлекает logger из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context: %w", ErrLoggerNotFound)
	}
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger, nil
	}
	return nil, ErrLoggerNotFound
}

// InitGlobalLogger создает глобальный logger, если он еще не задан.
func InitGlobalLogger(env Environment, level string) error {
	if global.Load() != nil {
		return nil
	}

	logger, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	global.CompareAndSwap(nil, logger)
	return nil
}

// SetGlobalLogger заменяет глобальный logger. nil сбрасывает его.
func SetGlobalLogger(logger *Logger) {
	global.Store(logger)
}

// Log возвращает logger из контекста, глобальный или резервный, в этом порядке.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
			return logger
		}
	}
	if logger := global.Load(); logger != nil {
		return logger
	}
	return fallback
}
