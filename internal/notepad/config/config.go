// Package config содержит конфигурацию сервиса quicknote.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "quicknote/pkg/config"
	"quicknote/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "quicknote"

// Сообщения логгера.
const (
	LogConfigLoaded     = "quicknote configuration"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Notion   NotionConfig   `yaml:"notion"`
	Editor   EditorConfig   `yaml:"editor"`
	Security SecurityConfig `yaml:"security"`
}

// Load загружает конфигурацию из файла path (если задан) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("notion_preflight", cfg.Notion.Preflight),
		zap.Int("editor_block_limit", cfg.Editor.BlockLimit),
		zap.Duration("editor_debounce", cfg.Editor.Debounce),
		zap.Bool("api_guard_enabled", cfg.Security.APISecret != ""))

	return cfg, nil
}
