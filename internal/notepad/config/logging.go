package config

import "quicknote/pkg/logger"

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"QUICKNOTE_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"QUICKNOTE_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
