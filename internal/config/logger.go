package config

import (
	"notehive/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTEHIVE_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTEHIVE_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment преобразует строку режима в logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
