// Package config содержит конфигурацию сервиса трекера упражнений.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// EnvConfigPath - переменная окружения с путем к необязательному файлу конфигурации.
const EnvConfigPath = "TRACKER_CONFIG_PATH"

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading tracker service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Calendar CalendarConfig `yaml:"calendar"`
	Redis    RedisConfig    `yaml:"redis"`
}

// Load загружает конфигурацию из файла (если задан TRACKER_CONFIG_PATH) и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(EnvConfigPath))
}

// LoadFrom загружает конфигурацию из файла path; пустой path означает только окружение.
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig, zap.String("path", path))

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("timezone", cfg.Calendar.Timezone),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()))

	return &cfg, nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
