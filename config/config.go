package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageBackendFile = "file"
	StorageBackendR2   = "r2"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int    `env:"SERVER_PORT" envDefault:"3000"`
	DataDir    string `env:"DATA_DIR" envDefault:"data"`

	StorageBackend    string `env:"STORAGE_BACKEND" envDefault:"file"`
	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2KeyPrefix       string `env:"R2_KEY_PREFIX" envDefault:"tournaments/"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	ReportTimezone     string   `env:"REPORT_TIMEZONE" envDefault:"UTC"`
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageBackendFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return errors.New("DATA_DIR must not be empty for the file storage backend")
		}
	case StorageBackendR2:
		if c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2BucketName == "" {
			return errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required for the r2 storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageBackendFile, StorageBackendR2, c.StorageBackend)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Location - часовой пояс для HTML-отчёта.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.ReportTimezone, err)
	}
	return loc, nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
