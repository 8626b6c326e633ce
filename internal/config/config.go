package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	OCR     OCRConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	MaxUploadMB    int
	StaticDir      string
	MetricsEnabled bool
}

type OCRConfig struct {
	Enabled    bool
	Engine     string // tesseract | gosseract
	Rasterizer string // pdftoppm | fitz
	Language   string
	DPI        int
}

type LoggingConfig struct {
	Level  string
	Format string // text | json
}

// Load reads configuration from environment variables. Values from a .env
// file in the working directory are used when the variable is not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("HOST", ""),
			Port:           getEnvAsInt("PORT", 5000),
			MaxUploadMB:    getEnvAsInt("MAX_UPLOAD_MB", 32),
			StaticDir:      getEnv("STATIC_DIR", ""),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
		OCR: OCRConfig{
			Enabled:    getEnvAsBool("OCR_ENABLED", true),
			Engine:     strings.ToLower(getEnv("OCR_ENGINE", "tesseract")),
			Rasterizer: strings.ToLower(getEnv("RASTERIZER", "pdftoppm")),
			Language:   getEnv("OCR_LANGUAGE", "eng"),
			DPI:        getEnvAsInt("OCR_DPI", 300),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that numeric settings are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.OCR.DPI <= 0 {
		return fmt.Errorf("OCR_DPI must be positive, got %d", c.OCR.DPI)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BodyLimit returns the maximum request body size in bytes.
func (s ServerConfig) BodyLimit() int {
	return s.MaxUploadMB << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
