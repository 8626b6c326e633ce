package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"HOST", "PORT", "MAX_UPLOAD_MB", "STATIC_DIR", "METRICS_ENABLED",
		"OCR_ENABLED", "OCR_ENGINE", "RASTERIZER", "OCR_LANGUAGE", "OCR_DPI", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, 32<<20, cfg.Server.BodyLimit())
	assert.True(t, cfg.Server.MetricsEnabled)
	assert.True(t, cfg.OCR.Enabled)
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, "pdftoppm", cfg.OCR.Rasterizer)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8080")
	t.Setenv("OCR_ENGINE", "Gosseract")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, "gosseract", cfg.OCR.Engine)
	assert.False(t, cfg.Server.MetricsEnabled)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OCR_LANGUAGE=hin\n"), 0o600))
	chdir(t, dir)
	// t.Setenv restores the original value; unset so godotenv can fill it.
	t.Setenv("OCR_LANGUAGE", "")
	require.NoError(t, os.Unsetenv("OCR_LANGUAGE"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hin", cfg.OCR.Language)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero upload size", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"negative dpi", func(c *Config) { c.OCR.DPI = -1 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:  ServerConfig{Port: 5000, MaxUploadMB: 32},
				OCR:     OCRConfig{DPI: 300},
				Logging: LoggingConfig{Format: "text"},
			}
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
