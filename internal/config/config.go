package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	RenderBlocks  = "blocks"
	RenderBraille = "braille"
)

// Config holds all configuration for the vizpro client.
type Config struct {
	// Backend
	APIURL        string `yaml:"api_url"`
	CSRFCookie    string `yaml:"csrf_cookie"`
	CSRFHeader    string `yaml:"csrf_header"`
	HTTPTimeoutMS int    `yaml:"http_timeout_ms"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// Export
	DownloadDir string `yaml:"download_dir"`

	// Terminal geometry: screen pixels covered by one cell.
	CellWidthPx  int `yaml:"cell_width_px"`
	CellHeightPx int `yaml:"cell_height_px"`
	// WheelDelta is the deltaY reported for one wheel notch.
	WheelDelta float64 `yaml:"wheel_delta"`

	// Presentation
	RenderMode  string   `yaml:"render_mode"`
	Holographic bool     `yaml:"holographic"`
	Palette     []string `yaml:"palette"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:        "http://localhost:8000/api",
		CSRFCookie:    "csrftoken",
		CSRFHeader:    "X-CSRFToken",
		HTTPTimeoutMS: 30000,
		LogLevel:      "info",
		LogFile:       "logs/vizpro.log",
		DownloadDir:   ".",
		CellWidthPx:   8,
		CellHeightPx:  16,
		WheelDelta:    100,
		RenderMode:    RenderBlocks,
	}
}

// Load reads defaults, then the optional YAML file at path, then a .env file,
// then VIZPRO_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg.APIURL = getEnvOrDefault("VIZPRO_API_URL", cfg.APIURL)
	cfg.CSRFCookie = getEnvOrDefault("VIZPRO_CSRF_COOKIE", cfg.CSRFCookie)
	cfg.CSRFHeader = getEnvOrDefault("VIZPRO_CSRF_HEADER", cfg.CSRFHeader)
	cfg.HTTPTimeoutMS = getEnvIntOrDefault("VIZPRO_HTTP_TIMEOUT_MS", cfg.HTTPTimeoutMS)
	cfg.LogLevel = strings.ToLower(getEnvOrDefault("VIZPRO_LOG_LEVEL", cfg.LogLevel))
	cfg.LogFile = getEnvOrDefault("VIZPRO_LOG_FILE", cfg.LogFile)
	cfg.DownloadDir = getEnvOrDefault("VIZPRO_DOWNLOAD_DIR", cfg.DownloadDir)
	cfg.CellWidthPx = getEnvIntOrDefault("VIZPRO_CELL_WIDTH_PX", cfg.CellWidthPx)
	cfg.CellHeightPx = getEnvIntOrDefault("VIZPRO_CELL_HEIGHT_PX", cfg.CellHeightPx)
	cfg.WheelDelta = getEnvFloatOrDefault("VIZPRO_WHEEL_DELTA", cfg.WheelDelta)
	cfg.RenderMode = strings.ToLower(getEnvOrDefault("VIZPRO_RENDER_MODE", cfg.RenderMode))
	cfg.Holographic = getEnvBoolOrDefault("VIZPRO_HOLOGRAPHIC", cfg.Holographic)

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize clamps numeric settings and rejects unknown enums.
func (c *Config) Normalize() error {
	if c.HTTPTimeoutMS < 1000 {
		c.HTTPTimeoutMS = 1000
	}
	if c.CellWidthPx < 1 {
		c.CellWidthPx = 1
	}
	if c.CellHeightPx < 2 {
		c.CellHeightPx = 2
	}
	if c.WheelDelta <= 0 {
		c.WheelDelta = 100
	}
	switch c.RenderMode {
	case RenderBlocks, RenderBraille:
	case "":
		c.RenderMode = RenderBlocks
	default:
		return fmt.Errorf("config: unknown render mode %q", c.RenderMode)
	}
	return nil
}

// HTTPTimeout returns the backend request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloatOrDefault(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
