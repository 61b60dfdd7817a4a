package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VIZPRO_API_URL", "VIZPRO_CSRF_COOKIE", "VIZPRO_CSRF_HEADER",
		"VIZPRO_HTTP_TIMEOUT_MS", "VIZPRO_LOG_LEVEL", "VIZPRO_LOG_FILE",
		"VIZPRO_DOWNLOAD_DIR", "VIZPRO_CELL_WIDTH_PX", "VIZPRO_CELL_HEIGHT_PX",
		"VIZPRO_WHEEL_DELTA", "VIZPRO_RENDER_MODE", "VIZPRO_HOLOGRAPHIC",
	} {
		t.Setenv(k, "")
	}
	// Keep godotenv away from any .env next to the package.
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.APIURL != "http://localhost:8000/api" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Fatalf("HTTPTimeout() = %v", cfg.HTTPTimeout())
	}
	if cfg.RenderMode != RenderBlocks || cfg.WheelDelta != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "vizpro.yaml")
	yml := "api_url: http://yaml:9000/api\nrender_mode: braille\npalette:\n  - \"#111111\"\n  - \"#222222\"\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VIZPRO_API_URL", "http://env:8080/api")
	t.Setenv("VIZPRO_HOLOGRAPHIC", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.APIURL != "http://env:8080/api" {
		t.Fatalf("APIURL = %q; env should win over yaml", cfg.APIURL)
	}
	if cfg.RenderMode != RenderBraille {
		t.Fatalf("RenderMode = %q; want braille from yaml", cfg.RenderMode)
	}
	if !cfg.Holographic {
		t.Fatal("Holographic = false; want true from env")
	}
	if !slices.Equal(cfg.Palette, []string{"#111111", "#222222"}) {
		t.Fatalf("Palette = %v", cfg.Palette)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("VIZPRO_LOG_LEVEL")
	if err := os.WriteFile(".env", []byte("VIZPRO_LOG_LEVEL=DEBUG\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("VIZPRO_LOG_LEVEL") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q; want debug", cfg.LogLevel)
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg := Default()
	cfg.HTTPTimeoutMS = 10
	cfg.WheelDelta = -3
	cfg.CellWidthPx = 0
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize() = %v", err)
	}
	if cfg.HTTPTimeoutMS != 1000 || cfg.WheelDelta != 100 || cfg.CellWidthPx != 1 {
		t.Fatalf("Normalize() = %+v", cfg)
	}

	cfg.RenderMode = "sixel"
	if err := cfg.Normalize(); err == nil {
		t.Fatal("Normalize() = nil; want error for unknown render mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() = nil; want error for missing file")
	}
}
