package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Validates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults for a missing file, got %#v", cfg)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Width != DefaultConfig().Window.Width {
		t.Fatalf("expected default width, got %d", cfg.Window.Width)
	}
}

func TestLoadFromPath_OverridesLayerOverDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"window:",
		"  title: \"Demo\"",
		"  x: -1920",
		"  width: 800",
		"  height: 600",
		"log_level: warn",
		"",
	}, "\n"))

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Title != "Demo" {
		t.Fatalf("title: got %q", cfg.Window.Title)
	}
	if cfg.Window.X != -1920 {
		t.Fatalf("negative x not preserved: got %d", cfg.Window.X)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("size: got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level: got %q", cfg.LogLevel)
	}
	if cfg.FrameCap != DefaultConfig().FrameCap {
		t.Fatalf("frame cap should stay at default, got %d", cfg.FrameCap)
	}
}

func TestLoadFromPath_UnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "window_title: nope\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadFromPath_InvalidSizeErrors(t *testing.T) {
	path := writeConfig(t, "window:\n  width: 0\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestLoadFromPath_InvalidLogLevelErrors(t *testing.T) {
	path := writeConfig(t, "log_level: loudest\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
