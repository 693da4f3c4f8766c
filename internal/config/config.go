// Package config loads the sandbox application configuration from a
// yaml file. Unknown keys are rejected so typos fail loudly instead of
// silently falling back to defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ember-engine/ember/internal/logger"
)

// Window holds the initial window placement. Position is signed so
// negative multi-monitor coordinates survive.
type Window struct {
	Title  string `yaml:"title"`
	X      int32  `yaml:"x"`
	Y      int32  `yaml:"y"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
}

// Config is the full application configuration.
type Config struct {
	Window   Window `yaml:"window"`
	LogLevel string `yaml:"log_level"`
	FrameCap int    `yaml:"frame_cap"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Window: Window{
			Title:  "Ember Sandbox",
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
		},
		LogLevel: "trace",
		FrameCap: 60,
	}
}

// LoadFromPath reads the configuration at path, layered over the
// defaults. A missing file is not an error; a malformed or invalid one
// is.
func LoadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c Config) Validate() error {
	if c.Window.Title == "" {
		return errors.New("window title must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.FrameCap < 0 {
		return fmt.Errorf("frame_cap must be zero or positive, got %d", c.FrameCap)
	}
	return nil
}
