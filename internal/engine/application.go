// Package engine owns the application lifecycle: platform bootstrap,
// the frame loop, and teardown. It drives the platform layer through a
// narrow interface so the loop is testable without a window server.
package engine

import (
	"errors"
	"fmt"

	"github.com/ember-engine/ember/internal/logger"
	"github.com/ember-engine/ember/internal/platform"
)

// Layer is the slice of the platform surface the application loop
// needs. *platform.Platform satisfies it.
type Layer interface {
	Startup(name string, x, y, width, height int32) error
	PumpMessages() bool
	PollEvent() (platform.Event, bool)
	Shutdown()
	AbsoluteTime() float64
}

// Game supplies the per-frame callbacks. All of them run on the loop
// goroutine.
type Game interface {
	Initialize() error
	Update(delta float64) error
	Render(delta float64) error
	OnResize(width, height uint32)
}

// Config describes the window and loop parameters.
type Config struct {
	Name   string
	StartX int32
	StartY int32
	Width  int32
	Height int32

	// FrameCap limits the loop to this many frames per second; zero
	// disables the cap and the loop spins as fast as the game allows.
	FrameCap int
}

// Application runs one game against one platform layer. Create with
// New, drive with Run; neither is reentrant.
type Application struct {
	cfg      Config
	game     Game
	platform Layer

	running   bool
	suspended bool
	lastTime  float64

	// Injected so loop-timing tests do not really sleep.
	sleep func(ms uint64)
}

func New(cfg Config, game Game, layer Layer) (*Application, error) {
	if game == nil {
		return nil, errors.New("engine: nil game")
	}
	if layer == nil {
		return nil, errors.New("engine: nil platform layer")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("engine: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FrameCap < 0 {
		return nil, fmt.Errorf("engine: invalid frame cap %d", cfg.FrameCap)
	}
	if cfg.Name == "" {
		cfg.Name = "Ember Application"
	}
	return &Application{
		cfg:      cfg,
		game:     game,
		platform: layer,
		sleep:    platform.Sleep,
	}, nil
}

// Run performs platform startup, loops until the pump reports quit or a
// game callback fails, and shuts the platform down on the way out. A
// startup failure is fatal and leaves the platform untouched.
func (a *Application) Run() error {
	if err := a.platform.Startup(a.cfg.Name, a.cfg.StartX, a.cfg.StartY, a.cfg.Width, a.cfg.Height); err != nil {
		logger.Fatalf("platform startup failed: %v", err)
		return fmt.Errorf("platform startup: %w", err)
	}
	defer a.platform.Shutdown()

	if err := a.game.Initialize(); err != nil {
		logger.Fatalf("game failed to initialize: %v", err)
		return fmt.Errorf("game initialize: %w", err)
	}
	a.game.OnResize(uint32(a.cfg.Width), uint32(a.cfg.Height))

	var targetSeconds float64
	if a.cfg.FrameCap > 0 {
		targetSeconds = 1.0 / float64(a.cfg.FrameCap)
	}

	a.running = true
	a.lastTime = a.platform.AbsoluteTime()
	for a.running {
		if !a.platform.PumpMessages() {
			a.running = false
		}
		a.drainEvents()

		frameStart := a.platform.AbsoluteTime()
		delta := frameStart - a.lastTime

		if !a.suspended {
			if err := a.game.Update(delta); err != nil {
				logger.Fatalf("game update failed: %v", err)
				a.running = false
				return fmt.Errorf("game update: %w", err)
			}
			if err := a.game.Render(delta); err != nil {
				logger.Fatalf("game render failed, shutting down: %v", err)
				a.running = false
				return fmt.Errorf("game render: %w", err)
			}
		}

		if targetSeconds > 0 {
			elapsed := a.platform.AbsoluteTime() - frameStart
			if remaining := targetSeconds - elapsed; remaining > 0 {
				a.sleep(uint64(remaining * 1000))
			}
		}
		a.lastTime = frameStart
	}
	return nil
}

// drainEvents empties the translated-event queue each frame. Input
// translation is not wired into the game yet; draining keeps the queue
// bounded and close requests already surface through the pump result.
func (a *Application) drainEvents() {
	for {
		if _, ok := a.platform.PollEvent(); !ok {
			return
		}
	}
}
