package main

import (
	"github.com/ember-engine/ember/internal/logger"
	"github.com/ember-engine/ember/internal/memory"
)

// stateSize is the sandbox's scratch state block. There is no game
// logic yet; the allocation exercises the tagged-memory path.
const stateSize = 4096

type sandboxGame struct {
	mem   *memory.System
	state []byte
}

func newSandboxGame(mem *memory.System) *sandboxGame {
	return &sandboxGame{mem: mem}
}

func (g *sandboxGame) Initialize() error {
	logger.Debugf("sandbox: initialize")
	block, err := g.mem.Allocate(stateSize, memory.TagGame)
	if err != nil {
		return err
	}
	g.state = block
	return nil
}

func (g *sandboxGame) Update(delta float64) error {
	return nil
}

func (g *sandboxGame) Render(delta float64) error {
	return nil
}

func (g *sandboxGame) OnResize(width, height uint32) {
	logger.Tracef("sandbox: resize to %dx%d", width, height)
}
