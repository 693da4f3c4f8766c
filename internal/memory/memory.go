// Package memory wraps the platform allocation primitives with per-tag
// accounting. Engine code allocates through a System so every block is
// classified and the totals stay truthful; bypassing it loses the
// bookkeeping, never the memory.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ember-engine/ember/internal/logger"
	"github.com/ember-engine/ember/internal/platform"
)

// Tag classifies an allocation by the subsystem that owns it.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagArray
	TagDynArray
	TagDict
	TagRingQueue
	TagBST
	TagString
	TagApplication
	TagJob
	TagTexture
	TagMaterialInstance
	TagRenderer
	TagGame
	TagTransform
	TagEntity
	TagEntityNode
	TagScene

	tagCount
)

var tagNames = [tagCount]string{
	"UNKNOWN    ",
	"ARRAY      ",
	"DARRAY     ",
	"DICT       ",
	"RING_QUEUE ",
	"BST        ",
	"STRING     ",
	"APPLICATION",
	"JOB        ",
	"TEXTURE    ",
	"MAT_INST   ",
	"RENDERER   ",
	"GAME       ",
	"TRANSFORM  ",
	"ENTITY     ",
	"ENTITY_NODE",
	"SCENE      ",
}

// System tracks how many bytes each subsystem currently holds.
type System struct {
	mu             sync.Mutex
	totalAllocated uint64
	tagged         [tagCount]uint64
}

func NewSystem() *System {
	return &System{}
}

// Allocate returns a zero-filled block of exactly size bytes charged to
// tag. Untagged allocations are served but flagged so they get
// reclassified.
func (s *System) Allocate(size uint64, tag Tag) ([]byte, error) {
	if tag == TagUnknown {
		logger.Warnf("memory: %d byte allocation left untagged; classify it", size)
	}
	block, err := platform.Allocate(size)
	if err != nil {
		return nil, fmt.Errorf("memory: allocate %d bytes: %w", size, err)
	}

	s.mu.Lock()
	s.totalAllocated += size
	s.tagged[tag] += size
	s.mu.Unlock()
	return block, nil
}

// Free releases a block obtained from Allocate and credits size back to
// tag. Size and tag must match the allocation they came from.
func (s *System) Free(block []byte, size uint64, tag Tag) {
	if tag == TagUnknown {
		logger.Warnf("memory: %d byte free left untagged; classify it", size)
	}

	s.mu.Lock()
	s.totalAllocated -= size
	s.tagged[tag] -= size
	s.mu.Unlock()

	platform.Free(block)
}

// TotalAllocated reports the bytes currently charged across all tags.
func (s *System) TotalAllocated() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalAllocated
}

// TaggedAllocated reports the bytes currently charged to one tag.
func (s *System) TaggedAllocated(tag Tag) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tag >= tagCount {
		return 0
	}
	return s.tagged[tag]
}

// Zero, Copy and Set forward to the platform byte primitives so callers
// holding tagged blocks never reach around this package.

func Zero(block []byte) {
	platform.ZeroMemory(block)
}

func Copy(dst, src []byte, size uint64) {
	platform.CopyMemory(dst, src, size)
}

func Set(dst []byte, value byte, size uint64) {
	platform.SetMemory(dst, value, size)
}

// UsageReport renders the per-tag totals with human-readable units.
func (s *System) UsageReport() string {
	const (
		gib = 1024 * 1024 * 1024
		kib = 1024
		mib = 1024 * 1024
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("System memory use (tagged):\n")
	for tag := Tag(0); tag < tagCount; tag++ {
		size := s.tagged[tag]
		var amount float64
		var unit string
		switch {
		case size >= gib:
			amount, unit = float64(size)/gib, "GiB"
		case size >= mib:
			amount, unit = float64(size)/mib, "MiB"
		case size >= kib:
			amount, unit = float64(size)/kib, "KiB"
		default:
			amount, unit = float64(size), "B"
		}
		fmt.Fprintf(&sb, "  %s: %.2f%s\n", tagNames[tag], amount, unit)
	}
	return sb.String()
}
