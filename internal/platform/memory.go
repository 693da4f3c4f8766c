package platform

import "fmt"

// maxAllocation rejects sizes that cannot be a real request; anything
// past it is treated as a corrupt length rather than handed to the
// runtime.
const maxAllocation = 1 << 40

// Allocate returns a zero-filled block of exactly size bytes. No
// alignment is guaranteed. Zero-length and absurdly large requests are
// rejected with an error instead of being assumed to succeed.
func Allocate(size uint64) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("allocate: zero-length block requested")
	}
	if size > maxAllocation {
		return nil, fmt.Errorf("allocate: %d bytes exceeds the %d byte ceiling", size, maxAllocation)
	}
	return make([]byte, size), nil
}

// Free releases a block previously returned by Allocate. Reclamation is
// the collector's job; this exists so the tagged-memory subsystem has a
// single choke point for release bookkeeping.
func Free(block []byte) {
	_ = block
}

// ZeroMemory fills the whole block with zero bytes.
func ZeroMemory(block []byte) {
	for i := range block {
		block[i] = 0
	}
}

// CopyMemory copies exactly size bytes from src to dst. Overlapping
// ranges are not checked.
func CopyMemory(dst, src []byte, size uint64) {
	copy(dst[:size], src[:size])
}

// SetMemory fills the first size bytes of dst with value.
func SetMemory(dst []byte, value byte, size uint64) {
	for i := uint64(0); i < size; i++ {
		dst[i] = value
	}
}
