// Package platform hides the operating system's windowing and eventing
// stack behind one uniform surface consumed by the engine's frame loop.
// It owns the window lifecycle, a non-blocking per-frame event drain,
// and a small set of OS primitives (memory, colored console output,
// monotonic timing) the rest of the engine depends on.
//
// One Platform per process, driven from one goroutine in strict
// sequence: Startup once, PumpMessages once per frame, Shutdown once on
// exit. Nothing in this package is reentrant.
package platform

import "time"

// backend is the compile-time-selected OS implementation. Each target
// provides newBackend in its own build-tagged file.
type backend interface {
	startup(name string, x, y, width, height int32) error
	pumpMessages() bool
	shutdown()
	pollEvent() (Event, bool)
	absoluteTime() float64
}

// Platform is the handle the application layer owns. The zero value is
// not usable; construct with New.
type Platform struct {
	impl backend
}

// New returns a Platform backed by the implementation for the target
// operating system. The window does not exist until Startup.
func New() *Platform {
	return &Platform{impl: newBackend()}
}

// Startup connects to the window server, creates the window titled name
// with the requested position and client-area size, and makes it
// visible. Coordinates are signed to tolerate negative multi-monitor
// positions. Every failure wraps one of ErrConnection, ErrRegistration,
// or ErrStream; a failed Startup is fatal for the process and the
// caller is expected to abort rather than retry.
func (p *Platform) Startup(name string, x, y, width, height int32) error {
	return p.impl.startup(name, x, y, width, height)
}

// PumpMessages drains the events already queued by the OS without
// blocking for new input, then reports whether the caller should keep
// running. It returns false on, and only from, the call during which a
// window-close notification is observed.
func (p *Platform) PumpMessages() bool {
	return p.impl.pumpMessages()
}

// PollEvent removes and returns the oldest translated event, if any.
// Events carry raw OS codes; translating them into engine input is not
// wired up yet.
func (p *Platform) PollEvent() (Event, bool) {
	return p.impl.pollEvent()
}

// Shutdown destroys the window if it is still live, zeroes its handle,
// and restores any OS-global settings altered at Startup. Safe to call
// more than once after a successful Startup; calling it without one is
// a precondition violation.
func (p *Platform) Shutdown() {
	p.impl.shutdown()
}

// AbsoluteTime returns seconds since an arbitrary fixed origin from a
// monotonic clock. Successive calls never go backwards within one
// process lifetime.
func (p *Platform) AbsoluteTime() float64 {
	return p.impl.absoluteTime()
}

// Sleep blocks the calling goroutine for at least ms milliseconds,
// yielding the thread back to the scheduler. There is no early wake.
func Sleep(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
