package platform

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeBackend mimics an OS backend: events fed into pending are
// classified on the next pump, a CloseRequest latches the quit flag,
// and shutdown zeroes the window handle so a second call is a no-op.
type fakeBackend struct {
	pending []Event
	queue   eventQueue

	window        uint32
	quitRequested bool

	startupErr    error
	startupCalls  int
	pumpCalls     int
	shutdownCalls int
}

func (f *fakeBackend) startup(name string, x, y, width, height int32) error {
	f.startupCalls++
	if f.startupErr != nil {
		return f.startupErr
	}
	f.window = 1
	return nil
}

func (f *fakeBackend) pumpMessages() bool {
	f.pumpCalls++
	for _, ev := range f.pending {
		if _, ok := ev.(CloseRequest); ok {
			f.quitRequested = true
		}
		f.queue.push(ev)
	}
	f.pending = nil
	return !f.quitRequested
}

func (f *fakeBackend) pollEvent() (Event, bool) { return f.queue.pop() }

func (f *fakeBackend) shutdown() {
	f.shutdownCalls++
	if f.window != 0 {
		f.window = 0
	}
}

func (f *fakeBackend) absoluteTime() float64 { return 0 }

func TestPumpMessages_TrueWithoutCloseRequest(t *testing.T) {
	fake := &fakeBackend{}
	p := &Platform{impl: fake}

	fake.pending = []Event{KeyPress{Code: 36}, PointerMotion{X: 3, Y: 4}}
	for i := 0; i < 5; i++ {
		if !p.PumpMessages() {
			t.Fatalf("pump %d: reported quit with no close request", i)
		}
	}
	if fake.quitRequested {
		t.Fatalf("quit flag set without a close request")
	}
}

func TestPumpMessages_FalseOnCloseRequest(t *testing.T) {
	fake := &fakeBackend{}
	p := &Platform{impl: fake}

	if !p.PumpMessages() {
		t.Fatalf("quit before any close request")
	}
	fake.pending = []Event{KeyRelease{Code: 36}, CloseRequest{}}
	if p.PumpMessages() {
		t.Fatalf("expected quit on the pump that observes the close request")
	}
}

func TestPollEvent_DrainsInOrder(t *testing.T) {
	fake := &fakeBackend{}
	p := &Platform{impl: fake}

	fake.pending = []Event{KeyPress{Code: 1}, KeyRelease{Code: 1}, Expose{}}
	p.PumpMessages()

	want := []Event{KeyPress{Code: 1}, KeyRelease{Code: 1}, Expose{}}
	for i, w := range want {
		ev, ok := p.PollEvent()
		if !ok {
			t.Fatalf("event %d missing", i)
		}
		if ev != w {
			t.Fatalf("event %d: got %#v, want %#v", i, ev, w)
		}
	}
	if _, ok := p.PollEvent(); ok {
		t.Fatalf("queue should be empty after draining")
	}
}

func TestStartup_WrapsFailureClass(t *testing.T) {
	fake := &fakeBackend{startupErr: fmt.Errorf("%w: display :0 unreachable", ErrConnection)}
	p := &Platform{impl: fake}

	err := p.Startup("T", 0, 0, 200, 100)
	if err == nil {
		t.Fatalf("expected startup failure")
	}
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestShutdown_IdempotentOnWindowHandle(t *testing.T) {
	fake := &fakeBackend{}
	p := &Platform{impl: fake}

	if err := p.Startup("T", 0, 0, 200, 100); err != nil {
		t.Fatalf("startup: %v", err)
	}
	p.Shutdown()
	if fake.window != 0 {
		t.Fatalf("window handle not zeroed after shutdown")
	}
	p.Shutdown()
	if fake.shutdownCalls != 2 {
		t.Fatalf("expected both shutdown calls to be accepted, got %d", fake.shutdownCalls)
	}
}

func TestEventQueue_DropsOldestOnOverflow(t *testing.T) {
	var q eventQueue
	for i := 0; i < maxQueuedEvents+10; i++ {
		q.push(KeyPress{Code: uint32(i)})
	}
	if len(q.events) != maxQueuedEvents {
		t.Fatalf("queue grew past its bound: %d", len(q.events))
	}
	ev, ok := q.pop()
	if !ok {
		t.Fatalf("expected an event")
	}
	if got := ev.(KeyPress).Code; got != 10 {
		t.Fatalf("expected oldest surviving event to be 10, got %d", got)
	}
}

func TestSleep_BlocksAtLeastRequestedDuration(t *testing.T) {
	start := time.Now()
	Sleep(10)
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("slept %v, want at least 10ms", elapsed)
	}
}
