package platform

// Event is a platform-neutral window or input event. Backends translate
// native messages into these during PumpMessages and queue them for the
// caller to drain with PollEvent.
type Event interface{}

// KeyPress and KeyRelease carry the raw OS key code, untranslated.
type KeyPress struct{ Code uint32 }
type KeyRelease struct{ Code uint32 }

// ButtonPress and ButtonRelease carry the raw OS button number and the
// pointer position inside the client area.
type ButtonPress struct {
	Button uint8
	X, Y   int16
}
type ButtonRelease struct {
	Button uint8
	X, Y   int16
}

// PointerMotion reports the pointer position inside the client area.
type PointerMotion struct{ X, Y int16 }

// Resize reports the new client-area size after a structural change.
type Resize struct{ Width, Height uint16 }

// Expose indicates part of the window needs repainting.
type Expose struct{}

// CloseRequest indicates the window manager asked to close the window.
// The pump also reflects it through its return value.
type CloseRequest struct{}

// maxQueuedEvents bounds the translated-event queue; the oldest entry
// is dropped on overflow so a caller that never drains cannot grow it.
const maxQueuedEvents = 256

type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(ev Event) {
	if len(q.events) >= maxQueuedEvents {
		q.events = q.events[1:]
	}
	q.events = append(q.events, ev)
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}
