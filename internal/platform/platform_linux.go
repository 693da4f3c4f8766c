//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
	"golang.org/x/sys/unix"
)

// x11Backend drives one X server connection and one top-level window.
type x11Backend struct {
	xu     *xgbutil.XUtil
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	window xproto.Window

	// Resolved before use; wmDeleteWin tags close requests routed
	// through the WM_PROTOCOLS property.
	wmProtocols xproto.Atom
	wmDeleteWin xproto.Atom

	queue         eventQueue
	quitRequested bool
}

func newBackend() backend {
	return &x11Backend{}
}

func (b *x11Backend) startup(name string, x, y, width, height int32) error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	b.xu = xu
	b.conn = xu.Conn()
	b.screen = xu.Screen()

	// Key auto-repeat is a server-wide setting, not per-window. It is
	// restored in shutdown.
	xproto.ChangeKeyboardControl(b.conn, xproto.KbAutoRepeatMode,
		[]uint32{xproto.AutoRepeatModeOff})

	wid, err := xproto.NewWindowId(b.conn)
	if err != nil {
		return fmt.Errorf("%w: allocating window id: %v", ErrRegistration, err)
	}
	b.window = wid

	eventMask := uint32(xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskExposure | xproto.EventMaskPointerMotion |
		xproto.EventMaskStructureNotify)

	if err := xproto.CreateWindowChecked(
		b.conn,
		b.screen.RootDepth,
		b.window,
		b.screen.Root,
		int16(x), int16(y), uint16(width), uint16(height),
		0, // no border
		xproto.WindowClassInputOutput,
		b.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{b.screen.BlackPixel, eventMask},
	).Check(); err != nil {
		b.window = 0
		return fmt.Errorf("%w: create window: %v", ErrRegistration, err)
	}

	// WM_NAME is 8-bit data with an explicit byte length, no trailing NUL.
	title := []byte(name)
	if err := xproto.ChangePropertyChecked(
		b.conn, xproto.PropModeReplace, b.window,
		xproto.AtomWmName, xproto.AtomString,
		8, uint32(len(title)), title,
	).Check(); err != nil {
		return fmt.Errorf("%w: set window title: %v", ErrRegistration, err)
	}

	if b.wmDeleteWin, err = xprop.Atm(xu, "WM_DELETE_WINDOW"); err != nil {
		return fmt.Errorf("%w: resolve WM_DELETE_WINDOW: %v", ErrConnection, err)
	}
	if b.wmProtocols, err = xprop.Atm(xu, "WM_PROTOCOLS"); err != nil {
		return fmt.Errorf("%w: resolve WM_PROTOCOLS: %v", ErrConnection, err)
	}

	// Advertise WM_DELETE_WINDOW so the window manager routes close
	// requests through the event stream instead of killing the
	// connection.
	if err := xprop.ChangeProp32(xu, b.window, "WM_PROTOCOLS", "ATOM",
		uint(b.wmDeleteWin)); err != nil {
		return fmt.Errorf("%w: set WM_PROTOCOLS: %v", ErrRegistration, err)
	}

	xproto.MapWindow(b.conn, b.window)

	// Requests are written eagerly, so a failed round trip here means
	// the output stream is faulted.
	if _, err := xproto.GetInputFocus(b.conn).Reply(); err != nil {
		return fmt.Errorf("%w: %v", ErrStream, err)
	}
	return nil
}

func (b *x11Backend) pumpMessages() bool {
	for {
		ev, xerr := b.conn.PollForEvent()
		if ev == nil && xerr == nil {
			break
		}
		if xerr != nil {
			// Errors on queued requests carry nothing to classify.
			continue
		}
		b.processEvent(ev)
	}
	return !b.quitRequested
}

// processEvent classifies one dequeued event exactly once. Input and
// structure events are translated onto the queue but drive no engine
// semantics yet; only the window manager's delete message affects
// control flow. The protocol decoder has already masked the synthetic
// bit, so sent events classify the same as real ones.
func (b *x11Backend) processEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		b.queue.push(KeyPress{Code: uint32(e.Detail)})
	case xproto.KeyReleaseEvent:
		b.queue.push(KeyRelease{Code: uint32(e.Detail)})
	case xproto.ButtonPressEvent:
		b.queue.push(ButtonPress{Button: uint8(e.Detail), X: e.EventX, Y: e.EventY})
	case xproto.ButtonReleaseEvent:
		b.queue.push(ButtonRelease{Button: uint8(e.Detail), X: e.EventX, Y: e.EventY})
	case xproto.MotionNotifyEvent:
		b.queue.push(PointerMotion{X: e.EventX, Y: e.EventY})
	case xproto.ConfigureNotifyEvent:
		b.queue.push(Resize{Width: e.Width, Height: e.Height})
	case xproto.ExposeEvent:
		b.queue.push(Expose{})
	case xproto.ClientMessageEvent:
		if e.Format == 32 && e.Data.Data32[0] == uint32(b.wmDeleteWin) {
			b.queue.push(CloseRequest{})
			b.quitRequested = true
		}
	}
}

func (b *x11Backend) pollEvent() (Event, bool) {
	return b.queue.pop()
}

func (b *x11Backend) shutdown() {
	if b.conn == nil {
		return
	}
	// Key repeat back on before anything else; it is a global setting.
	xproto.ChangeKeyboardControl(b.conn, xproto.KbAutoRepeatMode,
		[]uint32{xproto.AutoRepeatModeDefault})
	if b.window != 0 {
		xproto.DestroyWindow(b.conn, b.window)
		b.window = 0
	}
	b.conn.Close()
	b.conn = nil
	b.xu = nil
}

func (b *x11Backend) absoluteTime() float64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return float64(ts.Sec) + float64(ts.Nsec)*1e-9
}
