//go:build windows

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const windowClassName = "ember_window_class"

const (
	wsOverlapped  = 0x00000000
	wsCaption     = 0x00C00000
	wsSysmenu     = 0x00080000
	wsThickframe  = 0x00040000
	wsMinimizebox = 0x00020000
	wsMaximizebox = 0x00010000
	wsExAppwindow = 0x00040000

	csDblclks = 0x0008
	swShow    = 5
	pmRemove  = 0x0001

	wmDestroy     = 0x0002
	wmSize        = 0x0005
	wmClose       = 0x0010
	wmQuit        = 0x0012
	wmEraseBkgnd  = 0x0014
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A

	idiApplication = 32512
	idcArrow       = 32512
)

var (
	moduser32   = windows.NewLazySystemDLL("user32.dll")
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW   = moduser32.NewProc("RegisterClassExW")
	procAdjustWindowRectEx = moduser32.NewProc("AdjustWindowRectEx")
	procCreateWindowExW    = moduser32.NewProc("CreateWindowExW")
	procShowWindow         = moduser32.NewProc("ShowWindow")
	procDestroyWindow      = moduser32.NewProc("DestroyWindow")
	procPeekMessageW       = moduser32.NewProc("PeekMessageW")
	procTranslateMessage   = moduser32.NewProc("TranslateMessage")
	procDispatchMessageW   = moduser32.NewProc("DispatchMessageW")
	procDefWindowProcW     = moduser32.NewProc("DefWindowProcW")
	procPostQuitMessage    = moduser32.NewProc("PostQuitMessage")
	procLoadIconW          = moduser32.NewProc("LoadIconW")
	procLoadCursorW        = moduser32.NewProc("LoadCursorW")

	procQueryPerformanceFrequency = modkernel32.NewProc("QueryPerformanceFrequency")
	procQueryPerformanceCounter   = modkernel32.NewProc("QueryPerformanceCounter")
)

type wndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type point struct {
	X, Y int32
}

type msgW struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

type rectW struct {
	Left, Top, Right, Bottom int32
}

// win32Backend drives one native message window. Clock calibration is
// latched here rather than in package statics so a second instance
// stays theoretically composable.
type win32Backend struct {
	instance windows.Handle
	hwnd     uintptr

	clockPeriod float64
	startCount  int64

	queue         eventQueue
	quitRequested bool
}

func newBackend() backend {
	return &win32Backend{}
}

// The OS invokes the window procedure without a context pointer, so a
// registry maps window handles back to their backend.
var (
	windowMu     sync.Mutex
	windowStates = map[uintptr]*win32Backend{}
)

func (b *win32Backend) startup(name string, x, y, width, height int32) error {
	inst, err := windows.GetModuleHandle(nil)
	if err != nil {
		return fmt.Errorf("%w: module handle: %v", ErrConnection, err)
	}
	b.instance = inst

	className, err := windows.UTF16PtrFromString(windowClassName)
	if err != nil {
		return fmt.Errorf("%w: class name: %v", ErrRegistration, err)
	}
	title, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return fmt.Errorf("%w: window title: %v", ErrRegistration, err)
	}

	icon, _, _ := procLoadIconW.Call(0, uintptr(idiApplication))
	cursor, _, _ := procLoadCursorW.Call(0, uintptr(idcArrow))

	wc := wndClassExW{
		Style:     csDblclks,
		WndProc:   windows.NewCallback(wndProc),
		Instance:  inst,
		Icon:      windows.Handle(icon),
		Cursor:    windows.Handle(cursor),
		ClassName: className,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if atom, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return fmt.Errorf("%w: register window class: %v", ErrRegistration, callErr)
	}

	style := uintptr(wsOverlapped | wsCaption | wsSysmenu |
		wsMaximizebox | wsMinimizebox | wsThickframe)
	exStyle := uintptr(wsExAppwindow)

	// Grow the outer rect by the border and title-bar metrics so the
	// requested size stays the client area. Left and top come back
	// negative.
	var border rectW
	procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&border)), style, 0, exStyle)
	winX := x + border.Left
	winY := y + border.Top
	winW := width + (border.Right - border.Left)
	winH := height + (border.Bottom - border.Top)

	hwnd, _, callErr := procCreateWindowExW.Call(
		exStyle,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		style,
		uintptr(winX), uintptr(winY), uintptr(winW), uintptr(winH),
		0, 0, uintptr(inst), 0)
	if hwnd == 0 {
		return fmt.Errorf("%w: create window: %v", ErrRegistration, callErr)
	}
	b.hwnd = hwnd

	windowMu.Lock()
	windowStates[b.hwnd] = b
	windowMu.Unlock()

	procShowWindow.Call(b.hwnd, swShow)
	b.latchClock()
	return nil
}

func (b *win32Backend) latchClock() {
	var freq, start int64
	procQueryPerformanceFrequency.Call(uintptr(unsafe.Pointer(&freq)))
	procQueryPerformanceCounter.Call(uintptr(unsafe.Pointer(&start)))
	if freq > 0 {
		b.clockPeriod = 1.0 / float64(freq)
	}
	b.startCount = start
}

func (b *win32Backend) pumpMessages() bool {
	var m msgW
	for {
		got, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if got == 0 {
			break
		}
		if m.Message == wmQuit {
			b.quitRequested = true
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
	return !b.quitRequested
}

// wndProc routes native messages to the owning backend. It only
// translates; whether the application keeps running is decided in
// pumpMessages.
func wndProc(hwnd, msg, wparam, lparam uintptr) uintptr {
	windowMu.Lock()
	b := windowStates[hwnd]
	windowMu.Unlock()
	if b != nil {
		if claimed, result := b.handleMessage(msg, wparam, lparam); claimed {
			return result
		}
	}
	result, _, _ := procDefWindowProcW.Call(hwnd, msg, wparam, lparam)
	return result
}

// handleMessage translates one message into a typed event. claimed
// reports whether the result replaces the default window procedure.
func (b *win32Backend) handleMessage(msg, wparam, lparam uintptr) (claimed bool, result uintptr) {
	switch msg {
	case wmEraseBkgnd:
		// The engine repaints the whole client area every frame;
		// claiming the erase avoids flicker.
		return true, 1
	case wmClose:
		// Falls through to the default procedure, which destroys the
		// window and in turn posts the quit message observed by the
		// pump.
		b.queue.push(CloseRequest{})
		return false, 0
	case wmDestroy:
		procPostQuitMessage.Call(0)
		return true, 0
	case wmSize:
		b.queue.push(Resize{
			Width:  uint16(lparam & 0xFFFF),
			Height: uint16((lparam >> 16) & 0xFFFF),
		})
	case wmKeyDown, wmSysKeyDown:
		b.queue.push(KeyPress{Code: uint32(wparam)})
	case wmKeyUp, wmSysKeyUp:
		b.queue.push(KeyRelease{Code: uint32(wparam)})
	case wmMouseMove:
		b.queue.push(PointerMotion{
			X: int16(lparam & 0xFFFF),
			Y: int16((lparam >> 16) & 0xFFFF),
		})
	case wmMouseWheel:
		// Wheel deltas stay untranslated alongside the other inert
		// input categories.
	case wmLButtonDown, wmMButtonDown, wmRButtonDown:
		b.queue.push(ButtonPress{
			Button: mouseButtonFor(msg),
			X:      int16(lparam & 0xFFFF),
			Y:      int16((lparam >> 16) & 0xFFFF),
		})
	case wmLButtonUp, wmMButtonUp, wmRButtonUp:
		b.queue.push(ButtonRelease{
			Button: mouseButtonFor(msg),
			X:      int16(lparam & 0xFFFF),
			Y:      int16((lparam >> 16) & 0xFFFF),
		})
	}
	return false, 0
}

func mouseButtonFor(msg uintptr) uint8 {
	switch msg {
	case wmLButtonDown, wmLButtonUp:
		return 1
	case wmMButtonDown, wmMButtonUp:
		return 2
	default:
		return 3
	}
}

func (b *win32Backend) pollEvent() (Event, bool) {
	return b.queue.pop()
}

func (b *win32Backend) shutdown() {
	if b.hwnd == 0 {
		return
	}
	windowMu.Lock()
	delete(windowStates, b.hwnd)
	windowMu.Unlock()
	procDestroyWindow.Call(b.hwnd)
	b.hwnd = 0
}

func (b *win32Backend) absoluteTime() float64 {
	if b.clockPeriod == 0 {
		b.latchClock()
	}
	var now int64
	procQueryPerformanceCounter.Call(uintptr(unsafe.Pointer(&now)))
	return float64(now-b.startCount) * b.clockPeriod
}
