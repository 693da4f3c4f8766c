package platform

import "errors"

// The three ways Startup can fail. Each is detected only during
// Startup, reported at fatal level by the caller, and not retryable.
var (
	// ErrConnection: the display or protocol connection could not be
	// opened or derived.
	ErrConnection = errors.New("platform: cannot reach the window server")

	// ErrRegistration: the window class or window-creation request was
	// rejected.
	ErrRegistration = errors.New("platform: window registration rejected")

	// ErrStream: the output stream to the window server is faulted.
	ErrStream = errors.New("platform: output stream fault")
)
