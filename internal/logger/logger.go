// Package logger provides the engine's leveled logging. Messages flow
// through the platform console primitives so color handling stays in
// one place; FATAL and ERROR go to standard error, the rest to
// standard output.
package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ember-engine/ember/internal/platform"
)

// Level orders log severities. Lower values are more severe; the
// numeric values double as the platform console color indices.
type Level uint8

const (
	LevelFatal Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelPrefixes = [...]string{
	"[FATAL]: ",
	"[ERROR]: ",
	"[WARN]:  ",
	"[INFO]:  ",
	"[DEBUG]: ",
	"[TRACE]: ",
}

func (l Level) String() string {
	switch l {
	case LevelFatal:
		return "fatal"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// ParseLevel converts a config string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu       sync.Mutex
	maxLevel = LevelTrace

	// Swappable so tests can capture output without a terminal.
	writeOut = platform.ConsoleWrite
	writeErr = platform.ConsoleWriteError
)

// SetLevel discards messages less severe than l.
func SetLevel(l Level) {
	mu.Lock()
	maxLevel = l
	mu.Unlock()
}

func output(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level > maxLevel {
		return
	}
	msg := levelPrefixes[level] + fmt.Sprintf(format, args...) + "\n"
	if level <= LevelError {
		writeErr(msg, uint8(level))
		return
	}
	writeOut(msg, uint8(level))
}

// Fatalf reports an unrecoverable condition. It does not exit; the
// caller decides how to abort.
func Fatalf(format string, args ...any) { output(LevelFatal, format, args...) }

func Errorf(format string, args ...any) { output(LevelError, format, args...) }

func Warnf(format string, args ...any) { output(LevelWarn, format, args...) }

func Infof(format string, args ...any) { output(LevelInfo, format, args...) }

func Debugf(format string, args ...any) { output(LevelDebug, format, args...) }

func Tracef(format string, args ...any) { output(LevelTrace, format, args...) }
