package platform

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// levelForegrounds holds one ANSI palette entry per ordered level:
// FATAL, ERROR, WARN, INFO, DEBUG, TRACE. FATAL additionally gets the
// red background below.
var levelForegrounds = [6]string{"15", "9", "11", "10", "12", "8"}

const fatalBackground = "1"

type console struct {
	out *termenv.Output
}

func newConsole(f *os.File) *console {
	profile := termenv.Ascii
	if term.IsTerminal(int(f.Fd())) {
		profile = termenv.EnvColorProfile()
	}
	return &console{out: termenv.NewOutput(f, termenv.WithProfile(profile))}
}

func (c *console) write(message string, level uint8) {
	if level >= uint8(len(levelForegrounds)) {
		level = uint8(len(levelForegrounds)) - 1
	}
	s := c.out.String(message).Foreground(c.out.Color(levelForegrounds[level]))
	if level == 0 {
		s = s.Background(c.out.Color(fatalBackground))
	}
	fmt.Fprint(c.out, s.String())
}

// The two console streams carry independent outputs so their color
// profiles are detected separately (one may be a pipe, the other a
// terminal).
var (
	consoleOut = newConsole(os.Stdout)
	consoleErr = newConsole(os.Stderr)
)

// ConsoleWrite writes message to standard output colored for the given
// level. Levels 0 through 5 select FATAL, ERROR, WARN, INFO, DEBUG and
// TRACE; values outside that range are out of contract.
func ConsoleWrite(message string, level uint8) {
	consoleOut.write(message, level)
}

// ConsoleWriteError is ConsoleWrite for standard error.
func ConsoleWriteError(message string, level uint8) {
	consoleErr.write(message, level)
}
