package logger

import (
	"strings"
	"testing"
)

type capture struct {
	out []string
	err []string
}

func (c *capture) install(t *testing.T) {
	t.Helper()
	prevOut, prevErr, prevLevel := writeOut, writeErr, maxLevel
	writeOut = func(msg string, level uint8) { c.out = append(c.out, msg) }
	writeErr = func(msg string, level uint8) { c.err = append(c.err, msg) }
	t.Cleanup(func() {
		writeOut, writeErr, maxLevel = prevOut, prevErr, prevLevel
	})
}

func TestOutput_RoutesErrorLevelsToStderr(t *testing.T) {
	var c capture
	c.install(t)
	SetLevel(LevelTrace)

	Fatalf("boom")
	Errorf("bad")
	Warnf("careful")
	Infof("fyi")

	if len(c.err) != 2 {
		t.Fatalf("expected fatal+error on stderr, got %d entries", len(c.err))
	}
	if len(c.out) != 2 {
		t.Fatalf("expected warn+info on stdout, got %d entries", len(c.out))
	}
	if !strings.HasPrefix(c.err[0], "[FATAL]: ") {
		t.Fatalf("missing fatal prefix: %q", c.err[0])
	}
	if !strings.HasSuffix(c.err[0], "boom\n") {
		t.Fatalf("missing message or newline: %q", c.err[0])
	}
}

func TestSetLevel_FiltersLessSevereMessages(t *testing.T) {
	var c capture
	c.install(t)
	SetLevel(LevelWarn)

	Warnf("kept")
	Infof("dropped")
	Debugf("dropped")
	Tracef("dropped")

	if len(c.out) != 1 {
		t.Fatalf("expected only the warn entry, got %d", len(c.out))
	}
	if !strings.Contains(c.out[0], "kept") {
		t.Fatalf("unexpected entry: %q", c.out[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"fatal", LevelFatal},
		{"ERROR", LevelError},
		{"warning", LevelWarn},
		{"info", LevelInfo},
		{"debug", LevelDebug},
		{"trace", LevelTrace},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: got %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
