package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "sandbox") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestRunCmd_RejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	if err := os.WriteFile(path, []byte("log_level: loudest\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--config", path})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected bad config to fail before any window is opened")
	}
}
