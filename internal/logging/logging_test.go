package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel("info")

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Info("hidden")
	Warn("shown", "scheme", "mythos")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "scheme=mythos") {
		t.Errorf("warn message missing or lacks attrs: %q", out)
	}
}

func TestSetLevelRejectsGarbage(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDisable(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Disable()
	Error("nope")
	Enable()
	Error("yes", "n", 2)

	out := buf.String()
	if strings.Contains(out, "nope") {
		t.Errorf("disabled logger wrote output: %q", out)
	}
	if !strings.Contains(out, "yes") {
		t.Errorf("expected re-enabled output, got %q", out)
	}
}

func TestNoColorWhenNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if isTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if isTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}

	SetOutput(f)
	defer SetOutput(os.Stderr)
	Warn("plain")

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Errorf("ANSI escapes written to a file: %q", data)
	}
	if !strings.Contains(string(data), "plain") {
		t.Errorf("message missing: %q", data)
	}
}
