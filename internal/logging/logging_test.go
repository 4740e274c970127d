package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelInfo)
	t.Cleanup(func() { SetOutput(os.Stderr, slog.LevelInfo) })

	Debug("hidden")
	Info("shown", "key", "value")
	Warn("careful")
	Error("broken")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	for _, want := range []string{"level=INFO msg=shown key=value", "level=WARN msg=careful", "level=ERROR msg=broken"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInit_FileQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchavg.log")
	if err := Init(Options{Debug: true, File: path, Quiet: true}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	Debug("to file", "n", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "msg=\"to file\" n=1") {
		t.Errorf("log file = %q", data)
	}
}

func TestInit_BadFile(t *testing.T) {
	err := Init(Options{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	if err == nil {
		t.Error("expected error for unwritable log path")
	}
}
