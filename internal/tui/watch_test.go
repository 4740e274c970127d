package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte(`{"benchmarking_results":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	fw, err := newFileWatcher(path)
	if err != nil {
		t.Fatalf("newFileWatcher: %v", err)
	}
	defer func() { _ = fw.Close() }()

	// Writes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"benchmarking_results":[{}]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-fw.events:
		changed, ok := msg.(DataChangedMsg)
		if !ok {
			t.Fatalf("got %T, want DataChangedMsg", msg)
		}
		if changed.Path != fw.target {
			t.Errorf("Path = %q, want %q", changed.Path, fw.target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestFileWatcherCloseUnblocksWait(t *testing.T) {
	fw, err := newFileWatcher(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("newFileWatcher: %v", err)
	}

	done := make(chan any, 1)
	go func() { done <- waitForChange(fw)() }()

	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("wait returned %T after close, want nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waitForChange did not return after Close")
	}

	var nilWatcher *fileWatcher
	if err := nilWatcher.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
