package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func newWatcher(t *testing.T, onChange func(string)) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(20*time.Millisecond, nil, onChange)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	t.Cleanup(func() { fw.Close() })
	return fw
}

func TestFileWatcherReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "[TODO] a\n")

	changed := make(chan string, 10)
	fw := newWatcher(t, func(name string) { changed <- name })
	if err := fw.AddFile(path); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	writeFile(t, path, "[DONE] a\n")

	select {
	case name := <-changed:
		want, _ := filepath.Abs(path)
		if name != want {
			t.Errorf("Changed path mismatch: got %s, want %s", name, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No change reported")
	}
}

func TestFileWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "")

	var calls atomic.Int32
	fw, err := NewFileWatcher(200*time.Millisecond, nil, func(string) { calls.Add(1) })
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.AddFile(path); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		writeFile(t, path, "[TODO] burst\n")
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(600 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected one change for a burst of writes, got %d", got)
	}
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, path, "")

	var calls atomic.Int32
	fw := newWatcher(t, func(string) { calls.Add(1) })
	if err := fw.AddFile(path); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	writeFile(t, other, "unrelated")
	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("Changes to other files should be ignored, got %d calls", got)
	}
}

func TestFileWatcherRemoveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.txt")
	writeFile(t, path, "")

	var calls atomic.Int32
	fw := newWatcher(t, func(string) { calls.Add(1) })
	if err := fw.AddFile(path); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	if err := fw.AddFile(path); err != nil {
		t.Fatalf("Adding a file twice should be a no-op: %v", err)
	}
	if len(fw.Files()) != 1 {
		t.Fatalf("Expected one watched file, got %v", fw.Files())
	}

	if err := fw.RemoveFile(path); err != nil {
		t.Fatalf("RemoveFile failed: %v", err)
	}
	if err := fw.RemoveFile(path); err != nil {
		t.Fatalf("Removing an unwatched file should be a no-op: %v", err)
	}

	writeFile(t, path, "[TODO] a\n")
	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("Removed file should not be reported, got %d calls", got)
	}
}

func TestFileWatcherAddMissingDirectory(t *testing.T) {
	fw := newWatcher(t, nil)
	if err := fw.AddFile(filepath.Join(t.TempDir(), "missing", "todo.txt")); err == nil {
		t.Error("Expected error for a file in a missing directory")
	}
}

func TestFileWatcherCloseTwice(t *testing.T) {
	fw, err := NewFileWatcher(0, nil, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if fw.delay != DefaultDelay {
		t.Errorf("Zero delay should default to %v, got %v", DefaultDelay, fw.delay)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("Second Close should be a no-op: %v", err)
	}
}
