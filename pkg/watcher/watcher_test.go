package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForChange(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcher_DetectsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tenders.json")
	if err := os.WriteFile(path, []byte(`{"opportunities": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Give the watch a moment to attach before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"opportunities": [{}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitForChange(t, w, 3*time.Second) {
		t.Fatal("no change notification after rewrite")
	}
}

func TestWatcher_PollingFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tenders.json")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(30*time.Millisecond),
		WithDebounce(10*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode")
	}

	// Size change guarantees detection even with coarse mtime resolution.
	if err := os.WriteFile(path, []byte("bb"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitForChange(t, w, 3*time.Second) {
		t.Fatal("no change notification in polling mode")
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tenders.json")

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcher_MissingFileTolerated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-yet.json")

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start on missing file should succeed, got %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)

	// Creation counts as a change.
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitForChange(t, w, 3*time.Second) {
		t.Fatal("no notification for file creation")
	}
}
