package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info_list.json")

	changes, closer, err := watchFile(path)
	if err != nil {
		t.Fatalf("watchFile() error: %v", err)
	}
	defer closer.Close()

	// Unrelated files are ignored.
	os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644)
	select {
	case <-changes:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported after writing the file")
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	_, _, err := watchFile(filepath.Join(t.TempDir(), "missing", "info_list.json"))
	if err == nil {
		t.Error("watchFile() should fail when the directory does not exist")
	}
}

func TestWaitForChangeNil(t *testing.T) {
	if cmd := waitForChange(nil); cmd != nil {
		t.Error("waitForChange(nil) should return nil")
	}
}
