package sfcli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepScratch(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "11111111-2222-3333-4444-555555555555.apex")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-25 * time.Hour)
	if err := os.Chtimes(stale, past, past); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "66666666-7777-8888-9999-000000000000.apex")
	if err := os.WriteFile(fresh, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := SweepScratch(dir, ScratchMaxAge)
	if err != nil {
		t.Fatalf("SweepScratch() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale payload should be gone")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh payload should survive: %v", err)
	}
}

func TestSweepScratchMissingDir(t *testing.T) {
	removed, err := SweepScratch(filepath.Join(t.TempDir(), "never-created"), time.Hour)
	if err != nil {
		t.Fatalf("SweepScratch() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestSweepScratchSkipsDotFiles(t *testing.T) {
	dir := t.TempDir()

	marker := filepath.Join(dir, ".sweep.lock")
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(marker, past, past); err != nil {
		t.Fatal(err)
	}

	if _, err := SweepScratch(dir, ScratchMaxAge); err != nil {
		t.Fatalf("SweepScratch() error = %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("lock file should never be swept: %v", err)
	}

	// A second sweep must still be able to take the lock.
	if _, err := SweepScratch(dir, ScratchMaxAge); err != nil {
		t.Fatalf("second SweepScratch() error = %v", err)
	}
}
