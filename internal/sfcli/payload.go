package sfcli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tsmztech/sfkit/internal/filelock"
)

// ScratchDirName is the subdirectory of the OS temp dir that holds
// in-flight payload files.
const ScratchDirName = "sfkit-payloads"

// ScratchMaxAge is how long an orphaned payload file may linger before
// a sweep removes it. Orphans only appear after a crash; normal
// invocations delete their file before returning.
const ScratchMaxAge = 24 * time.Hour

// DefaultScratchDir returns the scratch directory for payload files.
func DefaultScratchDir() string {
	return filepath.Join(os.TempDir(), ScratchDirName)
}

// stagePayload writes the invocation payload to a freshly named file in
// the scratch directory. The caller owns removal.
func (inv *Invoker) stagePayload(call Invocation) (string, error) {
	dir := inv.ScratchDir
	if dir == "" {
		dir = DefaultScratchDir()
	}
	path := filepath.Join(dir, uuid.New().String()+call.PayloadExt)
	if err := filelock.AtomicWrite(path, call.Payload); err != nil {
		return "", err
	}
	return path, nil
}

// SweepScratch removes payload files older than maxAge from dir and
// returns how many were removed. A non-blocking cross-process lock
// keeps concurrent processes from racing over the same files; when
// another process holds the lock the sweep is skipped silently.
func SweepScratch(dir string, maxAge time.Duration) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	lock := filelock.NewFileLock(filepath.Join(dir, ".sweep.lock"))
	acquired, err := lock.TryLock()
	if err != nil || !acquired {
		return 0, err
	}
	defer lock.Unlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(dir, entry.Name())) == nil {
				removed++
			}
		}
	}
	return removed, nil
}
