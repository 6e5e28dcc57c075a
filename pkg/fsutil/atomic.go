// Package fsutil provides filesystem helpers for whole-file rewrites and
// advisory locking.
package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

// AtomicWrite replaces path with data via a temp file and rename, so readers
// see either the old or the new content.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := EnsureParent(path); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("atomic write: %w", err)
	}
	// The temp file behind the rename is created 0600.
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("atomic write chmod: %w", err)
	}
	return nil
}

// EnsureParent creates the parent directory of path if needed.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// LockPath returns the sidecar lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// WithLock runs fn while holding an exclusive advisory lock on path's
// sidecar lock file.
func WithLock(path string, fn func() error) error {
	if err := EnsureParent(path); err != nil {
		return err
	}
	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()
	return fn()
}
