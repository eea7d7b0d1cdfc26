// Package workspace prepares output directories for a pipeline run: it creates
// them, verifies they are writable, and holds an advisory lock so overlapping
// invocations targeting the same directory fail fast.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

// LockFileName is created inside every prepared output directory.
const LockFileName = ".figprep.lock"

// ErrBusy reports that another invocation holds the directory lock.
var ErrBusy = errors.New("output directory is locked by another figprep run")

// Dir is a prepared, locked output directory.
type Dir struct {
	path string
	lock *flock.Flock
}

// Acquire creates path if needed, checks write access, and takes the lock.
// Callers must Release the returned Dir.
func Acquire(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %q: %w", path, err)
	}
	if err := CheckAccess(path); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(path, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusy, path)
	}
	return &Dir{path: path, lock: lock}, nil
}

// CheckAccess verifies that path is a directory the process can write into.
func CheckAccess(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%s is not writable: %w", path, err)
	}
	return nil
}

// Join resolves name inside the directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.path, name)
}

// Release drops the lock. The lock file stays in place so every run locks the
// same inode.
func (d *Dir) Release() error {
	if d == nil || d.lock == nil {
		return nil
	}
	if err := d.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
