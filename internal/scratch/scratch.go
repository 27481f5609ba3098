// Package scratch manages the per-render directory frames are written to.
package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another render of the same episode holds the lock.
var ErrLocked = errors.New("episode is already being rendered")

// Dir is a unique scratch directory guarded by an episode lock.
type Dir struct {
	Path     string
	LockPath string
	Token    string

	lock *flock.Flock
}

// Acquire locks the episode under root and creates a fresh directory for
// this run. Distinct runs never share a directory.
func Acquire(root string, episode int) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}

	lockPath := filepath.Join(root, fmt.Sprintf("episode_%04d.lock", episode))
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", lockPath, ErrLocked)
	}

	token := uuid.NewString()
	path := filepath.Join(root, fmt.Sprintf("episode_%04d_%s", episode, token))
	if err := os.Mkdir(path, 0755); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	return &Dir{Path: path, LockPath: lockPath, Token: token, lock: lock}, nil
}

// File returns the path of name inside the directory.
func (d *Dir) File(name string) string {
	return filepath.Join(d.Path, name)
}

// Release removes the directory unless keep is set, then drops the lock.
// It is safe to call more than once.
func (d *Dir) Release(keep bool) error {
	if d.lock == nil {
		return nil
	}
	var errs []error
	if !keep {
		if err := os.RemoveAll(d.Path); err != nil {
			errs = append(errs, fmt.Errorf("remove scratch dir: %w", err))
		}
	}
	if err := d.lock.Unlock(); err != nil {
		errs = append(errs, fmt.Errorf("release lock: %w", err))
	}
	d.lock = nil
	return errors.Join(errs...)
}
