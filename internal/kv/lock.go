package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = "kts.lock"

// ErrLocked is returned when another live process holds the data directory.
var ErrLocked = errors.New("data directory is in use by another kts process")

// DirLock keeps a second kts process from opening the same data directory.
// The stores assume a single writer and do no locking of their own.
type DirLock struct {
	path string
}

// NewDirLock creates a lock manager for the given data directory.
func NewDirLock(dir string) *DirLock {
	return &DirLock{path: filepath.Join(dir, lockFileName)}
}

// Acquire takes the lock. Stale locks (dead PID or garbage content) are
// removed and acquisition is retried once.
func (l *DirLock) Acquire() error {
	if err := l.create(); err == nil {
		return nil
	} else if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	held, pid, err := l.holder()
	if err != nil {
		return err
	}
	if held {
		return fmt.Errorf("%w (PID %d)", ErrLocked, pid)
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lock file: %w", err)
	}

	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w (acquired during retry)", ErrLocked)
		}
		return fmt.Errorf("failed to create lock file on retry: %w", err)
	}
	return nil
}

// create writes our PID into a new lock file, failing if one exists.
func (l *DirLock) create() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// holder reports whether the existing lock file belongs to a live process.
func (l *DirLock) holder() (bool, int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("failed to read existing lock file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, 0, nil
	}
	return processExists(pid), pid, nil
}

// Release removes the lock file. Releasing twice is not an error.
func (l *DirLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// processExists checks if a process with the given PID is running.
// Uses kill with signal 0, which checks for process existence without sending a signal.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
