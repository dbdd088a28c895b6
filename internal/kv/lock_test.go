package kv

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestDirLock_Acquire_Success(t *testing.T) {
	tmpDir := t.TempDir()

	lock := NewDirLock(tmpDir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, lockFileName))
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		t.Fatalf("failed to parse PID from lock file: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
	}
}

func TestDirLock_Acquire_AlreadyLocked(t *testing.T) {
	tmpDir := t.TempDir()

	// A lock file with our own PID simulates a live holder.
	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	err := NewDirLock(tmpDir).Acquire()
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestDirLock_Acquire_StaleLock(t *testing.T) {
	tmpDir := t.TempDir()

	// PID 99999999 is unlikely to exist
	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte("99999999"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	if err := NewDirLock(tmpDir).Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(lockPath)
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("expected lock to be rewritten with our PID, got %q", data)
	}
}

func TestDirLock_Acquire_InvalidLockFile(t *testing.T) {
	tmpDir := t.TempDir()

	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte("not-a-pid"), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	if err := NewDirLock(tmpDir).Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDirLock_Release(t *testing.T) {
	tmpDir := t.TempDir()
	lock := NewDirLock(tmpDir)

	if err := lock.Acquire(); err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, lockFileName)); !os.IsNotExist(err) {
		t.Error("lock file should be removed")
	}

	// Idempotent
	if err := lock.Release(); err != nil {
		t.Errorf("second Release should succeed, got %v", err)
	}

	// Re-acquirable after release
	if err := lock.Acquire(); err != nil {
		t.Errorf("re-acquire after release: %v", err)
	}
}
