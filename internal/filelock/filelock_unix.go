//go:build !windows

// Package filelock takes an advisory exclusive lock on the backing
// index file for the lifetime of one open engine, giving teeth to the
// single-writer discipline the design assumes rather than leaving it
// as a documented-only expectation.
package filelock

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Lock takes a non-blocking advisory exclusive lock on f. It fails
// immediately — rather than blocking — if another process already
// holds the lock, since this system has no notion of a second writer
// waiting its turn.
func Lock(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return fmt.Errorf("filelock: lock %s: %w", f.Name(), err)
	}
	return nil
}

// Unlock releases a lock taken by Lock.
func Unlock(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("filelock: unlock %s: %w", f.Name(), err)
	}
	return nil
}
