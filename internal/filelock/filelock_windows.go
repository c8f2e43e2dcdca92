//go:build windows

package filelock

import "os"

// Lock is a no-op on windows; LockFileEx-based locking is not wired up
// for this system since it only ever ships a unix CLI build today.
func Lock(f *os.File) error { return nil }

// Unlock is a no-op on windows, see Lock.
func Unlock(f *os.File) error { return nil }
