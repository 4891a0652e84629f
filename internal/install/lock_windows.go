//go:build windows

package install

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

var lockFileExFn = windows.LockFileEx

// tryLockFile locks the first byte of file exclusively without waiting.
// It reports false when another handle holds the lock.
func tryLockFile(file *os.File) (bool, error) {
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK | windows.LOCKFILE_FAIL_IMMEDIATELY)
	err := lockFileExFn(windows.Handle(file.Fd()), flags, 0, 1, 0, new(windows.Overlapped))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
		return false, nil
	}
	return false, err
}

func unlockFile(file *os.File) error {
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, 1, 0, new(windows.Overlapped))
}
