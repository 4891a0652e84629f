//go:build unix

package install

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestAcquireFileLock_PollsUntilTimeout(t *testing.T) {
	origFlock, origSleep := flockFn, lockSleep
	attempts := 0
	flockFn = func(fd int, how int) error {
		if how&unix.LOCK_EX != 0 {
			attempts++
			return unix.EWOULDBLOCK
		}
		return nil
	}
	lockSleep = func(time.Duration) {}
	t.Cleanup(func() {
		flockFn, lockSleep = origFlock, origSleep
	})

	_, err := acquireFileLock(RealSystem{}, filepath.Join(t.TempDir(), "x.lock"), time.Nanosecond)
	require.ErrorIs(t, err, ErrFilesystem)
	assert.GreaterOrEqual(t, attempts, 1)
}

func TestAcquireFileLock_UnexpectedFlockError(t *testing.T) {
	origFlock := flockFn
	boom := errors.New("flock failed")
	flockFn = func(int, int) error { return boom }
	t.Cleanup(func() { flockFn = origFlock })

	_, err := acquireFileLock(RealSystem{}, filepath.Join(t.TempDir(), "x.lock"), time.Second)
	require.ErrorIs(t, err, ErrFilesystem)
	assert.ErrorIs(t, err, boom)
}
