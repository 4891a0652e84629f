package install

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/conn-castle/modsync/internal/messages"
)

var lockSleep = time.Sleep

var lockPollEvery = 100 * time.Millisecond

// DefaultLockTimeout bounds how long an install waits for another process holding the same mod.
const DefaultLockTimeout = 30 * time.Second

// keyedMutex serialises work per key within one process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

type fileLock struct {
	file *os.File
}

// acquireFileLock opens or creates path and takes an exclusive advisory lock,
// polling until timeout when another process holds it.
func acquireFileLock(sys System, path string, timeout time.Duration) (*fileLock, error) {
	if err := sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.InstallCreateDirFmt, ErrFilesystem, filepath.Dir(path), err)
	}
	file, err := sys.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallOpenLockFmt, ErrFilesystem, path, err)
	}
	if err := lockFile(file, timeout); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.InstallLockFmt, ErrFilesystem, path, err)
	}
	return &fileLock{file: file}, nil
}

// release unlocks and closes the file lock.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFile(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

func lockFile(file *os.File, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		locked, err := tryLockFile(file)
		if err != nil {
			return err
		}
		if locked {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.InstallLockTimeoutFmt, timeout)
		}
		lockSleep(lockPollEvery)
	}
}
