package storage

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

// LockTimeout bounds how long a writer waits for another process.
const LockTimeout = 5 * time.Second

var errLockTimeout = errors.New("lock timeout")

// fileLock is an exclusive flock held on a .lock sidecar of a data file.
type fileLock struct {
	file *os.File
}

// acquireLock takes an exclusive lock on path+".lock", retrying until
// timeout. A sidecar keeps the lock valid across atomic renames of path.
func acquireLock(path string, timeout time.Duration) (*fileLock, error) {
	lockPath := path + ".lock"

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)

	const retryInterval = 10 * time.Millisecond

	for {
		flockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if flockErr == nil {
			return &fileLock{file: file}, nil
		}

		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}

		time.Sleep(retryInterval)
	}
}

func (l *fileLock) release() {
	if l.file != nil {
		_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
		_ = l.file.Close()
	}
}
