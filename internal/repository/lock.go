package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/compozy/tagdeploy/internal/domain"
	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
)

const (
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

var errLockHeld = errors.New("lock held by another process")

// WorkingCopyLock serializes tag-deploy invocations in one working copy.
type WorkingCopyLock interface {
	Acquire(ctx context.Context) error
	Release() error
}

// FileLock implements WorkingCopyLock with an advisory file lock.
type FileLock struct {
	path    string
	timeout time.Duration
	lock    *flock.Flock
}

// NewFileLock creates a lock on path, waiting at most timeout to acquire it.
func NewFileLock(path string, timeout time.Duration) *FileLock {
	return &FileLock{
		path:    path,
		timeout: timeout,
		lock:    flock.New(path),
	}
}

// DefaultLockPath returns a lock file in the temp dir keyed by the absolute
// path of dir, so the working copy itself is left untouched.
func DefaultLockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), fmt.Sprintf("tag-deploy-%s.lock", hex.EncodeToString(sum[:8]))), nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire polls for the exclusive lock until it is taken or the timeout expires.
func (l *FileLock) Acquire(ctx context.Context) error {
	backoff := retry.WithMaxDuration(l.timeout, retry.NewConstant(LockRetryInterval))
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := l.lock.TryLock()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(errLockHeld)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrLockUnavailable, l.path, err)
	}
	return nil
}

// Release unlocks the file. Releasing an unheld lock is a no-op.
func (l *FileLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	return nil
}
