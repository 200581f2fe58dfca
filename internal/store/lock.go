package store

import (
	"os"
	"path/filepath"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/flock"
)

// lockFileName is the lock file guarding writes to the data directory.
const lockFileName = ".lock"

// withLock runs fn while holding an exclusive lock on the data directory,
// so concurrent rota processes cannot interleave read-modify-write cycles.
// The lock is non-blocking: a held lock fails fast instead of queueing.
func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return rotaerrors.Wrap(err, "failed to create data directory")
	}

	path := filepath.Join(s.dir, lockFileName)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- path is rooted in the configured data dir
	if err != nil {
		return rotaerrors.Wrap(err, "failed to open lock file")
	}
	defer func() { _ = f.Close() }()

	if err := flock.Exclusive(f.Fd()); err != nil {
		return rotaerrors.Wrap(err, "data directory is locked by another rota process")
	}
	defer func() { _ = flock.Unlock(f.Fd()) }()

	return fn()
}
