// Package persist stores the engine savedata blob on disk. The blob is
// opaque to the client; only the engine knows its layout.
package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Store persists the savedata blob at a fixed path.
type Store struct {
	path string
	log  pslog.Logger
}

// NewStore constructs a store writing to path.
func NewStore(path string) (*Store, error) {
	return NewStoreWithLogger(path, nil)
}

// NewStoreWithLogger constructs a store with logging.
func NewStoreWithLogger(path string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("savedata path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("savedata", path)
	}
	return &Store{path: path, log: logger}, nil
}

// Path returns the location the blob is written to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the blob from disk. A missing file is not an error; the second
// return reports whether a blob was found.
func (s *Store) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("savedata load miss")
			}
			return nil, false, nil
		}
		if s.log != nil {
			s.log.Warn("savedata load failed", "err", err)
		}
		return nil, false, err
	}
	if s.log != nil {
		s.log.Debug("savedata load ok", "bytes", len(data))
	}
	return data, true, nil
}

// Save writes the blob atomically: temp file in the same directory, fsync,
// tighten permissions, then rename over the target. The savedata holds key
// material so the file is always 0600.
func (s *Store) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return s.saveFailed(err)
	}
	tmp, err := os.CreateTemp(dir, "savedata-*.bin")
	if err != nil {
		return s.saveFailed(err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if s.log != nil {
		s.log.Trace("savedata save ok", "bytes", len(data))
	}
	return nil
}

func (s *Store) saveFailed(err error) error {
	if s.log != nil {
		s.log.Warn("savedata save failed", "err", err)
	}
	return err
}
