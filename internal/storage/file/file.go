// Package file persists storage slots as JSON files under a state directory,
// one file per key. It is the session-local analogue of browser storage: small
// values, synchronous access, atomic replace on write.
package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/cart-session/internal/domain/cart"
)

var _ cart.Storage = (*Storage)(nil)

// Storage implements cart.Storage over a directory of <key>.json files.
type Storage struct {
	dir string
}

// New creates the state directory if needed and returns a Storage over it.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	return &Storage{dir: dir}, nil
}

// Read returns the value stored under key, or cart.ErrNotExist when no file
// for the key exists.
func (s *Storage) Read(key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", cart.ErrNotExist
		}
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// Write stores value under key. The value is written to a temp file first and
// renamed into place, so readers never observe a truncated document.
func (s *Storage) Write(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename %s", tmpName)
	}
	return nil
}

// path maps a key to its file, rejecting keys that would escape the state
// directory.
func (s *Storage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return "", errors.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
