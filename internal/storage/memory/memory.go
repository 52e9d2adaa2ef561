// Package memory provides a map-backed storage slot for tests and for hosts
// that keep cart state ephemeral.
package memory

import (
	"github.com/xenking/cart-session/internal/domain/cart"
)

var _ cart.Storage = (*Storage)(nil)

// Storage implements cart.Storage in memory. The zero value is not usable;
// construct with New.
type Storage struct {
	slots map[string]string
}

// New returns an empty in-memory Storage.
func New() *Storage {
	return &Storage{slots: make(map[string]string)}
}

// Read returns the value stored under key, or cart.ErrNotExist.
func (s *Storage) Read(key string) (string, error) {
	v, ok := s.slots[key]
	if !ok {
		return "", cart.ErrNotExist
	}
	return v, nil
}

// Write stores value under key, replacing any previous value.
func (s *Storage) Write(key, value string) error {
	s.slots[key] = value
	return nil
}
