// Package prefs is the persisted per-user preference store used for zoom
// scale and filter state. Values are plain strings on disk; consumers are
// responsible for falling back to defaults on corrupt content.
package prefs

import (
	"fmt"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Store persists preference values keyed by strings such as "scale/<user>".
type Store struct {
	d *diskv.Diskv
}

// Open creates a preference store rooted at basePath.
func Open(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      64 * 1024,
	})}
}

// Get returns the stored value for key, or false when missing or unreadable.
func (s *Store) Get(key string) (string, bool) {
	raw, err := s.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// Set writes the value for key.
func (s *Store) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}

// Delete removes the value for key, if present.
func (s *Store) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("erasing preference %q: %w", key, err)
	}
	return nil
}

// keyToPath maps "scale/alice" to the directory path ["scale"] and file
// name "alice", so each preference kind gets its own subdirectory.
func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pk.Path...), pk.FileName), "/")
}
