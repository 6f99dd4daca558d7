package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSON-backed key-value storage: one human-readable file per key inside a
// directory. No locking; a local single-user CLI is the only writer.

const fileExt = ".json"

type Store struct {
	dir string
}

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("jsonstore: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

// Set replaces the file through a rename so readers never see half a write.
func (s *Store) Set(key string, value []byte) error {
	p := s.path(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// Dir is where the key files live.
func (s *Store) Dir() string { return s.dir }
