package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/shelf/internal/store/jsonstore"
	"github.com/Makepad-fr/shelf/internal/store/memstore"
	"github.com/Makepad-fr/shelf/internal/store/sqlitestore"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// sqliteFileName is the database file created inside the store directory.
const sqliteFileName = "shelf.db"

// Open returns the KV for backend rooted at dir.
func Open(backend, dir string) (KV, error) {
	switch backend {
	case BackendJSON, "":
		return jsonstore.New(dir)
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		return sqlitestore.Open(filepath.Join(dir, sqliteFileName))
	case BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q (want json, sqlite or memory)", backend)
}
