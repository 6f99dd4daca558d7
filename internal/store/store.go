// Package store persists the book list and the defaults signature on top of
// a small key-value layer.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shelf/internal/model"
)

// Fixed storage keys.
const (
	BooksKey     = "books"
	SignatureKey = "defaults_sig"
	// BackupKey keeps the last stored list that could not be read in full.
	BackupKey = "books.bak"
)

// ErrMalformed marks stored data that exists but cannot be decoded.
var ErrMalformed = errors.New("malformed stored data")

// KV is the key-value persistence layer a Store writes through.
type KV interface {
	// Get returns ok=false when key has never been set.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

// Store reads and writes the book list and signature under fixed keys.
type Store struct {
	kv  KV
	log *zap.Logger
}

func New(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log.Named("store")}
}

// LoadRaw returns the stored list. ok is false when nothing was stored yet.
// Records that cannot be decoded are dropped with a warning. A document that
// is not a JSON array yields an error wrapping ErrMalformed. Either way the
// raw bytes are copied to BackupKey before the caller can overwrite them.
func (s *Store) LoadRaw() ([]model.Book, bool, error) {
	b, ok, err := s.kv.Get(BooksKey)
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", BooksKey, err)
	}
	if !ok {
		return nil, false, nil
	}
	books, dropped, err := DecodeRecords(b)
	if err != nil {
		s.backup(b)
		return nil, true, err
	}
	if len(dropped) > 0 {
		s.log.Warn("dropped unreadable stored books", zap.Ints("positions", dropped))
		s.backup(b)
	}
	s.log.Debug("loaded books", zap.Int("count", len(books)))
	return books, true, nil
}

func (s *Store) backup(raw []byte) {
	if err := s.kv.Set(BackupKey, raw); err != nil {
		s.log.Warn("could not back up stored books", zap.Error(err))
		return
	}
	s.log.Warn("stored books backed up", zap.String("key", BackupKey))
}

func (s *Store) SaveRaw(books []model.Book) error {
	if books == nil {
		books = []model.Book{}
	}
	b, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(BooksKey, b); err != nil {
		return fmt.Errorf("set %s: %w", BooksKey, err)
	}
	s.log.Debug("saved books", zap.Int("count", len(books)))
	return nil
}

func (s *Store) SaveSignature(sig string) error {
	b, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(SignatureKey, b); err != nil {
		return fmt.Errorf("set %s: %w", SignatureKey, err)
	}
	return nil
}

// Signature returns the signature saved with the last write, if any.
func (s *Store) Signature() (string, bool, error) {
	b, ok, err := s.kv.Get(SignatureKey)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", SignatureKey, err)
	}
	if !ok {
		return "", false, nil
	}
	var sig string
	if err := json.Unmarshal(b, &sig); err != nil {
		return "", true, fmt.Errorf("%w: %s: %v", ErrMalformed, SignatureKey, err)
	}
	return sig, true, nil
}

func (s *Store) Close() error { return s.kv.Close() }

// DecodeRecords parses a JSON array record by record. Records that fail to
// decode are skipped and their 1-based positions returned in dropped. Only a
// document that is not an array at all is an ErrMalformed error.
func DecodeRecords(b []byte) (books []model.Book, dropped []int, err error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	books = make([]model.Book, 0, len(raws))
	for i, raw := range raws {
		var bk model.Book
		if err := json.Unmarshal(raw, &bk); err != nil {
			dropped = append(dropped, i+1)
			continue
		}
		books = append(books, bk)
	}
	return books, dropped, nil
}

// DecodeBooks parses a JSON array of books, as written by SaveRaw or by the
// browser widget's local storage. Any bad record fails the whole document.
func DecodeBooks(b []byte) ([]model.Book, error) {
	var books []model.Book
	if err := json.Unmarshal(b, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}
