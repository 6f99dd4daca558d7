// Package library owns the in-memory book list for a session and keeps it in
// step with persistent storage: every mutation is persisted before it is
// committed in memory.
package library

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shelf/internal/defaults"
	"github.com/Makepad-fr/shelf/internal/model"
	"github.com/Makepad-fr/shelf/internal/reconcile"
	"github.com/Makepad-fr/shelf/internal/store"
)

// ErrIndexOutOfRange is returned by positional mutations given a bad index.
var ErrIndexOutOfRange = errors.New("index out of range")

// Persister is the storage a Library reads from and writes through.
type Persister interface {
	LoadRaw() ([]model.Book, bool, error)
	SaveRaw([]model.Book) error
	Signature() (string, bool, error)
	SaveSignature(string) error
}

type Library struct {
	store    Persister
	defaults []model.Book
	sig      string
	log      *zap.Logger

	books   []model.Book
	prevSig string // signature found in storage before Load overwrote it
	loaded  bool
}

// New does not touch storage; call Load before anything else.
func New(p Persister, defs []model.Book, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	defs = model.CloneAll(defs)
	return &Library{
		store:    p,
		defaults: defs,
		sig:      defaults.Signature(defs),
		log:      log.Named("library"),
	}
}

// Load merges whatever is stored with the defaults and writes the result back.
// Stored data that cannot be parsed at all is treated as an empty list;
// individual records that fail validation are dropped.
func (l *Library) Load() error {
	stored, ok, err := l.store.LoadRaw()
	switch {
	case errors.Is(err, store.ErrMalformed):
		l.log.Warn("stored books are unreadable, starting from defaults", zap.Error(err))
		stored = nil
	case err != nil:
		return fmt.Errorf("load books: %w", err)
	case !ok:
		l.log.Debug("no stored books, seeding from defaults")
	}

	stored = l.dropInvalid(stored)

	prev, _, err := l.store.Signature()
	if err != nil {
		l.log.Warn("stored defaults signature is unreadable", zap.Error(err))
	}
	l.prevSig = prev

	if dups := reconcile.DuplicateTitles(l.defaults); len(dups) > 0 {
		l.log.Warn("default list repeats titles; each copy is kept", zap.Strings("titles", dups))
	}

	merged := reconcile.Reconcile(assignIDs(stored), l.defaults)
	if err := l.persist(merged); err != nil {
		return err
	}
	l.books = merged
	l.loaded = true
	l.log.Debug("library loaded",
		zap.Int("stored", len(stored)),
		zap.Int("merged", len(merged)),
		zap.Bool("defaults_changed", l.DefaultsChanged()),
	)
	return nil
}

// dropInvalid removes stored records that fail validation, such as a missing
// title or non-positive pages.
func (l *Library) dropInvalid(stored []model.Book) []model.Book {
	valid := stored[:0:0]
	var dropped []int
	for i, b := range stored {
		if err := b.Validate(); err != nil {
			dropped = append(dropped, i+1)
			l.log.Warn("dropping invalid stored book", zap.Int("position", i+1), zap.Error(err))
			continue
		}
		valid = append(valid, b)
	}
	if len(dropped) > 0 {
		l.log.Warn("stored books failed validation", zap.Ints("positions", dropped))
	}
	return valid
}

// Books returns a copy of the current list.
func (l *Library) Books() []model.Book { return model.CloneAll(l.books) }

func (l *Library) Len() int { return len(l.books) }

// Get returns the book at index.
func (l *Library) Get(index int) (model.Book, error) {
	if err := l.checkIndex(index); err != nil {
		return model.Book{}, err
	}
	return l.books[index].Clone(), nil
}

// Add appends a new book. Title and author are trimmed; invalid input
// returns a *model.ValidationError and leaves the list untouched.
func (l *Library) Add(title, author string, pages int, read bool) (model.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if err := model.ValidateInput(title, author, pages); err != nil {
		return model.Book{}, err
	}
	b := model.Book{ID: model.NewID(), Title: title, Author: author, Pages: pages, Read: read}
	err := l.mutate("add", func(books []model.Book) ([]model.Book, error) {
		return append(books, b), nil
	})
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// Remove deletes the book at index.
func (l *Library) Remove(index int) (model.Book, error) {
	var removed model.Book
	err := l.mutate("remove", func(books []model.Book) ([]model.Book, error) {
		if err := l.checkIndex(index); err != nil {
			return nil, err
		}
		removed = books[index]
		return append(books[:index], books[index+1:]...), nil
	})
	return removed, err
}

// Toggle flips the read flag of the book at index and returns the new state.
func (l *Library) Toggle(index int) (model.Book, error) {
	var toggled model.Book
	err := l.mutate("toggle", func(books []model.Book) ([]model.Book, error) {
		if err := l.checkIndex(index); err != nil {
			return nil, err
		}
		books[index].Read = !books[index].Read
		toggled = books[index]
		return books, nil
	})
	return toggled, err
}

// Import merges an external list, such as a browser local-storage export,
// as though it had been stored. Books whose non-default title is already on
// the list are skipped; imported read flags win for default titles.
// It returns the number of books added to the list.
func (l *Library) Import(books []model.Book) (int, error) {
	before := len(l.books)
	err := l.mutate("import", func(current []model.Book) ([]model.Book, error) {
		have := make(map[string]struct{}, len(current))
		for _, b := range current {
			have[b.Title] = struct{}{}
		}
		isDefault := make(map[string]struct{}, len(l.defaults))
		for _, d := range l.defaults {
			isDefault[d.Title] = struct{}{}
		}
		stored := current
		for _, b := range assignIDs(model.CloneAll(books)) {
			_, known := have[b.Title]
			_, def := isDefault[b.Title]
			if known && !def {
				continue
			}
			stored = append(stored, b)
			have[b.Title] = struct{}{}
		}
		return reconcile.Reconcile(stored, l.defaults), nil
	})
	if err != nil {
		return 0, err
	}
	return len(l.books) - before, nil
}

// Defaults returns a copy of the default list in use.
func (l *Library) Defaults() []model.Book { return model.CloneAll(l.defaults) }

// DefaultsChanged reports whether the signature stored before Load differs
// from the current defaults. It is informational; the merge always runs.
func (l *Library) DefaultsChanged() bool {
	return l.prevSig != "" && l.prevSig != l.sig
}

// Status summarises the list and its defaults signature.
type Status struct {
	Total           int
	Read            int
	Signature       string
	StoredSignature string
	DefaultsChanged bool
}

func (l *Library) Status() Status {
	st := Status{
		Total:           len(l.books),
		Signature:       l.sig,
		StoredSignature: l.prevSig,
		DefaultsChanged: l.DefaultsChanged(),
	}
	for _, b := range l.books {
		if b.Read {
			st.Read++
		}
	}
	return st
}

func (l *Library) checkIndex(index int) error {
	if index < 0 || index >= len(l.books) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(l.books), index)
	}
	return nil
}

// mutate applies fn to a copy of the list, persists the result and only then
// swaps it in.
func (l *Library) mutate(op string, fn func([]model.Book) ([]model.Book, error)) error {
	if !l.loaded {
		return fmt.Errorf("%s: library not loaded", op)
	}
	next, err := fn(model.CloneAll(l.books))
	if err != nil {
		return err
	}
	if err := l.persist(next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	l.books = next
	l.log.Debug("mutation persisted", zap.String("op", op), zap.Int("count", len(next)))
	return nil
}

// persist writes the signature before the list, so the list write is the
// last step and a failure leaves the stored list as it was.
func (l *Library) persist(books []model.Book) error {
	if err := l.store.SaveSignature(l.sig); err != nil {
		return fmt.Errorf("save signature: %w", err)
	}
	if err := l.store.SaveRaw(books); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	return nil
}

// assignIDs gives a random id to stored books written before ids existed.
func assignIDs(books []model.Book) []model.Book {
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = model.NewID()
		}
	}
	return books
}
