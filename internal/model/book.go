package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Book is the domain model for a tracked book.
// Title is the merge key against the default list; ID is the stable handle.
type Book struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Pages  int    `json:"pages" yaml:"pages"`
	Read   bool   `json:"read" yaml:"read"`

	// Extra carries JSON fields this version does not know about, so they
	// survive a load/save round trip.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// defaultNamespace scopes the name-based ids given to default books.
var defaultNamespace = uuid.MustParse("4f9c1a7e-3b52-4d0e-9a61-2c8f0d5e7b13")

// DefaultID returns the deterministic id for a default book with the given title.
func DefaultID(title string) string {
	return uuid.NewSHA1(defaultNamespace, []byte(title)).String()
}

// NewID returns a fresh random id for a user-added book.
func NewID() string { return uuid.NewString() }

var knownFields = map[string]struct{}{
	"id": {}, "title": {}, "author": {}, "pages": {}, "read": {},
}

// bookFields has Book's field set without its methods.
type bookFields Book

func (b Book) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(bookFields(b))
	if err != nil {
		return nil, err
	}
	if len(b.Extra) == 0 {
		return base, nil
	}
	out := make(map[string]json.RawMessage, len(b.Extra)+len(knownFields))
	for k, v := range b.Extra {
		if _, known := knownFields[k]; !known {
			out[k] = v
		}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

func (b *Book) UnmarshalJSON(data []byte) error {
	var f bookFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	f.Extra = nil
	for k, v := range all {
		if _, known := knownFields[k]; known {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]json.RawMessage)
		}
		f.Extra[k] = v
	}
	*b = Book(f)
	return nil
}

// Clone returns a copy that shares no memory with b.
func (b Book) Clone() Book {
	if b.Extra != nil {
		extra := make(map[string]json.RawMessage, len(b.Extra))
		for k, v := range b.Extra {
			extra[k] = append(json.RawMessage(nil), v...)
		}
		b.Extra = extra
	}
	return b
}

// CloneAll copies a list element by element.
func CloneAll(books []Book) []Book {
	if books == nil {
		return nil
	}
	out := make([]Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}

func (b Book) String() string {
	return fmt.Sprintf("%q by %s (%d pages, read=%t)", b.Title, b.Author, b.Pages, b.Read)
}
