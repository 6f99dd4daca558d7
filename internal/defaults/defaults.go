// Package defaults holds the seed book list merged into every stored list.
package defaults

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/shelf/internal/model"
)

// Titles are kept byte-for-byte so lists exported from the browser widget
// still match on import.
var builtin = []model.Book{
	{Title: "THE HOLY BIBLE<br>(King James Version)", Author: "The Holy Spirit", Pages: 1396, Read: true},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", Pages: 295, Read: false},
	{Title: "He Leads Me", Author: "Bro Gbile Akanni", Pages: 228, Read: true},
	{Title: "A Forest of Flowers", Author: "Ken Saro Wiwa", Pages: 281, Read: true},
}

// Builtin returns a fresh copy of the compiled-in default list.
func Builtin() []model.Book {
	return withIDs(model.CloneAll(builtin))
}

// file is the on-disk layout of a defaults file.
type file struct {
	Books []model.Book `yaml:"books"`
}

// LoadFile reads a YAML defaults file. Every entry must pass validation.
func LoadFile(path string) ([]model.Book, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	if len(f.Books) == 0 {
		return nil, fmt.Errorf("defaults file %s has no books", path)
	}
	for i, bk := range f.Books {
		if err := bk.Validate(); err != nil {
			return nil, fmt.Errorf("defaults entry %d: %w", i+1, err)
		}
	}
	return withIDs(f.Books), nil
}

// Resolve returns the defaults from path, or the builtin list when path is empty.
func Resolve(path string) ([]model.Book, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}

// Marshal renders books in the same layout LoadFile accepts.
func Marshal(books []model.Book) ([]byte, error) {
	return yaml.Marshal(file{Books: books})
}

// Signature derives a value that changes whenever the default list changes.
func Signature(books []model.Book) string {
	b, err := json.Marshal(books)
	if err != nil {
		// model.Book always marshals
		panic(err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func withIDs(books []model.Book) []model.Book {
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = model.DefaultID(books[i].Title)
		}
	}
	return books
}
