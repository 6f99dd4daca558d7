// Package reconcile merges a persisted book list with the default seed list.
package reconcile

import "github.com/Makepad-fr/shelf/internal/model"

// Reconcile returns the defaults, in order, with each read flag carried over
// from the stored entry of the same title, followed by every stored entry
// whose title is not a default title, in stored order.
//
// When stored holds the same title twice the later entry wins the lookup.
// Inputs are not modified and the result shares no memory with them.
func Reconcile(stored, defaults []model.Book) []model.Book {
	byTitle := make(map[string]model.Book, len(stored))
	for _, b := range stored {
		byTitle[b.Title] = b
	}

	isDefault := make(map[string]struct{}, len(defaults))
	merged := make([]model.Book, 0, len(defaults)+len(stored))
	for _, d := range defaults {
		isDefault[d.Title] = struct{}{}
		out := d.Clone()
		if ex, ok := byTitle[d.Title]; ok {
			out.Read = ex.Read
		}
		merged = append(merged, out)
	}

	for _, b := range stored {
		if _, ok := isDefault[b.Title]; !ok {
			merged = append(merged, b.Clone())
		}
	}
	return merged
}

// DuplicateTitles lists titles that occur more than once in books, in order
// of their second occurrence. Reconcile emits such defaults once per entry.
func DuplicateTitles(books []model.Book) []string {
	seen := make(map[string]int, len(books))
	var dups []string
	for _, b := range books {
		seen[b.Title]++
		if seen[b.Title] == 2 {
			dups = append(dups, b.Title)
		}
	}
	return dups
}
