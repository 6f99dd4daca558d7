package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shelf/internal/model"
	"github.com/Makepad-fr/shelf/internal/ui"
)

// bookItem adapts a Book to bubbles/list.Item. pos is its index in the
// library, which differs from the list index while a filter is active.
type bookItem struct {
	pos  int
	book model.Book
}

func (i bookItem) Title() string       { return ui.DisplayTitle(i.book.Title) }
func (i bookItem) Description() string { return i.book.Author }
func (i bookItem) FilterValue() string { return ui.DisplayTitle(i.book.Title) + " " + i.book.Author }

func toItems(books []model.Book) []list.Item {
	out := make([]list.Item, 0, len(books))
	for i, b := range books {
		out = append(out, bookItem{pos: i, book: b})
	}
	return out
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(bookItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.BookLine(it.pos+1, it.book))
}
