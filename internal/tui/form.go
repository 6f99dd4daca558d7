package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/shelf/internal/ui"
)

const (
	fieldTitle = iota
	fieldAuthor
	fieldPages
	fieldRead
	fieldCount
)

// addForm collects a new book. The read checkbox is the last focus stop.
type addForm struct {
	inputs [fieldRead]textinput.Model
	read   bool
	focus  int
	err    string
}

func newAddForm() addForm {
	var f addForm
	specs := [fieldRead]struct {
		prompt, placeholder string
		limit               int
	}{
		fieldTitle:  {"Title  ", "The Left Hand of Darkness", 200},
		fieldAuthor: {"Author ", "Ursula K. Le Guin", 120},
		fieldPages:  {"Pages  ", "304", 6},
	}
	for i, s := range specs {
		ti := textinput.New()
		ti.Prompt = s.prompt
		ti.Placeholder = s.placeholder
		ti.CharLimit = s.limit
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Focus()
	return f
}

// values returns the trimmed inputs; unparsable pages read as 0 so that
// validation rejects them.
func (f addForm) values() (title, author string, pages int, read bool) {
	title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	author = strings.TrimSpace(f.inputs[fieldAuthor].Value())
	pages, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldPages].Value()))
	if err != nil {
		pages = 0
	}
	return title, author, pages, f.read
}

func (f *addForm) move(delta int) {
	if f.focus < fieldRead {
		f.inputs[f.focus].Blur()
	}
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	if f.focus < fieldRead {
		f.inputs[f.focus].Focus()
	}
}

// update handles keys that edit the form. Submit and cancel are left to the caller.
func (f addForm) update(msg tea.Msg) (addForm, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.move(1)
			return f, nil
		case "shift+tab", "up":
			f.move(-1)
			return f, nil
		case " ", "x":
			if f.focus == fieldRead {
				f.read = !f.read
				return f, nil
			}
		}
	}
	if f.focus == fieldRead {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f addForm) view() string {
	t := ui.Current()
	title := "Add book"
	if f.err != "" {
		title += "  " + t.Error.Render(f.err)
	}
	lines := []string{title}
	for i := range f.inputs {
		lines = append(lines, f.inputs[i].View())
	}
	box := t.BoxUnread
	if f.read {
		box = t.BoxRead
	}
	check := "Read   " + box
	if f.focus == fieldRead {
		check = t.Selected.Render(check)
	}
	lines = append(lines, check, t.Muted.Render("tab next · space toggle read · enter save · esc cancel"))
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
