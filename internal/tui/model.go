// Package tui is the interactive book list. Every change goes straight
// through the library, so it is on disk before the next key is handled.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shelf/internal/library"
	"github.com/Makepad-fr/shelf/internal/model"
	"github.com/Makepad-fr/shelf/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	formHeight    = 9
)

type Model struct {
	lib  *library.Library
	list list.Model

	adding bool
	form   addForm

	status string // outcome of the last action
	err    string

	width, height int
}

// New builds the model over an already loaded library.
func New(lib *library.Library) Model {
	l := list.New(toItems(lib.Books()), itemDelegate{}, defaultWidth, defaultHeight)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("book", "books")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle read"))
	removeBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, removeBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, removeBind} }

	m := Model{lib: lib, list: l, width: defaultWidth, height: defaultHeight}
	m.list.Title = ui.Header(lib.Books())
	return m
}

// Run starts the program and blocks until the user quits.
func Run(lib *library.Library, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(lib), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateForm(msg)
	}

	// keys go to the filter input while the user is typing a filter
	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			if k.String() == "esc" && m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, tea.Quit
		case " ":
			return m.toggleSelected()
		case "d":
			return m.removeSelected()
		case "a":
			m.adding = true
			m.form = newAddForm()
			m.err = ""
			m.resize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.adding = false
			m.resize()
			return m, nil
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	title, author, pages, read := m.form.values()
	b, err := m.lib.Add(title, author, pages, read)
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		m.form.err = verr.Error()
		return m, nil
	case err != nil:
		m.form.err = err.Error()
		return m, nil
	}
	m.adding = false
	m.status = fmt.Sprintf("added %q", ui.DisplayTitle(b.Title))
	m.err = ""
	cmd := m.refresh()
	m.list.Select(len(m.list.Items()) - 1)
	m.resize()
	return m, cmd
}

func (m Model) selected() (bookItem, bool) {
	it, ok := m.list.SelectedItem().(bookItem)
	return it, ok
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	b, err := m.lib.Toggle(it.pos)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	state := "unread"
	if b.Read {
		state = "read"
	}
	m.status = fmt.Sprintf("marked %q %s", ui.DisplayTitle(b.Title), state)
	m.err = ""
	idx := m.list.Index()
	cmd := m.refresh()
	m.list.Select(idx)
	return m, cmd
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	b, err := m.lib.Remove(it.pos)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("removed %q", ui.DisplayTitle(b.Title))
	m.err = ""
	idx := m.list.Index()
	cmd := m.refresh()
	if n := len(m.list.Items()); idx >= n && n > 0 {
		idx = n - 1
	}
	m.list.Select(idx)
	return m, cmd
}

// refresh reloads the list items from the library.
func (m *Model) refresh() tea.Cmd {
	books := m.lib.Books()
	m.list.Title = ui.Header(books)
	return m.list.SetItems(toItems(books))
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= formHeight
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()
	if m.adding {
		content += "\n" + m.form.view()
	}
	switch {
	case m.err != "":
		content += "\n" + t.Error.Render(t.SymFail+" "+m.err)
	case m.status != "":
		content += "\n" + t.Success.Render(t.SymOK+" "+m.status)
	}
	return ui.Panel([]string{content})
}
