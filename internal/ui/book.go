package ui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/shelf/internal/model"
)

const maxTitleWidth = 60

var titleMarkup = strings.NewReplacer("<br>", " ", "<br/>", " ", "<br />", " ")

// DisplayTitle turns the HTML line breaks some stored titles carry into spaces.
func DisplayTitle(title string) string {
	return strings.Join(strings.Fields(titleMarkup.Replace(title)), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Stats counts read and unread books.
func Stats(books []model.Book) (read, unread int) {
	for _, b := range books {
		if b.Read {
			read++
		} else {
			unread++
		}
	}
	return
}

// BookLine renders one list row; pos is the 1-based index shown to the user.
func BookLine(pos int, b model.Book) string {
	t := Current()
	box, style := t.Muted.Render(t.BoxUnread), t.Title.UnsetBold()
	if b.Read {
		box, style = t.Success.Render(t.BoxRead), t.ReadText
	}
	title := style.Render(truncate(DisplayTitle(b.Title), maxTitleWidth))
	meta := t.Muted.Render(fmt.Sprintf("%s · %d pages", b.Author, b.Pages))
	return fmt.Sprintf("%s %s %s  %s", t.Muted.Render(fmt.Sprintf("%2d.", pos)), box, title, meta)
}

// FlatLines renders every book in list order.
func FlatLines(books []model.Book) []string {
	if len(books) == 0 {
		return []string{Current().Muted.Render("no books")}
	}
	out := make([]string, 0, len(books))
	for i, b := range books {
		out = append(out, BookLine(i+1, b))
	}
	return out
}

// GroupLines splits the list into unread then read sections. Positions stay
// those of the full list so they can be passed to `read` and `rm`.
func GroupLines(books []model.Book) []string {
	t := Current()
	var unread, read []string
	for i, b := range books {
		if b.Read {
			read = append(read, BookLine(i+1, b))
		} else {
			unread = append(unread, BookLine(i+1, b))
		}
	}
	section := func(name string, rows []string) []string {
		out := []string{t.Accent.Render(name)}
		if len(rows) == 0 {
			return append(out, t.Muted.Render("(none)"))
		}
		return append(out, rows...)
	}
	lines := section("Unread", unread)
	lines = append(lines, "")
	return append(lines, section("Read", read)...)
}

// Header is the summary row shown above a list.
func Header(books []model.Book) string {
	t := Current()
	read, unread := Stats(books)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Books"),
		t.Success.Render(t.SymOK), read,
		t.Pending.Render("•"), unread,
		t.Accent.Render("Total"), len(books),
	)
}

// Card renders a single book as markdown.
func Card(pos int, b model.Book) string {
	status := "not read yet"
	if b.Read {
		status = "read"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %d. %s\n\n", pos, DisplayTitle(b.Title))
	fmt.Fprintf(&sb, "- **Author:** %s\n", b.Author)
	fmt.Fprintf(&sb, "- **Pages:** %d\n", b.Pages)
	fmt.Fprintf(&sb, "- **Status:** %s\n", status)
	if b.ID != "" {
		fmt.Fprintf(&sb, "\n`%s`\n", b.ID)
	}
	return sb.String()
}
