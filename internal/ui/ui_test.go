package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shelf/internal/model"
)

func useMono(t *testing.T) {
	t.Helper()
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })
}

var sample = []model.Book{
	{Title: "THE HOLY BIBLE<br>(King James Version)", Author: "The Holy Spirit", Pages: 1396, Read: true},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", Pages: 295},
	{Title: "Dune", Author: "Herbert", Pages: 412, Read: true},
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "THE HOLY BIBLE (King James Version)", DisplayTitle(sample[0].Title))
	assert.Equal(t, "a b", DisplayTitle("a<br/>  b"))
	assert.Equal(t, "plain", DisplayTitle("plain"))
}

func TestProgressBar(t *testing.T) {
	useMono(t)
	assert.Equal(t, "#####----- 1/2 read", ProgressBar(1, 2, 10))
	assert.Equal(t, "----- 0/0 read", ProgressBar(0, 0, 1))
	assert.Equal(t, "########## 3/3 read", ProgressBar(3, 3, 10))
}

func TestStats(t *testing.T) {
	read, unread := Stats(sample)
	assert.Equal(t, 2, read)
	assert.Equal(t, 1, unread)
}

func TestFlatLines(t *testing.T) {
	useMono(t)
	lines := FlatLines(sample)
	require.Len(t, lines, 3)
	assert.Equal(t, " 1. [x] THE HOLY BIBLE (King James Version)  The Holy Spirit · 1396 pages", lines[0])
	assert.Equal(t, " 2. [ ] The Hobbit  J.R.R. Tolkien · 295 pages", lines[1])

	assert.Equal(t, []string{"no books"}, FlatLines(nil))
}

func TestGroupLinesKeepListPositions(t *testing.T) {
	useMono(t)
	lines := GroupLines(sample)
	assert.Equal(t, "Unread", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], " 2. [ ] The Hobbit"))
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Read", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], " 1. [x]"))
	assert.True(t, strings.HasPrefix(lines[5], " 3. [x] Dune"))

	lines = GroupLines(sample[1:2])
	assert.Equal(t, "(none)", lines[len(lines)-1])
}

func TestLongTitlesAreTruncated(t *testing.T) {
	useMono(t)
	line := BookLine(1, model.Book{Title: strings.Repeat("x", 100), Author: "a", Pages: 1})
	assert.Contains(t, line, strings.Repeat("x", maxTitleWidth-3)+"...")
	assert.NotContains(t, line, strings.Repeat("x", maxTitleWidth))
}

func TestHeader(t *testing.T) {
	useMono(t)
	assert.Equal(t, "Books  ok 2  • 1  Total 3", Header(sample))
}

func TestCard(t *testing.T) {
	card := Card(2, model.Book{ID: "abc", Title: "The Hobbit", Author: "J.R.R. Tolkien", Pages: 295})
	assert.Contains(t, card, "# 2. The Hobbit")
	assert.Contains(t, card, "**Author:** J.R.R. Tolkien")
	assert.Contains(t, card, "not read yet")
	assert.Contains(t, card, "`abc`")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(Card(1, sample[1]), 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Tolkien")
}

func TestStatusLines(t *testing.T) {
	useMono(t)
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "ok added\nerror: nope\n", buf.String())
}

func TestPanelFramesLines(t *testing.T) {
	useMono(t)
	out := Panel([]string{"one", "two"})
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "┌")
}
