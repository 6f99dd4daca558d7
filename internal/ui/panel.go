package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders read/total as a bar with a count.
func ProgressBar(read, total, width int) string {
	if width < 5 {
		width = 5
	}
	filled := 0
	if total > 0 {
		filled = read * width / total
	}
	if filled > width {
		filled = width
	}
	t := Current()
	bar := strings.Repeat(t.BarFilled, filled) + strings.Repeat(t.BarRemaining, width-filled)
	return fmt.Sprintf("%s %d/%d read", bar, read, total)
}

// Panel frames lines in a bordered box using the current theme.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
