package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, ReadText                            lipgloss.Style

	Border                  lipgloss.Border
	BorderColor             lipgloss.TerminalColor
	BoxUnread, BoxRead      string
	SymOK, SymFail          string
	BarFilled, BarRemaining string
}

var current Theme

func init() { SetTheme("classic") }

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			ReadText: lipgloss.NewStyle().Faint(true),

			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("201"),
			BoxUnread: "◻", BoxRead: "◼",
			SymOK: "✔", SymFail: "✖",
			BarFilled: "█", BarRemaining: "░",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Selected: plain, ReadText: plain,

			Border: lipgloss.NormalBorder(), BorderColor: lipgloss.NoColor{},
			BoxUnread: "[ ]", BoxRead: "[x]",
			SymOK: "ok", SymFail: "error:",
			BarFilled: "#", BarRemaining: "-",
		}
	default: // classic
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			ReadText: lipgloss.NewStyle().Faint(true).Strikethrough(true),

			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
			BoxUnread: "☐", BoxRead: "☑",
			SymOK: "✔", SymFail: "✖",
			BarFilled: "█", BarRemaining: "░",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
