package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.TerminalColor
	BoxUnchecked, BoxChecked                      string
	Border                                        lipgloss.Border
	SymDone, SymPending                           string
}

var current = classic()

// SetTheme selects classic, neon or mono. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = Theme{
			Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
			Success: lipgloss.Color("10"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			Border:  lipgloss.RoundedBorder(),
			SymDone: "✔", SymPending: "•",
		}
	case "mono":
		none := lipgloss.NoColor{}
		current = Theme{
			Title: none, Muted: none, Accent: none, Success: none, Error: none, Pending: none,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border:  lipgloss.ASCIIBorder(),
			SymDone: "x", SymPending: "-",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title: lipgloss.NoColor{}, Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
		Success: lipgloss.Color("42"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("214"),
		BoxUnchecked: "☐", BoxChecked: "☑",
		Border:  lipgloss.NormalBorder(),
		SymDone: "✔", SymPending: "•",
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
