package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/ui"
)

type styles struct {
	title    lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	err      lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	label    lipgloss.Style
	modal    lipgloss.Style
}

func newStyles(t ui.Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		success:  lipgloss.NewStyle().Foreground(t.Success),
		pending:  lipgloss.NewStyle().Foreground(t.Pending),
		accent:   lipgloss.NewStyle().Foreground(t.Accent),
		muted:    lipgloss.NewStyle().Faint(true),
		err:      lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:     lipgloss.NewStyle().Faint(true),
		label:    lipgloss.NewStyle().Bold(true).Width(24),
		modal: lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(t.Accent).
			Padding(1, 2),
	}
}

func (s styles) status(st model.Status) string {
	if st == model.StatusDone {
		return s.success.Render(string(st))
	}
	return s.pending.Render(string(st))
}
