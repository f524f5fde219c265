package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders done/total as a bar of width cells and a percentage.
// An empty list reads 0%.
func ProgressBar(done, total, width int) string {
	width = max(width, 5)
	pct := 0
	if total > 0 {
		pct = min(done*100/total, 100)
	}
	filled := width * pct / 100
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}

// Panel frames lines in the current theme's border.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.Muted).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
