// Package view projects the cached collection into table rows.
package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/idilsaglam/todoclient/internal/model"
)

// Row is one rendered todo. View opens the Detail flow for this row's id.
type Row struct {
	ID      model.ID
	Title   string
	DueDate string
	Status  model.Status
	View    func() tea.Cmd
}

// Cells returns the row as table cells, in Headers order.
func (r Row) Cells() []string {
	return []string{string(r.ID), r.Title, r.DueDate, string(r.Status)}
}

// Headers are the column titles.
var Headers = []string{"ID", "Title", "Due Date", "Status"}

// Rows renders todos in the order given. Each row's action is bound to its
// own id at construction time.
func Rows(todos []model.Todo, onView func(model.ID) tea.Cmd) []Row {
	rows := make([]Row, 0, len(todos))
	for _, t := range todos {
		id := t.ID
		rows = append(rows, Row{
			ID:      id,
			Title:   t.Title,
			DueDate: model.Display(t.DueDate),
			Status:  t.Status,
			View:    func() tea.Cmd { return onView(id) },
		})
	}
	return rows
}

// TableRows converts rows for bubbles/table.
func TableRows(rows []Row) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row(r.Cells()))
	}
	return out
}

// Columns splits width 1:4:3:2 across the four columns.
func Columns(width int) []table.Column {
	const parts = 10
	if width < 40 {
		width = 40
	}
	unit := width / parts
	widths := []int{unit, unit * 4, unit * 3, width - unit*8}
	mins := []int{4, 8, 10, 7}
	cols := make([]table.Column, len(Headers))
	for i, h := range Headers {
		w := widths[i]
		if w < mins[i] {
			w = mins[i]
		}
		cols[i] = table.Column{Title: h, Width: w}
	}
	return cols
}

var (
	headerColor  = color.New(color.Bold, color.Underline)
	doneColor    = color.New(color.FgGreen)
	pendingColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.Faint, color.Italic)
)

// Print writes a plain table of todos, used outside the TUI.
func Print(w io.Writer, todos []model.Todo) error {
	if len(todos) == 0 {
		_, err := mutedColor.Fprintln(w, "no todos")
		return err
	}
	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	t.AddRow(headerColor.Sprint(Headers[0]), headerColor.Sprint(Headers[1]),
		headerColor.Sprint(Headers[2]), headerColor.Sprint(Headers[3]))
	for _, r := range Rows(todos, func(model.ID) tea.Cmd { return nil }) {
		t.AddRow(r.ID, r.Title, r.DueDate, statusColor(r.Status).Sprint(r.Status))
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

func statusColor(s model.Status) *color.Color {
	if s == model.StatusDone {
		return doneColor
	}
	return pendingColor
}
