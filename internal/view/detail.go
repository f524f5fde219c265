package view

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"

	"github.com/idilsaglam/todoclient/internal/model"
)

// DetailLabels name the fields of one record, in display order.
var DetailLabels = []string{"Title", "Description", "Due Date", "Status"}

// DetailValues renders t for DetailLabels; absent optionals show "-".
func DetailValues(t model.Todo) []string {
	return []string{t.Title, model.Display(t.Description), model.Display(t.DueDate), string(t.Status)}
}

// PrintDetail writes one record as label/value pairs.
func PrintDetail(w io.Writer, t model.Todo) error {
	tbl := uitable.New()
	tbl.MaxColWidth = 72
	tbl.Wrap = true
	tbl.AddRow(mutedColor.Sprint("ID"), t.ID)
	vals := DetailValues(t)
	vals[3] = statusColor(t.Status).Sprint(vals[3])
	for i, v := range vals {
		tbl.AddRow(headerColor.Sprint(DetailLabels[i]), v)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
