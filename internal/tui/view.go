package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/idilsaglam/todoclient/internal/flow"
	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/notify"
	"github.com/idilsaglam/todoclient/internal/ui"
	"github.com/idilsaglam/todoclient/internal/view"
)

const confirmDeleteText = "Are you sure you want to delete this todo?"

func (m Model) View() string {
	parts := []string{m.header(), ""}

	body := m.grid.table.View()
	if top, ok := m.ctl.Top(); ok {
		body = lipgloss.Place(max(m.width-6, 40), max(m.height-8, 10), lipgloss.Center, lipgloss.Center, m.modal(top))
	}
	parts = append(parts, body, "")

	if line := m.toastLine(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.st.help.Render(m.help.View(m.helpKeys())))
	return ui.Panel(parts)
}

// header shows live counts over the cache.
func (m Model) header() string {
	t := ui.Current()
	done, pending := m.ctl.Cache().Stats()
	total := done + pending
	line := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.st.title.Render("Todos"),
		m.st.success.Render(t.SymDone), done,
		m.st.pending.Render(t.SymPending), pending,
		m.st.accent.Render("Total"), total,
	)
	if total > 0 {
		line += "   " + m.st.muted.Render(ui.ProgressBar(done, total, 20))
	}
	if m.ctl.Busy() {
		line += "  " + m.spin.View()
	}
	return line
}

func (m Model) toastLine() string {
	if m.toast == nil {
		return ""
	}
	ev, ok := m.toast.Current()
	if !ok {
		return ""
	}
	text := runewidth.Truncate(ev.Text, max(m.width-8, 20), "…")
	if ev.Level == notify.LevelFailure {
		return m.st.err.Render("✖ " + text)
	}
	return m.st.success.Render("✔ " + text)
}

func (m Model) helpKeys() bindings {
	top, ok := m.ctl.Top()
	if !ok {
		return bindings{m.keys.Add, m.keys.View, m.keys.Refresh, m.keys.Quit}
	}
	switch top {
	case flow.Detail:
		if len(m.ctl.Detail().Actions()) == 0 {
			return bindings{m.keys.Close}
		}
		return bindings{m.keys.Update, m.keys.Status, m.keys.Delete, m.keys.Close}
	case flow.Create, flow.Update:
		return bindings{m.keys.Next, m.keys.Prev, m.keys.Save, m.keys.Cancel}
	case flow.StatusChange:
		return bindings{key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose")), m.keys.Save, m.keys.Cancel}
	default:
		return bindings{m.keys.Yes, m.keys.No}
	}
}

func (m Model) modal(k flow.Kind) string {
	var title, content string
	switch k {
	case flow.Detail:
		title, content = "Todo", m.detailBody()
	case flow.Create:
		title, content = "Add Todo", m.formBody(k)
	case flow.Update:
		title, content = "Update Todo", m.formBody(k)
	case flow.StatusChange:
		title, content = "Change Status", m.statusBody()
	case flow.DeleteConfirm:
		title, content = "Delete Todo", m.confirmBody()
	}
	return m.st.modal.Width(m.modalWidth()).Render(m.st.title.Render(title) + "\n\n" + content)
}

func (m Model) modalWidth() int { return min(max(m.width-10, 40), 72) }

// field lays a label beside a value that may span several lines.
func (m Model) field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.st.label.Render(label), value)
}

func (m Model) detailBody() string {
	d := m.ctl.Detail()
	switch d.Phase() {
	case flow.Loading:
		return m.spin.View() + " Loading..."
	case flow.Failed:
		return m.st.err.Render(notify.Text(flow.MsgLoadFailed, d.Err()))
	}
	t, _ := d.Todo()
	vals := view.DetailValues(t)
	vals[1] = wordwrap.String(vals[1], max(m.modalWidth()-m.st.label.GetWidth()-6, 10))
	vals[3] = m.st.status(t.Status)
	var lines []string
	for i, v := range vals {
		lines = append(lines, m.field(view.DetailLabels[i], v))
	}
	if d.State() == flow.Submitting {
		lines = append(lines, "", m.spin.View()+" Refreshing...")
	}
	var acts []string
	for _, a := range d.Actions() {
		acts = append(acts, m.st.accent.Render("["+a.String()+"]"))
	}
	if len(acts) > 0 {
		lines = append(lines, "", strings.Join(acts, "  "))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formBody(k flow.Kind) string {
	f := m.ctl.Form(k)
	labels := []string{"Title", "Description", "Due Date (YYYY-MM-DD)"}
	var lines []string
	for i, in := range m.inputs {
		label := labels[i]
		if i == m.focus {
			label = m.st.accent.Render(label)
		}
		lines = append(lines, label, in.View(), "")
	}

	if k == flow.Create {
		label := "Status"
		if m.focus == fieldStatus {
			label = m.st.accent.Render(label)
		}
		lines = append(lines, label, m.statusPicker())
	} else {
		lines = append(lines, m.field("Status", m.st.status(f.Original().Status)))
	}

	if f.State() == flow.Submitting {
		lines = append(lines, "", m.spin.View()+" Saving...")
	}
	if err := f.Err(); err != nil {
		lines = append(lines, "", m.st.err.Render(err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusPicker() string {
	t := ui.Current()
	var opts []string
	for _, s := range model.Statuses() {
		if s == m.choice {
			opts = append(opts, m.st.selected.Render(" "+t.BoxChecked+" "+string(s)+" "))
			continue
		}
		opts = append(opts, m.st.muted.Render(" "+t.BoxUnchecked+" "+string(s)+" "))
	}
	return strings.Join(opts, "  ")
}

func (m Model) statusBody() string {
	s := m.ctl.Status()
	lines := []string{
		m.field("Title", s.Original().Title),
		"",
		m.statusPicker(),
	}
	if s.State() == flow.Submitting {
		lines = append(lines, "", m.spin.View()+" Saving...")
	}
	if err := s.Err(); err != nil {
		lines = append(lines, "", m.st.err.Render(err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) confirmBody() string {
	lines := []string{confirmDeleteText}
	if m.ctl.Confirm().State() == flow.Submitting {
		lines = append(lines, "", m.spin.View()+" Deleting...")
	} else {
		lines = append(lines, "", m.st.err.Render("[y] Delete")+"  "+m.st.muted.Render("[n] Cancel"))
	}
	return strings.Join(lines, "\n")
}
