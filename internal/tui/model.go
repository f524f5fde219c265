// Package tui is the interactive terminal front end: a table of todos with
// modal flows for viewing, creating, editing and deleting them.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoclient/internal/flow"
	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/notify"
	"github.com/idilsaglam/todoclient/internal/ui"
	"github.com/idilsaglam/todoclient/internal/view"
)

type (
	syncMsg       struct{ flow.Snapshot }
	resultMsg     struct{ flow.Result }
	openDetailMsg struct{ id model.ID }
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldStatus
)

// grid is shared by every copy of Model so the cache subscription can
// refresh it from inside Controller.Apply.
type grid struct {
	table table.Model
	rows  []view.Row
}

func (g *grid) set(todos []model.Todo) {
	g.rows = view.Rows(todos, openDetail)
	g.table.SetRows(view.TableRows(g.rows))
}

func (g *grid) selected() (view.Row, bool) {
	i := g.table.Cursor()
	if i < 0 || i >= len(g.rows) {
		return view.Row{}, false
	}
	return g.rows[i], true
}

func openDetail(id model.ID) tea.Cmd {
	return func() tea.Msg { return openDetailMsg{id: id} }
}

// Model is the Bubble Tea model.
type Model struct {
	ctx   context.Context
	ctl   *flow.Controller
	toast *notify.Toast
	grid  *grid
	unsub func()

	keys   keyMap
	help   help.Model
	spin   spinner.Model
	st     styles
	inputs []textinput.Model
	focus  int
	choice model.Status

	width, height int
}

// New builds the model over ctl. toast may be nil; when set it should be
// the sink ctl notifies.
func New(ctx context.Context, ctl *flow.Controller, toast *notify.Toast) Model {
	st := newStyles(ui.Current())

	ts := table.DefaultStyles()
	ts.Selected = st.selected
	ts.Header = ts.Header.Bold(true)
	g := &grid{table: table.New(
		table.WithColumns(view.Columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(ts),
	)}
	g.set(ctl.Cache().Items())
	unsub := ctl.Cache().Subscribe(g.set)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.accent

	return Model{
		ctx:    ctx,
		ctl:    ctl,
		toast:  toast,
		grid:   g,
		unsub:  unsub,
		keys:   defaultKeys(),
		help:   help.New(),
		spin:   sp,
		st:     st,
		inputs: newInputs(),
		choice: model.StatusPending,
		width:  80,
		height: 24,
	}
}

func newInputs() []textinput.Model {
	title := textinput.New()
	title.Prompt = "> "
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Prompt = "> "
	desc.Placeholder = "optional"
	desc.CharLimit = 1000

	due := textinput.New()
	due.Prompt = "> "
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	return []textinput.Model{title, desc, due}
}

// Close drops the cache subscription.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spin.Tick)
}

func (m Model) fetch() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg { return syncMsg{ctl.Fetch(ctx)} }
}

func (m Model) run(job flow.Job) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	return func() tea.Msg { return resultMsg{ctl.Run(ctx, job)} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.table.SetColumns(view.Columns(msg.Width - 8))
		m.grid.table.SetWidth(msg.Width - 4)
		m.grid.table.SetHeight(max(msg.Height-10, 3))
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case syncMsg:
		m.ctl.ApplySnapshot(msg.Snapshot)
		return m, nil

	case openDetailMsg:
		if job, ok := m.ctl.OpenDetail(msg.id); ok {
			return m, m.run(job)
		}
		return m, nil

	case resultMsg:
		if reload, ok := m.ctl.Apply(msg.Result); ok {
			return m, m.run(reload)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		top, ok := m.ctl.Top()
		if !ok {
			return m.updateTable(msg)
		}
		switch top {
		case flow.Detail:
			return m.updateDetail(msg)
		case flow.Create, flow.Update:
			return m.updateForm(top, msg)
		case flow.StatusChange:
			return m.updateStatus(msg)
		case flow.DeleteConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetch()
	case key.Matches(msg, m.keys.Add):
		f, ok := m.ctl.OpenCreate()
		if !ok {
			return m, nil
		}
		cmd := m.loadForm(f)
		return m, cmd
	case key.Matches(msg, m.keys.View):
		if row, ok := m.grid.selected(); ok {
			return m, row.View()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.grid.table, cmd = m.grid.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.ctl.Cancel(flow.Detail)
	case key.Matches(msg, m.keys.Update):
		if f, ok := m.ctl.OpenUpdate(); ok {
			cmd := m.loadForm(f)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Status):
		if s, ok := m.ctl.OpenStatus(); ok {
			m.choice = s
		}
	case key.Matches(msg, m.keys.Delete):
		m.ctl.OpenDelete()
	}
	return m, nil
}

func (m Model) updateForm(k flow.Kind, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctl.Cancel(k)
		m.blurAll()
		return m, nil
	case m.ctl.Form(k).State() == flow.Submitting:
		return m, nil
	case key.Matches(msg, m.keys.Save):
		var (
			job flow.Job
			ok  bool
		)
		if k == flow.Create {
			job, ok = m.ctl.SubmitCreate(m.formValue())
		} else {
			job, ok = m.ctl.SubmitUpdate(m.formValue())
		}
		if !ok {
			return m, nil
		}
		return m, m.run(job)
	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus(m.focus+1, k)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus(m.focus-1, k)
		return m, cmd
	}

	if m.focus == fieldStatus {
		switch {
		case key.Matches(msg, m.keys.Right):
			m.choice = m.choice.Next()
		case key.Matches(msg, m.keys.Left):
			m.choice = m.choice.Prev()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctl.Cancel(flow.StatusChange)
	case m.ctl.Status().State() == flow.Submitting:
	case key.Matches(msg, m.keys.Save):
		if job, ok := m.ctl.SubmitStatus(m.choice); ok {
			return m, m.run(job)
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Next):
		m.choice = m.choice.Next()
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Prev):
		m.choice = m.choice.Prev()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.ctl.Confirm().State() == flow.Submitting:
	case key.Matches(msg, m.keys.Yes):
		if job, ok := m.ctl.ConfirmDelete(); ok {
			return m, m.run(job)
		}
	case key.Matches(msg, m.keys.No):
		m.ctl.Cancel(flow.DeleteConfirm)
	}
	return m, nil
}

// loadForm copies f into the inputs and focuses the title.
func (m *Model) loadForm(f flow.Form) tea.Cmd {
	m.inputs[fieldTitle].SetValue(f.Title)
	m.inputs[fieldDescription].SetValue(f.Description)
	m.inputs[fieldDue].SetValue(f.DueDate)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	m.choice = f.Status
	if !m.choice.Valid() {
		m.choice = model.StatusPending
	}
	m.focus = -1
	return m.setFocus(fieldTitle, flow.Create)
}

// setFocus moves focus, wrapping. Only Create has a status field.
func (m *Model) setFocus(i int, k flow.Kind) tea.Cmd {
	n := len(m.inputs)
	if k == flow.Create {
		n++
	}
	i = (i%n + n) % n
	m.blurAll()
	m.focus = i
	if i < len(m.inputs) {
		return m.inputs[i].Focus()
	}
	return nil
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m Model) formValue() flow.Form {
	return flow.Form{
		Title:       m.inputs[fieldTitle].Value(),
		Description: m.inputs[fieldDescription].Value(),
		DueDate:     m.inputs[fieldDue].Value(),
		Status:      m.choice,
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, ctl *flow.Controller, toast *notify.Toast) error {
	m := New(ctx, ctl, toast)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
