package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	View    key.Binding
	Refresh key.Binding
	Quit    key.Binding

	Update key.Binding
	Status key.Binding
	Delete key.Binding
	Close  key.Binding

	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Save   key.Binding
	Cancel key.Binding

	Yes key.Binding
	No  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add todo")),
		View:    key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Update: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update")),
		Status: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "change status")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Close:  key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "close")),

		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:   key.NewBinding(key.WithKeys("left")),
		Right:  key.NewBinding(key.WithKeys("right")),
		Save:   key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Yes: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
		No:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

// bindings is the help for one screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
