// Package flow drives the modal interactions over the todo collection.
//
// Every flow is an explicit state machine (Closed, Open, Submitting). Remote
// work is described by a Job, executed by Controller.Run (which may happen off
// the UI loop), and its Result is folded back with Controller.Apply on the loop.
// Apply and ApplySnapshot are the only places the cache is written, and a
// fetch that started earlier never overwrites one that started later.
package flow

import (
	"strings"

	"github.com/idilsaglam/todoclient/internal/model"
)

// State of a single flow.
type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Kind names a flow.
type Kind int

const (
	Detail Kind = iota
	Create
	Update
	StatusChange
	DeleteConfirm
)

func (k Kind) String() string {
	switch k {
	case Detail:
		return "detail"
	case Create:
		return "create"
	case Update:
		return "update"
	case StatusChange:
		return "status"
	case DeleteConfirm:
		return "delete"
	}
	return "unknown"
}

// machine is the state shared by every flow. gen bumps on every open and
// every close so a Result issued for an earlier open is recognisable.
type machine struct {
	state State
	gen   uint64
	err   error
}

func (m *machine) State() State { return m.state }

// Err is the last failure surfaced inside the modal, nil when none.
func (m *machine) Err() error { return m.err }

func (m *machine) IsOpen() bool { return m.state != Closed }

func (m *machine) open() {
	m.gen++
	m.state = Open
	m.err = nil
}

func (m *machine) close() {
	m.gen++
	m.state = Closed
	m.err = nil
}

// begin moves Open to Submitting and returns the generation to tag the job with.
func (m *machine) begin() (uint64, bool) {
	if m.state != Open {
		return 0, false
	}
	m.state = Submitting
	m.err = nil
	return m.gen, true
}

// accepts reports whether a result for gen still belongs to this open.
func (m *machine) accepts(gen uint64) bool {
	return m.state == Submitting && m.gen == gen
}

func (m *machine) fail(err error) {
	m.state = Open
	m.err = err
}

// Form is the editable working copy owned by an open Create or Update modal.
type Form struct {
	Title       string
	Description string
	DueDate     string
	Status      model.Status
}

// NewForm returns the Create defaults.
func NewForm() Form { return Form{Status: model.StatusPending} }

// FormFrom pre-populates a form from a record.
func FormFrom(t model.Todo) Form {
	return Form{
		Title:       t.Title,
		Description: model.Deref(t.Description),
		DueDate:     model.Deref(t.DueDate),
		Status:      t.Status,
	}
}

// payload converts the form, normalising blank optionals to absent.
func (f Form) payload(status model.Status) model.Payload {
	return model.Payload{
		Title:       strings.TrimSpace(f.Title),
		Description: model.Optional(f.Description),
		DueDate:     model.Optional(strings.TrimSpace(f.DueDate)),
		Status:      status,
	}
}
