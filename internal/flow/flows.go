package flow

import (
	"errors"

	"github.com/idilsaglam/todoclient/internal/model"
)

var (
	// ErrEmptyTitle rejects a form before any remote call.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrBadStatus rejects a status outside model.Statuses.
	ErrBadStatus = errors.New("status must be PENDING or DONE")
)

// Phase of the Detail flow's record.
type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

// Action is something the Detail modal offers.
type Action int

const (
	ActionUpdate Action = iota
	ActionStatus
	ActionDelete
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionUpdate:
		return "Update"
	case ActionStatus:
		return "Change Status"
	case ActionDelete:
		return "Delete"
	case ActionClose:
		return "Close"
	}
	return "unknown"
}

// DetailFlow shows one record fetched fresh from the service.
// While its record loads the machine is Submitting.
type DetailFlow struct {
	machine
	id    model.ID
	phase Phase
	todo  model.Todo
}

func (d *DetailFlow) ID() model.ID { return d.id }

func (d *DetailFlow) Phase() Phase { return d.phase }

// Todo returns the loaded record; ok is false until a load succeeded.
func (d *DetailFlow) Todo() (model.Todo, bool) {
	return d.todo, d.IsOpen() && d.phase == Ready
}

// Actions lists what the modal offers. A failed load is terminal: nothing.
func (d *DetailFlow) Actions() []Action {
	if !d.IsOpen() || d.phase != Ready || d.state != Open {
		return nil
	}
	return []Action{ActionUpdate, ActionStatus, ActionDelete, ActionClose}
}

func (d *DetailFlow) start(id model.ID) Job {
	d.open()
	d.id = id
	d.todo = model.Todo{}
	return d.load()
}

func (d *DetailFlow) load() Job {
	d.phase = Loading
	gen, _ := d.begin()
	return Job{Kind: Detail, Gen: gen, ID: d.id}
}

// FormFlow backs Create and Update.
type FormFlow struct {
	machine
	form     Form
	original model.Todo
}

// Form returns the working copy: defaults for Create, the record for Update,
// the last submitted input after a failed submit.
func (f *FormFlow) Form() Form { return f.form }

// Original is the record being edited (Update only).
func (f *FormFlow) Original() model.Todo { return f.original }

// StatusFlow edits only the status of a record.
type StatusFlow struct {
	machine
	original model.Todo
	choice   model.Status
}

func (s *StatusFlow) Original() model.Todo { return s.original }

// Choice is the selection the modal opened with or last submitted.
func (s *StatusFlow) Choice() model.Status { return s.choice }

// ConfirmFlow is the delete confirmation.
type ConfirmFlow struct {
	machine
	id model.ID
}

func (c *ConfirmFlow) ID() model.ID { return c.id }
