// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/remote"
	"github.com/idilsaglam/todoclient/internal/service"
)

var _ service.Service = (*FakeService)(nil)

// Call is one recorded service invocation.
type Call struct {
	Op      string
	ID      model.ID
	Payload model.Payload
}

// FakeService is an in-memory implementation of service.Service for testing.
// It assigns numeric ids like a typical REST backend and returns
// *remote.Error values so callers see the same error shapes as in production.
type FakeService struct {
	mu     sync.Mutex
	todos  []model.Todo
	nextID int
	calls  []Call

	// Error injection; a non-nil value is returned instead of doing the work.
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Block, when set, is received from before each call returns.
	Block chan struct{}
}

// NewFakeService creates a FakeService holding todos in order.
func NewFakeService(todos ...model.Todo) *FakeService {
	f := &FakeService{nextID: 1}
	for _, t := range todos {
		f.todos = append(f.todos, t)
		if n, err := strconv.Atoi(string(t.ID)); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
	}
	return f
}

// Todos returns the server-side collection.
func (f *FakeService) Todos() []model.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Todo, len(f.todos))
	copy(out, f.todos)
	return out
}

// Calls returns every call made so far.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Ops returns the operation names of Calls.
func (f *FakeService) Ops() []string {
	var ops []string
	for _, c := range f.Calls() {
		ops = append(ops, c.Op)
	}
	return ops
}

// LastPayload returns the payload of the most recent create or update.
func (f *FakeService) LastPayload() (model.Payload, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Op == "create" || calls[i].Op == "update" {
			return calls[i].Payload, true
		}
	}
	return model.Payload{}, false
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	if f.Block != nil {
		<-f.Block
	}
}

func notFound(op string) error {
	return &remote.Error{Op: op, Kind: remote.NotFound, Status: http.StatusNotFound, Message: "Todo not found"}
}

func (f *FakeService) ListAll(ctx context.Context) ([]model.Todo, error) {
	f.record(Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Todos(), nil
}

func (f *FakeService) GetOne(ctx context.Context, id model.ID) (model.Todo, error) {
	f.record(Call{Op: "get", ID: id})
	if f.GetErr != nil {
		return model.Todo{}, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Todo{}, notFound("get todo")
}

func (f *FakeService) Create(ctx context.Context, p model.Payload) (model.Todo, error) {
	f.record(Call{Op: "create", Payload: p})
	if f.CreateErr != nil {
		return model.Todo{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := model.Todo{
		ID:          model.ID(strconv.Itoa(f.nextID)),
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Status:      p.Status,
	}
	f.nextID++
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *FakeService) Update(ctx context.Context, id model.ID, p model.Payload) (model.Todo, error) {
	f.record(Call{Op: "update", ID: id, Payload: p})
	if f.UpdateErr != nil {
		return model.Todo{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos[i] = model.Todo{ID: id, Title: p.Title, Description: p.Description, DueDate: p.DueDate, Status: p.Status}
			return f.todos[i], nil
		}
	}
	return model.Todo{}, notFound("update todo")
}

func (f *FakeService) Delete(ctx context.Context, id model.ID) error {
	f.record(Call{Op: "delete", ID: id})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return notFound("delete todo")
}
