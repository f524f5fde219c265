package flow

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/notify"
	"github.com/idilsaglam/todoclient/internal/service"
	"github.com/idilsaglam/todoclient/internal/store"
)

// Messages shown to the user.
const (
	MsgCreated       = "Todo created successfully"
	MsgUpdated       = "Updated successfully"
	MsgStatusUpdated = "Status updated"
	MsgDeleted       = "Todo deleted"

	MsgFetchFailed  = "Failed to fetch todos"
	MsgLoadFailed   = "Failed to load todo"
	MsgCreateFailed = "Failed to create todo"
	MsgUpdateFailed = "Failed to update"
	MsgStatusFailed = "Failed to update status"
	MsgDeleteFailed = "Failed to delete"
)

// Job is a remote call captured at submit time.
type Job struct {
	Kind    Kind
	Gen     uint64
	ID      model.ID
	Payload model.Payload
}

// Result is what Run observed for a Job. For mutations, Todos is the
// follow-up full fetch, present only when the mutation succeeded. SyncSeq
// orders that fetch against every other one.
type Result struct {
	Job     Job
	Todo    model.Todo
	Err     error
	Todos   []model.Todo
	Synced  bool
	SyncSeq uint64
	SyncErr error
}

// Snapshot is one full fetch of the collection. Seq is taken when the fetch
// starts; a later start never reflects older server state.
type Snapshot struct {
	Seq   uint64
	Todos []model.Todo
	Err   error
}

// Controller owns every flow and is the single writer of the cache.
// All methods except Run and Fetch must be called from one goroutine.
type Controller struct {
	svc   service.Service
	cache *store.Cache
	sink  notify.Sink
	log   *log.Logger

	detail  DetailFlow
	create  FormFlow
	update  FormFlow
	status  StatusFlow
	confirm ConfirmFlow

	seq     atomic.Uint64
	applied uint64
}

// NewController wires a controller. logger may be nil.
func NewController(svc service.Service, cache *store.Cache, sink notify.Sink, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{svc: svc, cache: cache, sink: sink, log: logger}
}

func (c *Controller) Cache() *store.Cache { return c.cache }

func (c *Controller) Detail() *DetailFlow { return &c.detail }

// Form returns the Create or Update flow.
func (c *Controller) Form(k Kind) *FormFlow {
	if k == Update {
		return &c.update
	}
	return &c.create
}

func (c *Controller) Status() *StatusFlow { return &c.status }

func (c *Controller) Confirm() *ConfirmFlow { return &c.confirm }

// Top returns the flow that currently receives input.
func (c *Controller) Top() (Kind, bool) {
	switch {
	case c.confirm.IsOpen():
		return DeleteConfirm, true
	case c.status.IsOpen():
		return StatusChange, true
	case c.update.IsOpen():
		return Update, true
	case c.detail.IsOpen():
		return Detail, true
	case c.create.IsOpen():
		return Create, true
	}
	return 0, false
}

// Busy reports whether any flow waits on the service.
func (c *Controller) Busy() bool {
	for _, m := range []*machine{&c.detail.machine, &c.create.machine, &c.update.machine, &c.status.machine, &c.confirm.machine} {
		if m.state == Submitting {
			return true
		}
	}
	return false
}

func (c *Controller) subOpen() bool {
	return c.update.IsOpen() || c.status.IsOpen() || c.confirm.IsOpen()
}

// Fetch lists the collection. It does not touch the cache.
func (c *Controller) Fetch(ctx context.Context) Snapshot {
	seq := c.seq.Add(1)
	todos, err := c.svc.ListAll(ctx)
	return Snapshot{Seq: seq, Todos: todos, Err: err}
}

// ApplySnapshot replaces the cache with a successful fetch. A failed fetch
// leaves the cache as it was and is notified. A fetch that started before
// the one already applied is dropped.
func (c *Controller) ApplySnapshot(s Snapshot) bool {
	if s.Err != nil {
		c.log.Warn("resync failed", "err", s.Err)
		c.sink.Failure(MsgFetchFailed, s.Err)
		return false
	}
	return c.replace(s.Seq, s.Todos)
}

// replace is the only cache write.
func (c *Controller) replace(seq uint64, todos []model.Todo) bool {
	if seq < c.applied {
		c.log.Debug("dropping older snapshot", "seq", seq, "applied", c.applied)
		return false
	}
	c.applied = seq
	c.cache.Replace(todos)
	c.log.Debug("resynced", "seq", seq, "count", len(todos))
	return true
}

// Resync fetches and applies in one step.
func (c *Controller) Resync(ctx context.Context) error {
	s := c.Fetch(ctx)
	c.ApplySnapshot(s)
	return s.Err
}

// OpenDetail opens the Detail flow for id and returns its load job.
func (c *Controller) OpenDetail(id model.ID) (Job, bool) {
	if c.detail.IsOpen() || c.create.IsOpen() {
		return Job{}, false
	}
	return c.detail.start(id), true
}

// OpenCreate opens the Create flow with its defaults.
func (c *Controller) OpenCreate() (Form, bool) {
	if c.detail.IsOpen() || c.create.IsOpen() {
		return Form{}, false
	}
	c.create.open()
	c.create.form = NewForm()
	c.create.original = model.Todo{}
	return c.create.form, true
}

// SubmitCreate captures f and returns the create job.
func (c *Controller) SubmitCreate(f Form) (Job, bool) {
	if c.create.state != Open {
		return Job{}, false
	}
	c.create.form = f
	if err := checkForm(f, f.Status); err != nil {
		c.reject(&c.create.machine, MsgCreateFailed, err)
		return Job{}, false
	}
	gen, _ := c.create.begin()
	return Job{Kind: Create, Gen: gen, Payload: f.payload(f.Status)}, true
}

// OpenUpdate opens the Update flow over the record shown in Detail.
func (c *Controller) OpenUpdate() (Form, bool) {
	todo, ok := c.detail.Todo()
	if !ok || c.detail.state != Open || c.subOpen() {
		return Form{}, false
	}
	c.update.open()
	c.update.original = todo
	c.update.form = FormFrom(todo)
	return c.update.form, true
}

// SubmitUpdate captures f; the original status is carried through.
func (c *Controller) SubmitUpdate(f Form) (Job, bool) {
	if c.update.state != Open {
		return Job{}, false
	}
	orig := c.update.original
	f.Status = orig.Status
	c.update.form = f
	if err := checkForm(f, orig.Status); err != nil {
		c.reject(&c.update.machine, MsgUpdateFailed, err)
		return Job{}, false
	}
	gen, _ := c.update.begin()
	return Job{Kind: Update, Gen: gen, ID: orig.ID, Payload: f.payload(orig.Status)}, true
}

// OpenStatus opens the Status-Change flow over the record shown in Detail.
func (c *Controller) OpenStatus() (model.Status, bool) {
	todo, ok := c.detail.Todo()
	if !ok || c.detail.state != Open || c.subOpen() {
		return "", false
	}
	c.status.open()
	c.status.original = todo
	c.status.choice = todo.Status
	if !c.status.choice.Valid() {
		c.status.choice = model.StatusPending
	}
	return c.status.choice, true
}

// SubmitStatus sends the original record with only its status replaced.
func (c *Controller) SubmitStatus(s model.Status) (Job, bool) {
	if c.status.state != Open {
		return Job{}, false
	}
	c.status.choice = s
	if !s.Valid() {
		c.reject(&c.status.machine, MsgStatusFailed, ErrBadStatus)
		return Job{}, false
	}
	p := c.status.original.Payload()
	p.Status = s
	gen, _ := c.status.begin()
	return Job{Kind: StatusChange, Gen: gen, ID: c.status.original.ID, Payload: p}, true
}

// OpenDelete opens the confirmation for the record shown in Detail.
func (c *Controller) OpenDelete() bool {
	todo, ok := c.detail.Todo()
	if !ok || c.detail.state != Open || c.subOpen() {
		return false
	}
	c.confirm.open()
	c.confirm.id = todo.ID
	return true
}

// ConfirmDelete returns the delete job.
func (c *Controller) ConfirmDelete() (Job, bool) {
	gen, ok := c.confirm.begin()
	if !ok {
		return Job{}, false
	}
	return Job{Kind: DeleteConfirm, Gen: gen, ID: c.confirm.id}, true
}

// Cancel closes a flow without any remote call. Closing Detail closes the
// flows opened from it. A result still in flight for a cancelled flow leaves
// the flows alone in Apply, but a mutation the server confirmed still
// reaches the cache.
func (c *Controller) Cancel(k Kind) {
	switch k {
	case Detail:
		c.update.close()
		c.status.close()
		c.confirm.close()
		c.detail.close()
	case Create:
		c.create.close()
	case Update:
		c.update.close()
	case StatusChange:
		c.status.close()
	case DeleteConfirm:
		c.confirm.close()
	}
}

// Run performs a job against the service: the call itself and, when a
// mutation succeeded, the full fetch that follows it. It never touches
// controller state and is safe to call from any goroutine.
func (c *Controller) Run(ctx context.Context, job Job) Result {
	r := Result{Job: job}
	switch job.Kind {
	case Detail:
		r.Todo, r.Err = c.svc.GetOne(ctx, job.ID)
		return r
	case Create:
		_, r.Err = c.svc.Create(ctx, job.Payload)
	case Update, StatusChange:
		_, r.Err = c.svc.Update(ctx, job.ID, job.Payload)
	case DeleteConfirm:
		r.Err = c.svc.Delete(ctx, job.ID)
	default:
		r.Err = fmt.Errorf("unknown flow %d", job.Kind)
	}
	if r.Err != nil {
		return r
	}
	r.SyncSeq = c.seq.Add(1)
	r.Todos, r.SyncErr = c.svc.ListAll(ctx)
	r.Synced = r.SyncErr == nil
	return r
}

// Apply folds a Result into the flows and the cache. When the result makes
// Detail stale (its record was updated) Apply returns the reload job.
func (c *Controller) Apply(r Result) (Job, bool) {
	switch r.Job.Kind {
	case Detail:
		c.applyLoad(r)
	case Create:
		c.applyForm(&c.create.machine, r, MsgCreated, MsgCreateFailed)
	case Update:
		if c.applyForm(&c.update.machine, r, MsgUpdated, MsgUpdateFailed) {
			return c.reloadDetail(r.Job.ID)
		}
	case StatusChange:
		if c.applyForm(&c.status.machine, r, MsgStatusUpdated, MsgStatusFailed) {
			return c.reloadDetail(r.Job.ID)
		}
	case DeleteConfirm:
		c.applyDelete(r)
	}
	return Job{}, false
}

func (c *Controller) applyLoad(r Result) {
	if !c.detail.accepts(r.Job.Gen) {
		c.drop(r)
		return
	}
	if r.Err != nil {
		c.log.Warn("load failed", "id", r.Job.ID, "err", r.Err)
		c.detail.phase = Failed
		c.detail.fail(r.Err)
		return
	}
	c.detail.todo = r.Todo
	c.detail.phase = Ready
	c.detail.state = Open
}

// applyForm handles Create, Update and Status-Change. It reports whether the
// server confirmed the mutation.
func (c *Controller) applyForm(m *machine, r Result, okMsg, failMsg string) bool {
	if !m.accepts(r.Job.Gen) {
		return c.stale(r, okMsg)
	}
	if r.Err != nil {
		c.log.Warn("submit failed", "flow", r.Job.Kind, "id", r.Job.ID, "err", r.Err)
		m.fail(r.Err)
		c.sink.Failure(failMsg, r.Err)
		return false
	}
	c.commit(r, m, okMsg)
	return true
}

// applyDelete closes the confirmation whatever the outcome.
func (c *Controller) applyDelete(r Result) {
	if !c.confirm.accepts(r.Job.Gen) {
		if c.stale(r, MsgDeleted) {
			c.closeDetailOf(r.Job.ID)
		}
		return
	}
	if r.Err != nil {
		c.log.Warn("delete failed", "id", r.Job.ID, "err", r.Err)
		c.confirm.close()
		c.sink.Failure(MsgDeleteFailed, r.Err)
		return
	}
	c.closeDetailOf(r.Job.ID)
	c.commit(r, &c.confirm.machine, MsgDeleted)
}

// closeDetailOf closes Detail and its sub-flows when they show id.
func (c *Controller) closeDetailOf(id model.ID) {
	if c.detail.IsOpen() && c.detail.id == id {
		c.Cancel(Detail)
	}
}

// commit runs the success tail of a mutation: replace the cache with the
// follow-up fetch, close the modal, notify. m is nil when the flow that
// issued the job is gone.
func (c *Controller) commit(r Result, m *machine, okMsg string) {
	if r.Synced {
		c.replace(r.SyncSeq, r.Todos)
	}
	if m != nil {
		m.close()
	}
	c.log.Info(okMsg, "flow", r.Job.Kind, "id", r.Job.ID)
	c.sink.Success(okMsg)
	if r.SyncErr != nil {
		c.log.Warn("resync after mutation failed", "err", r.SyncErr)
		c.sink.Failure(MsgFetchFailed, r.SyncErr)
	}
}

func (c *Controller) reloadDetail(id model.ID) (Job, bool) {
	if !c.detail.IsOpen() || c.detail.id != id || c.detail.state != Open {
		return Job{}, false
	}
	return c.detail.load(), true
}

func (c *Controller) reject(m *machine, failMsg string, err error) {
	m.err = err
	c.sink.Failure(failMsg, err)
}

// stale handles a mutation result whose flow was closed or reopened since
// the job was issued. The flow is left alone. A confirmed mutation still
// commits its follow-up fetch; a failure is dropped. It reports whether the
// server confirmed the mutation.
func (c *Controller) stale(r Result, okMsg string) bool {
	if r.Err != nil {
		c.drop(r)
		return false
	}
	c.log.Debug("flow gone, committing confirmed result", "flow", r.Job.Kind, "gen", r.Job.Gen, "id", r.Job.ID)
	c.commit(r, nil, okMsg)
	return true
}

func (c *Controller) drop(r Result) {
	c.log.Debug("dropping stale result", "flow", r.Job.Kind, "gen", r.Job.Gen, "id", r.Job.ID)
}

func checkForm(f Form, status model.Status) error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if !status.Valid() {
		return ErrBadStatus
	}
	return nil
}
