package cli

import (
	"context"
	"errors"

	"github.com/idilsaglam/todoclient/internal/flow"
	"github.com/idilsaglam/todoclient/internal/logging"
	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/notify"
	"github.com/idilsaglam/todoclient/internal/store"
)

var errNotOpen = errors.New("flow is not open")

// session drives the flows headless: each job runs to completion before the
// next input, the way the UI loop would see it.
type session struct {
	ctx   context.Context
	ctl   *flow.Controller
	sink  notify.Sink
	close func() error
}

func (app *App) session(ctx context.Context) (*session, error) {
	logger, closeLog, err := logging.Command(app.Err, app.cfg.LogFile, app.cfg.LogLevel)
	if err != nil {
		return nil, usageErr("%v", err)
	}
	svc, err := app.NewService(app.cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, usageErr("%v", err)
	}
	sink := notify.Console{Out: app.Out, Err: app.Err}
	return &session{
		ctx:   ctx,
		ctl:   flow.NewController(svc, store.New(), sink, logger),
		sink:  sink,
		close: closeLog,
	}, nil
}

// run executes job and any reload it causes. It returns the job's own error.
func (s *session) run(job flow.Job, ok bool) error {
	if !ok {
		return errNotOpen
	}
	var first error
	for {
		r := s.ctl.Run(s.ctx, job)
		if first == nil {
			first = r.Err
		}
		next, more := s.ctl.Apply(r)
		if !more {
			return first
		}
		job = next
	}
}

// open loads id into Detail. A load failure is printed here since the
// Detail flow keeps it inline.
func (s *session) open(id model.ID) (model.Todo, error) {
	if err := s.run(s.ctl.OpenDetail(id)); err != nil {
		s.sink.Failure(flow.MsgLoadFailed, err)
		return model.Todo{}, reported(err)
	}
	t, _ := s.ctl.Detail().Todo()
	return t, nil
}

// detail returns the record Detail shows after a reload.
func (s *session) detail() (model.Todo, bool) {
	return s.ctl.Detail().Todo()
}
