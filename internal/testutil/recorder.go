package testutil

import (
	"sync"

	"github.com/idilsaglam/todoclient/internal/notify"
)

// Note is one notification captured by Recorder.
type Note struct {
	OK   bool
	Text string
}

// Recorder is a notify.Sink that keeps everything it is told.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

var _ notify.Sink = (*Recorder)(nil)

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{OK: true, Text: msg})
}

func (r *Recorder) Failure(msg string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Text: notify.Text(msg, err)})
}

// Notes returns the captured notifications in order.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Note{}, false
	}
	return r.notes[len(r.notes)-1], true
}

// Reset drops everything captured so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
