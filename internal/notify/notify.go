// Package notify relays flow outcomes to the user.
package notify

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
)

// Sink receives one call per user-visible outcome.
type Sink interface {
	Success(msg string)
	Failure(msg string, err error)
}

// Level tells success and failure apart.
type Level int

const (
	LevelSuccess Level = iota
	LevelFailure
)

// Event is one rendered notification.
type Event struct {
	Level Level
	Text  string
	At    time.Time
}

// Text joins a failure message with its cause the way every sink prints it.
func Text(msg string, err error) string {
	if err == nil {
		return msg
	}
	return msg + ": " + err.Error()
}

// Multi fans every call out to each sink in order.
type Multi []Sink

func (m Multi) Success(msg string) {
	for _, s := range m {
		s.Success(msg)
	}
}

func (m Multi) Failure(msg string, err error) {
	for _, s := range m {
		s.Failure(msg, err)
	}
}

// Log writes outcomes to a logger.
type Log struct{ L *log.Logger }

func (l Log) Success(msg string) { l.L.Info(msg) }

func (l Log) Failure(msg string, err error) { l.L.Error(msg, "err", err) }

// Toast keeps the latest event for a status line and lets it expire.
type Toast struct {
	mu   sync.Mutex
	last Event
	ttl  time.Duration
	now  func() time.Time
}

// NewToast returns a Toast whose events stay visible for ttl.
func NewToast(ttl time.Duration) *Toast {
	return &Toast{ttl: ttl, now: time.Now}
}

func (t *Toast) Success(msg string) { t.set(LevelSuccess, msg) }

func (t *Toast) Failure(msg string, err error) { t.set(LevelFailure, Text(msg, err)) }

func (t *Toast) set(level Level, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = Event{Level: level, Text: text, At: t.now()}
}

// Current returns the latest event unless it has expired.
func (t *Toast) Current() (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last.Text == "" {
		return Event{}, false
	}
	if t.ttl > 0 && t.now().Sub(t.last.At) > t.ttl {
		return Event{}, false
	}
	return t.last, true
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

// Console prints ✔/✖ lines, successes to Out and failures to Err.
type Console struct {
	Out io.Writer
	Err io.Writer
}

func (c Console) Success(msg string) { _, _ = okColor.Fprintln(c.Out, "✔ "+msg) }

func (c Console) Failure(msg string, err error) {
	_, _ = failColor.Fprintln(c.Err, "✖ "+Text(msg, err))
}
