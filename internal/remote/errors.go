package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed remote call.
type Kind int

const (
	Unknown Kind = iota
	NotFound
	Validation
	Transport
	Timeout
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error shape returned by Client.
// Status is 0 when no HTTP response was received.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}

// KindOf returns the kind of err, Unknown when err is not an *Error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return Unknown
}

func statusKind(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return NotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return Validation
	default:
		return Unknown
	}
}

// transportError maps a failure that happened before a status was read.
func transportError(op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Kind: Timeout, Message: "request timed out", Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Op: op, Kind: Timeout, Message: "request timed out", Err: err}
	}
	return &Error{Op: op, Kind: Transport, Err: err}
}
