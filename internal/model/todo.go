package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a todo on the remote service. The service picks the
// representation; numbers and strings are both accepted and kept as text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("todo id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("todo id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Status is the lifecycle state of a todo.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusDone    Status = "DONE"
)

// Statuses returns the selectable statuses in display order.
func Statuses() []Status { return []Status{StatusPending, StatusDone} }

// ParseStatus accepts any casing of a known status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown status %q (want PENDING or DONE)", s)
}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool { return s == StatusPending || s == StatusDone }

// Next cycles through Statuses.
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev cycles backwards through Statuses.
func (s Status) Prev() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}

// Todo is a verbatim copy of a record as the remote service returned it.
// Description and DueDate are nil when absent, which is distinct from "".
type Todo struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      Status  `json:"status"`
}

// Payload is the request body for create and full-replacement update.
// All four keys are always sent; absent optionals encode as null.
type Payload struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      Status  `json:"status"`
}

// Payload returns a replacement body that carries every field unchanged.
func (t Todo) Payload() Payload {
	return Payload{
		Title:       t.Title,
		Description: clone(t.Description),
		DueDate:     clone(t.DueDate),
		Status:      t.Status,
	}
}

// Optional maps blank input to an absent value.
func Optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Display renders an optional field, "-" when absent or empty.
func Display(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
