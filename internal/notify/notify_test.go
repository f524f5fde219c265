package notify

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToast_LatestWinsAndExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	toast := NewToast(3 * time.Second)
	toast.now = func() time.Time { return now }

	_, ok := toast.Current()
	assert.False(t, ok)

	toast.Success("Todo created successfully")
	toast.Failure("Failed to delete", errors.New("boom"))

	ev, ok := toast.Current()
	require.True(t, ok)
	assert.Equal(t, LevelFailure, ev.Level)
	assert.Equal(t, "Failed to delete: boom", ev.Text)

	now = now.Add(4 * time.Second)
	_, ok = toast.Current()
	assert.False(t, ok)
}

func TestConsole(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out, errOut bytes.Buffer
	c := Console{Out: &out, Err: &errOut}
	c.Success("Todo deleted")
	c.Failure("Failed to delete", errors.New("not found"))

	assert.Equal(t, "✔ Todo deleted\n", out.String())
	assert.Equal(t, "✖ Failed to delete: not found\n", errOut.String())
}

type countSink struct{ ok, fail int }

func (c *countSink) Success(string)        { c.ok++ }
func (c *countSink) Failure(string, error) { c.fail++ }

func TestMulti(t *testing.T) {
	a, b := &countSink{}, &countSink{}
	m := Multi{a, b}
	m.Success("x")
	m.Failure("y", nil)
	assert.Equal(t, 1, a.ok)
	assert.Equal(t, 1, b.fail)
}
