package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1), "empty list and tiny width are clamped")
	assert.Equal(t, "██████████ 100%", ProgressBar(3, 3, 10))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)

	SetTheme("NEON")
	assert.Equal(t, "◼", Current().BoxChecked)

	SetTheme("nope")
	assert.Equal(t, "☑", Current().BoxChecked)
}

func TestPanel_ContainsLines(t *testing.T) {
	out := Panel([]string{"Title: Buy milk", "Status: PENDING"})
	assert.True(t, strings.Contains(out, "Title: Buy milk"))
	assert.True(t, strings.Contains(out, "Status: PENDING"))
}
