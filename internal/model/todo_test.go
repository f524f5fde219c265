package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodo_DecodeNumericAndStringIDs(t *testing.T) {
	var todos []Todo
	err := json.Unmarshal([]byte(`[
		{"id":1,"title":"Buy milk","description":null,"dueDate":null,"status":"PENDING"},
		{"id":"a-2","title":"Walk","description":"","dueDate":"2025-01-02","status":"DONE"}
	]`), &todos)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	assert.Equal(t, ID("1"), todos[0].ID)
	assert.Nil(t, todos[0].Description)
	assert.Nil(t, todos[0].DueDate)

	assert.Equal(t, ID("a-2"), todos[1].ID)
	require.NotNil(t, todos[1].Description)
	assert.Equal(t, "", *todos[1].Description)
	assert.Equal(t, "2025-01-02", Deref(todos[1].DueDate))
	assert.Equal(t, StatusDone, todos[1].Status)
}

func TestPayload_EncodesAbsentAsNull(t *testing.T) {
	b, err := json.Marshal(Payload{Title: "Buy milk", Status: StatusPending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Buy milk","description":null,"dueDate":null,"status":"PENDING"}`, string(b))
}

func TestTodoPayload_CopiesEveryField(t *testing.T) {
	desc := "two litres"
	todo := Todo{ID: "1", Title: "Buy milk", Description: &desc, Status: StatusDone}

	p := todo.Payload()
	assert.Equal(t, "Buy milk", p.Title)
	assert.Equal(t, "two litres", Deref(p.Description))
	assert.Nil(t, p.DueDate)
	assert.Equal(t, StatusDone, p.Status)

	*p.Description = "changed"
	assert.Equal(t, "two litres", desc, "payload must not alias the record")
}

func TestOptional(t *testing.T) {
	assert.Nil(t, Optional(""))
	assert.Nil(t, Optional("   "))
	assert.Equal(t, "x", Deref(Optional("x")))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("done")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestStatus_Cycle(t *testing.T) {
	assert.Equal(t, StatusDone, StatusPending.Next())
	assert.Equal(t, StatusPending, StatusDone.Next())
	assert.Equal(t, StatusDone, StatusPending.Prev())
	assert.Equal(t, StatusPending, Status("").Next())
}

func TestDisplay(t *testing.T) {
	empty := ""
	due := "2025-03-01"
	assert.Equal(t, "-", Display(nil))
	assert.Equal(t, "-", Display(&empty))
	assert.Equal(t, "2025-03-01", Display(&due))
}
