package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoclient/internal/config"
	"github.com/idilsaglam/todoclient/internal/exitcode"
	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/remote"
	"github.com/idilsaglam/todoclient/internal/service"
	"github.com/idilsaglam/todoclient/internal/testutil"
)

type result struct {
	code     int
	out, err string
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"TODO_CONFIG", "TODO_BASE_URL", "TODO_TIMEOUT", "TODO_LOG_LEVEL", "TODO_LOG_FILE", "TODO_THEME"} {
		t.Setenv(k, "")
	}
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func run(t *testing.T, svc *testutil.FakeService, args ...string) result {
	t.Helper()
	isolate(t)
	var out, errOut bytes.Buffer
	app := &App{
		Out: &out,
		Err: &errOut,
		NewService: func(*config.Config, *log.Logger) (service.Service, error) {
			return svc, nil
		},
	}
	code := execute(context.Background(), app, args)
	return result{code: code, out: out.String(), err: errOut.String()}
}

func strp(s string) *string { return &s }

func seed() *testutil.FakeService {
	return testutil.NewFakeService(
		model.Todo{ID: "1", Title: "Buy milk", Description: strp("2 litres"), Status: model.StatusPending},
		model.Todo{ID: "2", Title: "Walk dog", DueDate: strp("2025-06-01"), Status: model.StatusDone},
	)
}

func TestList(t *testing.T) {
	r := run(t, seed(), "ls")

	assert.Equal(t, exitcode.Success, r.code)
	assert.Contains(t, r.out, "Buy milk")
	assert.Contains(t, r.out, "2025-06-01")
	assert.Empty(t, r.err)
}

func TestList_FetchFailure(t *testing.T) {
	svc := seed()
	svc.ListErr = &remote.Error{Op: "list todos", Kind: remote.Transport, Message: "connection refused"}

	r := run(t, svc, "ls")

	assert.Equal(t, exitcode.BackendError, r.code)
	assert.Contains(t, r.err, "Failed to fetch todos")
	assert.NotContains(t, r.err, "--help")
}

func TestShow(t *testing.T) {
	r := run(t, seed(), "show", "2")

	assert.Equal(t, exitcode.Success, r.code)
	assert.Contains(t, r.out, "Walk dog")
	assert.Contains(t, r.out, "Due Date")
	assert.Contains(t, r.out, "DONE")
}

func TestShow_NotFound(t *testing.T) {
	r := run(t, seed(), "show", "99")

	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.err, "Failed to load todo")
}

func TestAdd(t *testing.T) {
	svc := seed()
	r := run(t, svc, "add", "Feed", "cat", "--due", "2025-07-01")

	require.Equal(t, exitcode.Success, r.code, r.err)
	assert.Contains(t, r.out, "Todo created successfully")
	assert.Equal(t, []string{"create", "list"}, svc.Ops())

	p, ok := svc.LastPayload()
	require.True(t, ok)
	assert.Equal(t, "Feed cat", p.Title)
	assert.Nil(t, p.Description)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, "2025-07-01", *p.DueDate)
	assert.Equal(t, model.StatusPending, p.Status)
}

func TestAdd_BlankTitle(t *testing.T) {
	svc := seed()
	r := run(t, svc, "add", "   ")

	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.err, "title cannot be empty")
	assert.Empty(t, svc.Ops())
}

func TestAdd_BadStatus(t *testing.T) {
	svc := seed()
	r := run(t, svc, "add", "x", "--status", "later")

	assert.Equal(t, exitcode.Usage, r.code)
	assert.Empty(t, svc.Ops())
}

func TestEdit_ClearsDescriptionKeepsStatus(t *testing.T) {
	svc := seed()
	r := run(t, svc, "edit", "2", "--description", "", "--title", "Walk the dog")

	require.Equal(t, exitcode.Success, r.code, r.err)
	assert.Contains(t, r.out, "Updated successfully")
	assert.Equal(t, []string{"get", "update", "list", "get"}, svc.Ops())

	p, _ := svc.LastPayload()
	assert.Equal(t, "Walk the dog", p.Title)
	assert.Nil(t, p.Description)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, "2025-06-01", *p.DueDate)
	assert.Equal(t, model.StatusDone, p.Status)
}

func TestEdit_NothingToChange(t *testing.T) {
	svc := seed()
	r := run(t, svc, "edit", "1")

	assert.Equal(t, exitcode.Usage, r.code)
	assert.Empty(t, svc.Ops())
}

func TestEdit_ServerRejects(t *testing.T) {
	svc := seed()
	svc.UpdateErr = &remote.Error{Op: "update todo", Kind: remote.Validation, Status: http.StatusBadRequest, Message: "bad date"}

	r := run(t, svc, "edit", "1", "--due", "tomorrow")

	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.err, "Failed to update")
	assert.Contains(t, r.err, "bad date")
}

func TestDone(t *testing.T) {
	svc := seed()
	r := run(t, svc, "done", "1")

	require.Equal(t, exitcode.Success, r.code, r.err)
	assert.Contains(t, r.out, "Status updated")

	p, _ := svc.LastPayload()
	assert.Equal(t, model.StatusDone, p.Status)
	assert.Equal(t, "Buy milk", p.Title)
	require.NotNil(t, p.Description)
	assert.Equal(t, "2 litres", *p.Description)
}

func TestStatus(t *testing.T) {
	svc := seed()
	r := run(t, svc, "status", "2", "pending")

	require.Equal(t, exitcode.Success, r.code, r.err)
	assert.Equal(t, model.StatusPending, svc.Todos()[1].Status)

	r = run(t, svc, "status", "2", "maybe")
	assert.Equal(t, exitcode.Usage, r.code)
}

func TestRemove(t *testing.T) {
	svc := seed()
	r := run(t, svc, "rm", "1")

	require.Equal(t, exitcode.Success, r.code, r.err)
	assert.Contains(t, r.out, "Todo deleted")
	assert.Equal(t, []string{"get", "delete", "list"}, svc.Ops())
	assert.Len(t, svc.Todos(), 1)
}

func TestRemove_BackendFailure(t *testing.T) {
	svc := seed()
	svc.DeleteErr = &remote.Error{Op: "delete todo", Kind: remote.Timeout, Message: "request timed out"}

	r := run(t, svc, "rm", "1")

	assert.Equal(t, exitcode.BackendError, r.code)
	assert.Contains(t, r.err, "Failed to delete")
	assert.Len(t, svc.Todos(), 2)
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"bogus"},
		{"show"},
		{"ls", "--nope"},
		{"--base-url", "ftp://x", "ls"},
	} {
		r := run(t, seed(), args...)
		assert.Equal(t, exitcode.Usage, r.code, "args %v", args)
		assert.Contains(t, r.err, "--help", "args %v", args)
	}
}

func TestVersion(t *testing.T) {
	r := run(t, seed(), "version")
	assert.Equal(t, exitcode.Success, r.code)
	assert.Contains(t, r.out, `"dev"`)

	r = run(t, seed(), "version", "--short")
	assert.Equal(t, exitcode.Success, r.code)
	assert.Contains(t, r.out, "dev")
	assert.NotContains(t, r.out, "{")
}

func TestRoot_NotATerminalLists(t *testing.T) {
	svc := seed()
	r := run(t, svc)

	assert.Equal(t, exitcode.Success, r.code)
	assert.Contains(t, r.out, "Walk dog")
	assert.Equal(t, []string{"list"}, svc.Ops())
}

func TestList_AgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/todos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 7, "title": "From server", "description": nil, "dueDate": nil, "status": "PENDING"},
		})
	}))
	t.Cleanup(srv.Close)
	isolate(t)

	var out, errOut bytes.Buffer
	app := &App{Out: &out, Err: &errOut, NewService: RemoteService}
	code := execute(context.Background(), app, []string{"--base-url", srv.URL, "ls"})

	require.Equal(t, exitcode.Success, code, errOut.String())
	assert.Contains(t, out.String(), "From server")
	assert.Contains(t, out.String(), "7")
}
