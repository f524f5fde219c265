// Package remote implements service.Service over the todo REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/service"
)

const (
	// DefaultTimeout bounds every call when no timeout is configured.
	DefaultTimeout = 10 * time.Second

	collectionPath = "/api/todos"
	maxBodyBytes   = 4 << 20
)

var _ service.Service = (*Client)(nil)

// Client talks to <base>/api/todos.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (tests, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger routes request logs to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for the service rooted at baseURL. Both the server root
// ("http://host:8080") and the collection URL (".../api/todos") are accepted.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(u.Path, collectionPath) {
		u.Path += collectionPath
	}
	u.RawQuery, u.Fragment = "", ""

	c := &Client{
		endpoint: u.String(),
		http:     &http.Client{},
		timeout:  DefaultTimeout,
		log:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the collection URL.
func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) ListAll(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, "list todos", http.MethodGet, "", nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (c *Client) GetOne(ctx context.Context, id model.ID) (model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, "get todo", http.MethodGet, string(id), nil, &todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (c *Client) Create(ctx context.Context, p model.Payload) (model.Todo, error) {
	const op = "create todo"
	if err := Validate(p); err != nil {
		return model.Todo{}, &Error{Op: op, Kind: Validation, Message: err.Error(), Err: err}
	}
	var todo model.Todo
	if err := c.do(ctx, op, http.MethodPost, "", p, &todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (c *Client) Update(ctx context.Context, id model.ID, p model.Payload) (model.Todo, error) {
	const op = "update todo"
	if err := ValidateShape(p); err != nil {
		return model.Todo{}, &Error{Op: op, Kind: Validation, Message: err.Error(), Err: err}
	}
	var todo model.Todo
	if err := c.do(ctx, op, http.MethodPut, string(id), p, &todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func (c *Client) Delete(ctx context.Context, id model.ID) error {
	return c.do(ctx, "delete todo", http.MethodDelete, string(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, id string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.endpoint
	if id != "" {
		target += "/" + url.PathEscape(id)
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: Unknown, Message: "encode request", Err: err}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return &Error{Op: op, Kind: Unknown, Message: "build request", Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", op, "method", method, "url", target, "request_id", reqID, "err", err)
		return transportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(op, err)
	}
	c.log.Debug("request", "op", op, "method", method, "url", target,
		"status", resp.StatusCode, "took", time.Since(start), "request_id", reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Op:      op,
			Kind:    statusKind(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: serverMessage(resp.StatusCode, data),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Kind: Unknown, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

// serverMessage extracts a human message from an error body.
func serverMessage(code int, data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if s := strings.TrimSpace(string(data)); s != "" && !strings.HasPrefix(s, "{") {
		if len(s) > 200 {
			s = s[:197] + "..."
		}
		return s
	}
	return http.StatusText(code)
}
