// Package client provides a synchronizing Go client for the TaskFlow
// API. The client keeps a local copy of the caller's task list and
// refetches it after every successful mutation, so reads never serve
// locally guessed state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// ErrNotAuthenticated is returned when a call requires a session and
// none is active.
var ErrNotAuthenticated = errors.New("not authenticated")

// Task is the client-side view of a task.
type Task struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Stats summarizes the cached task list.
type Stats struct {
	Total     int
	Pending   int
	Completed int
}

// TaskPatch describes a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// APIError is an error response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Config configures the client.
type Config struct {
	BaseURL string
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// BreakerFailureThreshold is the number of consecutive transport
	// failures that trips the circuit breaker.
	BreakerFailureThreshold uint32
	// BreakerTimeout is how long the breaker stays open.
	BreakerTimeout time.Duration
}

// Client talks to a TaskFlow server.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
	tasks []Task
}

// New creates a new client for the given server.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.BreakerFailureThreshold == 0 {
		cfg.BreakerFailureThreshold = 5
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	logger := cfg.Logger
	settings := gobreaker.Settings{
		Name:        "taskflow-api",
		MaxRequests: 3,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    cfg.HTTPClient,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
		logger:  logger,
	}
}

// Register creates an account and starts a session for it.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.authenticate(ctx, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login starts a session for an existing account and loads its tasks.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, creds map[string]string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, creds, &resp); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Restore resumes a session from a previously issued token.
func (c *Client) Restore(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the active session token, empty if logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Logout ends the session and drops the cached task list.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tasks = nil
}

// Refresh refetches the task list from the server.
func (c *Client) Refresh(ctx context.Context) error {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &tasks); err != nil {
		return err
	}

	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()

	return nil
}

// CreateTask creates a task and synchronizes the local list.
func (c *Client) CreateTask(ctx context.Context, title, description string) (Task, error) {
	var created Task
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks", map[string]string{
		"title":       title,
		"description": description,
	}, &created)
	if err != nil {
		return Task{}, err
	}

	return created, c.Refresh(ctx)
}

// UpdateTask applies a partial update and synchronizes the local list.
func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (Task, error) {
	var updated Task
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+id.String(), patch, &updated); err != nil {
		return Task{}, err
	}

	return updated, c.Refresh(ctx)
}

// ToggleTask flips a task's status and synchronizes the local list.
func (c *Client) ToggleTask(ctx context.Context, id uuid.UUID) (Task, error) {
	var toggled Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+id.String()+"/toggle", nil, &toggled); err != nil {
		return Task{}, err
	}

	return toggled, c.Refresh(ctx)
}

// DeleteTask removes a task and synchronizes the local list.
func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id.String(), nil, nil); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

// Tasks returns a copy of the cached task list.
func (c *Client) Tasks() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Task(nil), c.tasks...)
}

// Stats derives counts from the cached task list. Pending counts only
// tasks whose status is exactly "pending"; in-progress tasks appear in
// the total alone.
func (c *Client) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{Total: len(c.tasks)}
	for _, t := range c.tasks {
		switch t.Status {
		case "pending":
			stats.Pending++
		case "completed":
			stats.Completed++
		}
	}
	return stats
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if path != "/api/v1/auth/register" && path != "/api/v1/auth/login" {
		return ErrNotAuthenticated
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			// Server-side failures count against the breaker.
			defer resp.Body.Close()
			return nil, readAPIError(resp)
		}
		return resp, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return readAPIError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
