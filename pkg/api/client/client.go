package client

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

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
)

// Client provides typed access to the project-manager API. It is the
// request-issuing layer interactive tools use; the server re-validates
// everything it sends.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:4000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// SetToken updates the bearer token after login.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// Session is the token and profile returned by signup and login.
type Session struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]string{"action": "signup", "name": name, "email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth", body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"action": "login", "email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth", body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Verify resolves the profile behind a previously issued token.
func (c *Client) Verify(ctx context.Context, token string) (*domain.Profile, error) {
	body := map[string]string{"action": "verify", "token": token}
	var resp struct {
		User domain.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListProjects returns the caller's projects.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project owned by the caller.
func (c *Client) CreateProject(ctx context.Context, name, description string, status domain.ProjectStatus) (*domain.Project, error) {
	body := map[string]any{"name": name, "description": description}
	if status != "" {
		body["status"] = status
	}
	var project domain.Project
	if err := c.do(ctx, http.MethodPost, "/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies the given fields to a project; absent map keys
// are left untouched by the server.
func (c *Client) UpdateProject(ctx context.Context, projectID string, fields map[string]any) (*domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(projectID), fields, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project and all of its tasks.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(projectID), nil, nil)
}

// ListTasks returns the tasks under a project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(projectID)+"/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task under a project.
func (c *Client) CreateTask(ctx context.Context, projectID, title, description string, dueDate domain.Date) (*domain.Task, error) {
	body := map[string]any{"title": title, "description": description, "dueDate": dueDate}
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/projects/"+url.PathEscape(projectID)+"/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies the given fields to a task.
func (c *Client) UpdateTask(ctx context.Context, projectID, taskID string, fields map[string]any) (*domain.Task, error) {
	var task domain.Task
	path := "/projects/" + url.PathEscape(projectID) + "/tasks/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodPut, path, fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	path := "/projects/" + url.PathEscape(projectID) + "/tasks/" + url.PathEscape(taskID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractError(resp.Body)
		return APIError{Status: resp.StatusCode, Message: msg}
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	if body == nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(payload.Error)
}
