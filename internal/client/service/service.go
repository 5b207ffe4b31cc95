// Package service implements the HTTP client for the remote list API.
// It is stateless except for the bearer token cached after login.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"listpad/internal/models"
)

// Error is a typed failure from the remote API. Code mirrors the HTTP status
// where one was available and is 0 for transport failures.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Code)
}

// Client talks to the remote list API. All methods issue a single HTTP
// request with no retries; failures come back as *Error.
type Client struct {
	httpc   *http.Client
	baseURL string
	token   string
}

// New creates a Client for the API at baseURL. httpc may be nil, in which
// case http.DefaultClient is used.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{httpc: httpc, baseURL: strings.TrimRight(baseURL, "/")}
}

// SetToken primes the cached bearer token, used when restoring a stored
// session without contacting the login endpoint again.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new user and returns it.
func (c *Client) Register(ctx context.Context, username, password string) (*models.User, error) {
	body := map[string]string{"username": username, "password": password}
	user := &models.User{}
	if err := c.do(ctx, http.MethodPost, "/users", body, 0, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login exchanges credentials for a session token. On success the token is
// cached and attached to every subsequent call.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var token string
	if err := c.do(ctx, http.MethodPost, "/users/login", body, 0, &token); err != nil {
		return "", err
	}
	c.token = token
	return token, nil
}

// Lists returns all lists of the logged-in user.
func (c *Client) Lists(ctx context.Context) ([]*models.List, error) {
	var lists []*models.List
	if err := c.do(ctx, http.MethodGet, "/list", nil, 0, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// List returns a single list, or nil when the id is unknown. The endpoint
// responds with a zero-or-one element array.
func (c *Client) List(ctx context.Context, id int64) (*models.List, error) {
	var lists []*models.List
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/list/%d", id), nil, 0, &lists); err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return nil, nil
	}
	return lists[0], nil
}

// AddList creates a list with the given name and returns it.
func (c *Client) AddList(ctx context.Context, name string) (*models.List, error) {
	list := &models.List{}
	if err := c.do(ctx, http.MethodPost, "/list", map[string]string{"name": name}, 0, list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateList renames a list. The result reports whether exactly one row was
// affected server-side; the endpoint responds with a row-count array.
func (c *Client) UpdateList(ctx context.Context, id int64, name string) (bool, error) {
	var affected []int64
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/list/%d", id), map[string]string{"name": name}, 0, &affected); err != nil {
		return false, err
	}
	return len(affected) == 1 && affected[0] == 1, nil
}

// DeleteList removes a list.
func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/list/%d", id), nil, 0, nil)
}

// AddTask creates a task under the given list. The API signals creation with
// 201; anything else is a failure.
func (c *Client) AddTask(ctx context.Context, listID int64, title string) (*models.Task, error) {
	body := map[string]any{"idlist": listID, "task": title}
	task := &models.Task{}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, http.StatusCreated, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns the tasks of a list, possibly empty.
func (c *Client) ListTasks(ctx context.Context, listID int64) ([]*models.Task, error) {
	var tasks []*models.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/list/tasks/%d", listID), nil, 0, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Task returns a single task, or nil when the id is unknown. The endpoint
// responds with the payload or an empty body.
func (c *Client) Task(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{}
	found, err := c.doMaybe(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), task)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return task, nil
}

// UpdateTask retitles a task. The result reports whether exactly one row was
// affected server-side.
func (c *Client) UpdateTask(ctx context.Context, id int64, title string) (bool, error) {
	var affected []int64
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), map[string]string{"task": title}, 0, &affected); err != nil {
		return false, err
	}
	return len(affected) == 1 && affected[0] == 1, nil
}

// DeleteTask removes a single task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, 0, nil)
}

// DeleteListTasks bulk-deletes every task of a list. The API signals success
// with 200; anything else is a failure.
func (c *Client) DeleteListTasks(ctx context.Context, listID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/list/tasks/%d", listID), nil, http.StatusOK, nil)
}

// do issues one request and decodes the JSON response into out when out is
// non-nil. wantStatus pins the exact success status; when 0, any 2xx counts.
func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, wantStatus); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Code: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// doMaybe is do for endpoints that answer with a payload or an empty body.
// found is false when the body was empty.
func (c *Client) doMaybe(ctx context.Context, method, path string, out any) (bool, error) {
	resp, err := c.send(ctx, method, path, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, 0); err != nil {
		return false, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &Error{Code: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, &Error{Code: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return true, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	return resp, nil
}

// checkStatus converts a non-success response into *Error, using the
// response body text when the server sent one.
func (c *Client) checkStatus(resp *http.Response, wantStatus int) error {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if wantStatus != 0 {
		ok = resp.StatusCode == wantStatus
	}
	if ok {
		return nil
	}

	msg := http.StatusText(resp.StatusCode)
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 512)); err == nil {
		if text := strings.TrimSpace(string(data)); text != "" {
			msg = text
		}
	}
	return &Error{Code: resp.StatusCode, Message: msg}
}
