// Package apiclient talks to the user REST API: list, create, update and
// delete user documents under a configured base URL.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-admin/internal/dto"
	"user-admin/internal/model"
)

// Success messages sent by the backend. They are only compared here; callers
// branch on Result.Status.
const (
	MessageCreated = "User successfully created!"
	MessageUpdated = "User successfully updated!"
	MessageDeleted = "User successfully deleted!"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 10 << 20
)

// ErrMissingID is returned when an operation needs a user id and none is
// available, including a create response that does not carry one.
var ErrMissingID = errors.New("user id is missing")

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL      string
	http         Doer
	timeout      time.Duration
	log          *zap.Logger
	newRequestID func() string
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithTimeout bounds every request. d <= 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New 建立 API client，baseURL 必須是絕對網址
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", baseURL)
	}
	c := &Client{
		baseURL:      strings.TrimRight(u.String(), "/"),
		http:         http.DefaultClient,
		timeout:      DefaultTimeout,
		log:          zap.NewNop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListUsers fetches every user in server order. Failures are logged and
// returned with a nil slice so callers can fall back to an empty list.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		c.log.Warn("list users failed", zap.Error(err))
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	if status != http.StatusOK {
		err := fmt.Errorf("ListUsers: unexpected status %d: %s", status, fallbackMessage(status, body))
		c.log.Warn("list users failed", zap.Error(err))
		return nil, err
	}
	var users []model.User
	if err := json.Unmarshal(body, &users); err != nil {
		c.log.Warn("list users: decode failed", zap.Error(err))
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// CreateUser posts u without its id. On success the returned Result carries
// the server-assigned id.
func (c *Client) CreateUser(ctx context.Context, u model.User) (Result, error) {
	u.ID = nil
	payload, err := json.Marshal(u)
	if err != nil {
		return Result{}, fmt.Errorf("CreateUser: %w", err)
	}
	status, body, err := c.do(ctx, http.MethodPost, "/user", payload)
	if err != nil {
		return Result{}, fmt.Errorf("CreateUser: %w", err)
	}

	res := Result{HTTPStatus: status}
	var resp dto.CreateUserResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Message == "" {
		res.Message = fallbackMessage(status, body)
		return res, nil
	}
	res.Message = resp.Message
	if resp.Message != MessageCreated {
		return res, nil
	}
	if resp.ID == nil || resp.ID.OID == "" {
		return res, fmt.Errorf("CreateUser: %w", ErrMissingID)
	}
	res.Status = StatusSucceeded
	res.ID = resp.ID.OID
	return res, nil
}

// UpdateUser sends the patch to PUT /user/{id}.
func (c *Client) UpdateUser(ctx context.Context, p model.PartialUser) (Result, error) {
	id := p.Key()
	if id == "" {
		return Result{}, fmt.Errorf("UpdateUser: %w", ErrMissingID)
	}
	p.ID = nil
	payload, err := json.Marshal(p)
	if err != nil {
		return Result{}, fmt.Errorf("UpdateUser: %w", err)
	}
	res, err := c.message(ctx, http.MethodPut, "/user/"+url.PathEscape(id), payload, MessageUpdated)
	if err != nil {
		return Result{}, fmt.Errorf("UpdateUser: %w", err)
	}
	res.ID = id
	return res, nil
}

// DeleteUser removes the user. The backend expects the id as a JSON string
// body in addition to the path.
func (c *Client) DeleteUser(ctx context.Context, id string) (Result, error) {
	if id == "" {
		return Result{}, fmt.Errorf("DeleteUser: %w", ErrMissingID)
	}
	payload, err := json.Marshal(id)
	if err != nil {
		return Result{}, fmt.Errorf("DeleteUser: %w", err)
	}
	res, err := c.message(ctx, http.MethodDelete, "/user/"+url.PathEscape(id), payload, MessageDeleted)
	if err != nil {
		return Result{}, fmt.Errorf("DeleteUser: %w", err)
	}
	res.ID = id
	return res, nil
}

func (c *Client) message(ctx context.Context, method, path string, payload []byte, want string) (Result, error) {
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return Result{}, err
	}
	res := Result{HTTPStatus: status}
	var resp dto.MessageResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Message == "" {
		res.Message = fallbackMessage(status, body)
		return res, nil
	}
	res.Message = resp.Message
	if resp.Message == want {
		res.Status = StatusSucceeded
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	reqID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("request_id", reqID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	c.log.Info("request",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return resp.StatusCode, body, nil
}

// fallbackMessage is used when the backend answers without a JSON message,
// e.g. a plain-text 400 or an empty 500.
func fallbackMessage(status int, body []byte) string {
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}
