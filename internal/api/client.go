package api

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

	"github.com/entrepeneur4lyf/sqlpilot/internal/notifications"
)

const defaultTimeout = 30 * time.Second

// TokenSource exposes read-only access to the current bearer token.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Error is the error returned for any failed backend call. StatusCode is
// zero for network-level failures that never produced a response.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// Unwrap returns the underlying transport error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Client is the single outbound HTTP gateway. Every backend call flows
// through it: it attaches the bearer token when one is held and maps
// failure responses to user-visible notifications before re-raising them.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	notifier       notifications.Notifier
	onUnauthorized func()
	logger         *log.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithTimeout overrides the default request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithNotifier sets the notification sink for mapped error responses
func WithNotifier(notifier notifications.Notifier) ClientOption {
	return func(c *Client) {
		c.notifier = notifier
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given base URL
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource sets the read-only token source consulted per request.
// Set after construction because the auth store that owns the session is
// itself built on top of this client.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// SetUnauthorizedHandler sets the callback invoked when the backend
// answers 401. The handler is expected to clear the session and steer the
// user back to the login view.
func (c *Client) SetUnauthorizedHandler(handler func()) {
	c.onUnauthorized = handler
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	return c.do(req, out)
}

// Post performs a JSON POST request and decodes the response into out.
// A nil body sends an empty request body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: err.Error(), Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// PostForm performs a form-encoded POST request and decodes the response
// into out. The login endpoint follows the OAuth2 password flow, which
// expects form data rather than JSON.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

// Delete performs a DELETE request and decodes the response into out
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	return c.do(req, out)
}

// do executes the request with the bearer token attached, maps failures
// to notifications, and decodes successful responses into out.
func (c *Client) do(req *http.Request, out any) error {
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		c.notify(notifications.LevelError, "Network error. Please check your connection.")
		return &Error{Message: "network error", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notify(notifications.LevelError, "Network error. Please check your connection.")
		return &Error{Message: "reading response failed", Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.mapError(req, resp.StatusCode, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, Message: "decoding response failed", Err: err}
		}
	}
	return nil
}

// mapError turns a failure status into a notification per the fixed table
// and re-raises the error so callers can still branch on it.
func (c *Client) mapError(req *http.Request, status int, body []byte) error {
	message := errorDetail(body)

	switch status {
	case http.StatusUnauthorized:
		c.notify(notifications.LevelError, "Unauthorized. Please login again.")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case http.StatusForbidden:
		c.notify(notifications.LevelError, "Forbidden. You do not have permission.")
	case http.StatusNotFound:
		c.notify(notifications.LevelError, "Resource not found.")
	case http.StatusInternalServerError:
		c.notify(notifications.LevelError, "Server error. Please try again later.")
	default:
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", status)
		}
		c.notify(notifications.LevelError, message)
	}

	if message == "" {
		message = http.StatusText(status)
	}

	c.logger.Warn("request rejected", "method", req.Method, "path", req.URL.Path, "status", status)
	return &Error{StatusCode: status, Message: message}
}

// notify forwards to the configured notifier, if any
func (c *Client) notify(level notifications.Level, message string) {
	if c.notifier == nil {
		return
	}
	switch level {
	case notifications.LevelSuccess:
		c.notifier.Success("", message)
	case notifications.LevelWarning:
		c.notifier.Warning("", message)
	case notifications.LevelError:
		c.notifier.Error("", message)
	default:
		c.notifier.Info("", message)
	}
}

// errorDetail extracts the backend's error payload message. FastAPI-style
// backends use "detail"; others use "message".
func errorDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}
