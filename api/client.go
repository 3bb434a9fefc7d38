package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmanager/staffkit/core"
)

// DefaultTimeout bounds every request unless the caller supplies their
// own http.Client.
const DefaultTimeout = 10 * time.Second

// User-facing messages for transport and server failures, kept in the
// application's language.
const (
	msgNoConnection   = "Sin conexión al servidor. Verifica tu conexión a internet."
	msgSessionExpired = "Tu sesión ha expirado. Por favor inicia sesión nuevamente."
	msgTimeout        = "La solicitud tardó demasiado. Intenta nuevamente."
	msgServerError    = "Error en el servidor. Intenta nuevamente más tarde."
	msgBadRequest     = "Datos inválidos."
)

type Config struct {
	// BaseURL is the backend root, e.g. "https://api.hotel.example/api".
	BaseURL string

	// Tokens supplies the bearer token and the refresh used on 401.
	// Nil produces an unauthenticated client.
	Tokens core.TokenSource

	// HTTPClient overrides the default client. Leave nil for the
	// default with DefaultTimeout.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client talks to the staff backend's REST API. Resource groups hang off
// the client; all of them share the same transport, auth and error
// handling.
type Client struct {
	baseURL string
	tokens  core.TokenSource
	http    *http.Client
	logger  *slog.Logger

	Auth       *AuthAPI
	Users      *UsersAPI
	Tasks      *TasksAPI
	Attendance *AttendanceAPI
	Notes      *NotesAPI
	Reports    *ReportsAPI
}

func New(config Config) (*Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, core.ErrBaseURLRequired
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		tokens:  config.Tokens,
		http:    httpClient,
		logger:  logger,
	}
	c.Auth = &AuthAPI{client: c}
	c.Users = &UsersAPI{client: c}
	c.Tasks = &TasksAPI{client: c}
	c.Attendance = &AttendanceAPI{client: c}
	c.Notes = &NotesAPI{client: c}
	c.Reports = &ReportsAPI{client: c}

	return c, nil
}

// Error is a failed API call. Status 0 means the request never produced
// an HTTP response (network failure or timeout).
type Error struct {
	Status  int
	Message string
	Timeout bool
}

func (e *Error) Error() string {
	if e.Status == 0 {
		if e.Timeout {
			return "api: request timed out"
		}
		return fmt.Sprintf("api: network error: %s", e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// UserMessage maps the failure onto the message shown to staff.
func (e *Error) UserMessage() string {
	switch {
	case e.Timeout:
		return msgTimeout
	case e.Status == 0:
		return msgNoConnection
	case e.Status == http.StatusUnauthorized:
		return msgSessionExpired
	case e.Status >= http.StatusInternalServerError:
		return msgServerError
	case e.Status == http.StatusBadRequest:
		if e.Message != "" {
			return e.Message
		}
		return msgBadRequest
	default:
		if e.Message != "" {
			return e.Message
		}
		return msgServerError
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Data       json.RawMessage  `json:"data"`
	Pagination *core.Pagination `json:"pagination"`
	Message    string           `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*core.Pagination, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// do runs one API call: marshal, send with auth headers, one-shot
// refresh-and-retry on 401, envelope decode. out may be nil for calls
// whose response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*core.Pagination, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.AccessToken()
	}

	retried := false
	for {
		resp, err := c.send(ctx, method, path, query, payload, token)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusUnauthorized && !retried && c.tokens != nil {
			resp.Body.Close()
			retried = true

			token, err = c.tokens.RefreshAccessToken(ctx)
			if err != nil {
				c.logger.Warn("token refresh after 401 failed", "method", method, "path", path, "error", err)
				return nil, &Error{Status: http.StatusUnauthorized, Message: msgSessionExpired}
			}
			continue
		}

		return c.decode(resp, out)
	}
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("request timed out", "method", method, "path", path)
			return nil, &Error{Timeout: true, Message: err.Error()}
		}
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, &Error{Message: err.Error()}
	}
	return resp, nil
}

func (c *Client) decode(resp *http.Response, out any) (*core.Pagination, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: err.Error()}
	}

	var env envelope
	if len(raw) > 0 {
		// A non-envelope body (proxies, plain-text errors) is kept as
		// the message.
		if err := json.Unmarshal(raw, &env); err != nil {
			env.Message = strings.TrimSpace(string(raw))
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}

	return env.Pagination, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
