package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/abdidvp/invdash/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token for outgoing requests and is torn down
// when the backend rejects it.
type TokenSource interface {
	Token() string
	Teardown() (bool, error)
}

// Client is the HTTP adapter every backend call goes through. It attaches the
// session token, forwards cookies and turns a 401 into a session teardown plus a
// forced navigation to the login view. There is no retry or timeout; callers
// cancel through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    TokenSource
	nav        domain.Navigator
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Give it a Jar to forward cookies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client rooted at baseURL.
func New(baseURL string, session TokenSource, nav domain.Navigator, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		session:    session,
		nav:        nav,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "api").Logger()
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do sends one request. body is encoded as JSON when non-nil; a successful
// response is decoded into out when out is non-nil and the body is not empty.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	requestID := req.Header.Get("X-Request-ID")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return &domain.APIError{Kind: domain.APIErrorTransport, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("request")

	return c.handleResponse(resp, method, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) handleResponse(resp *http.Response, method, path string, out any) error {
	if resp.StatusCode == http.StatusUnauthorized {
		c.onUnauthorized(method, path)
		return domain.ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Kind: domain.APIErrorTransport, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{
			Kind:    domain.APIErrorStatus,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(data, resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.APIError{Kind: domain.APIErrorDecode, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// onUnauthorized ends the session and sends the shell to the login view.
func (c *Client) onUnauthorized(method, path string) {
	c.logger.Error().Str("method", method).Str("path", path).Msg("unauthorized access, redirecting to login")
	if _, err := c.session.Teardown(); err != nil {
		c.logger.Error().Err(err).Msg("clearing session")
	}
	c.nav.Navigate(domain.RouteLogin)
}

// errorMessage extracts a readable message from an error body: a JSON
// {"error": ...} or {"message": ...} object, else the trimmed text, else the status text.
func errorMessage(body []byte, status int) string {
	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
