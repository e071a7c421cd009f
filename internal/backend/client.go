package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/triage"
)

const (
	// DefaultBaseURL is where the proxy listens in local development
	DefaultBaseURL = "http://localhost:8080"

	// DefaultMaxResults caps how many messages sync and search request
	DefaultMaxResults = 50

	// maxErrorBody bounds how much of an error response is kept for diagnostics
	maxErrorBody = 512
)

// Client talks to the backend mail proxy. The proxy owns the Gmail
// OAuth session; this client only speaks the narrow REST contract it
// exposes and never holds mail credentials itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a proxy client for the given base URL. An empty
// baseURL falls back to DefaultBaseURL; a nil logger falls back to
// slog.Default().
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: secureHTTPClient,
		logger:     logging.WithService(logger, "backend"),
	}
}

// BaseURL returns the configured proxy base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthStatus probes the proxy's session state via GET /auth/status.
// A ConnectivityError means offline; a StatusError means the proxy is
// reachable but misbehaving ("configured but broken").
func (c *Client) AuthStatus(ctx context.Context) (*AuthStatus, error) {
	res, err := c.do(ctx, "authStatus", http.MethodGet, "/auth/status", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := c.checkStatus("authStatus", res); err != nil {
		return nil, err
	}

	var status AuthStatus
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode auth status: %w", err)
	}
	return &status, nil
}

// LoginURL returns the address a user must open in a browser to begin
// the login flow. GET /auth answers with a redirect into the provider's
// consent screen, so the client hands the URL out instead of following it.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth"
}

// Logout ends the proxy session via POST /auth/logout
func (c *Client) Logout(ctx context.Context) error {
	res, err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return c.checkStatus("logout", res)
}

// ListEmails fetches the proxy's cached message list via GET /emails
func (c *Client) ListEmails(ctx context.Context) ([]triage.RawMessage, error) {
	return c.fetchMessages(ctx, "listEmails", http.MethodGet, "/emails", nil)
}

// Sync asks the proxy to refresh from the mail provider via
// POST /sync?max=N and returns the refreshed list. A max of 0 or less
// falls back to DefaultMaxResults.
func (c *Client) Sync(ctx context.Context, max int) ([]triage.RawMessage, error) {
	if max <= 0 {
		max = DefaultMaxResults
	}
	query := url.Values{"max": {strconv.Itoa(max)}}
	return c.fetchMessages(ctx, "sync", http.MethodPost, "/sync", query)
}

// Search queries the proxy's messages via GET /search?q=&max=N
func (c *Client) Search(ctx context.Context, q string, max int) ([]triage.RawMessage, error) {
	if max <= 0 {
		max = DefaultMaxResults
	}
	query := url.Values{"q": {q}, "max": {strconv.Itoa(max)}}
	return c.fetchMessages(ctx, "search", http.MethodGet, "/search", query)
}

// fetchMessages performs a request against a message-returning endpoint
// and unwraps the {messages: [...]} envelope
func (c *Client) fetchMessages(ctx context.Context, op, method, path string, query url.Values) ([]triage.RawMessage, error) {
	res, err := c.do(ctx, op, method, path, query)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := c.checkStatus(op, res); err != nil {
		return nil, err
	}

	var payload messagesResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", op, err)
	}

	c.logger.Debug("fetched messages",
		logging.Operation(op),
		logging.Count(len(payload.Messages)))
	return payload.Messages, nil
}

// do builds and sends one request. Transport-level failures come back
// as ConnectivityError; the caller owns the response body otherwise.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("proxy unreachable", logging.Operation(op), logging.Err(err))
		return nil, &ConnectivityError{Op: op, Err: err}
	}
	return res, nil
}

// checkStatus converts a non-2xx response into a StatusError, keeping a
// bounded slice of the body for the error message
func (c *Client) checkStatus(op string, res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return &StatusError{
		Op:         op,
		StatusCode: res.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
