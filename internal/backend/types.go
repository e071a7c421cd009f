package backend

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/teemow/inboxtriage/internal/triage"
)

// secureHTTPClient is a configured HTTP client with proper timeouts and security settings
var secureHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DisableKeepAlives:     false,
	},
}

// AuthStatus reports the proxy's session and configuration state
type AuthStatus struct {
	// IsAuthenticated is true when the proxy holds a valid mail session
	IsAuthenticated bool `json:"isAuthenticated"`

	// IsConfigured is true when the proxy has mail credentials configured
	IsConfigured bool `json:"isConfigured"`

	// UserEmail is the address of the signed-in user, empty when signed out
	UserEmail string `json:"userEmail"`
}

// messagesResponse is the envelope every message-returning endpoint uses
type messagesResponse struct {
	Messages []triage.RawMessage `json:"messages"`
}

// ConnectivityError reports that the proxy could not be reached at all.
// Callers of read-only operations treat it as an offline condition and
// fall back to cached data instead of failing.
type ConnectivityError struct {
	// Op is the operation that failed (e.g., "listEmails", "sync")
	Op string

	// Err is the underlying transport error
	Err error
}

// Error implements the error interface
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("backend %s: proxy unreachable: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// StatusError reports a reachable proxy answering outside the 2xx range.
// This is distinct from ConnectivityError: the backend is up but the
// request was rejected or failed server-side.
type StatusError struct {
	// Op is the operation that failed
	Op string

	// StatusCode is the HTTP status the proxy returned
	StatusCode int

	// Body is a truncated copy of the response body, for diagnostics
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend %s: http status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend %s: http status %d", e.Op, e.StatusCode)
}

// IsOffline reports whether err means the proxy was unreachable
func IsOffline(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}
