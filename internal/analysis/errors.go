package analysis

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates the analysis service was constructed without
// credentials. It is raised before any network call so the caller can point
// the user at their configuration.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not configured; set it in the environment or a .env file")

// AuthError represents a rejected credential. The service answered, but it
// refused the configured API key, so retrying without rotating the key is
// pointless.
type AuthError struct {
	// Op is the operation that failed (e.g., "analyze", "draft")
	Op string

	// StatusCode is the HTTP status returned by the service
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("analysis %s: API key rejected (status %d), rotate OPENAI_API_KEY: %v", e.Op, e.StatusCode, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ServiceError represents any other non-success response from the analysis
// service, carrying the service-provided message when one is available.
type ServiceError struct {
	// Op is the operation that failed (e.g., "analyze", "draft")
	Op string

	// StatusCode is the HTTP status returned by the service, 0 when the
	// failure happened before a response was received
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis %s: service error (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err indicates rejected credentials.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
