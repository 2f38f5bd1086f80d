// Package xplore is a client for an IEEE-Xplore-style bibliographic
// metadata API: a validated query builder, blocking page-by-page
// result fetching, and mapping of results onto bibliography entries.
package xplore

import (
	"errors"
	"fmt"
)

// ErrEndOfResults signals that a result set has no further pages. It
// is a loop terminator, not a failure.
var ErrEndOfResults = errors.New("no more results")

// ErrRateLimited is returned when the API rejects a request for rate
// reasons (HTTP 429).
var ErrRateLimited = errors.New("rate limited by API")

// ErrAuth is returned for authentication failures (HTTP 401/403).
var ErrAuth = errors.New("API authentication failed")

// APIError is a non-auth, non-rate API failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// ParamError reports an invalid query parameter or value.
type ParamError struct {
	Name   string
	Value  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid query parameter %s=%q: %s", e.Name, e.Value, e.Reason)
}
