package api

import "fmt"

// AuthError covers invalid credentials and expired/invalid tokens. The
// client attempts a single token refresh before surfacing one of these.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "authentication failed"
	}
	return e.Detail
}

// ValidationError is raised client-side before any network call, for
// missing required fields and malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NetworkError wraps transport-level failures (connection refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "request failed: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is any non-2xx response other than 401. Detail carries the
// backend's structured message when present and is shown verbatim.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error: %d", e.Status)
}
