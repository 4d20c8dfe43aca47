package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a non-2xx, non-401 response from a backend service.
// The message is the response body, surfaced verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// SessionExpiredError represents a 401 from any backend service. By the time
// the caller sees it the session store has already been invalidated.
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string {
	if e.Message == "" {
		return "session expired"
	}
	return "session expired: " + e.Message
}

// TransportError represents a network call that produced no response at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the
// given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsSessionExpired returns true if err (or any wrapped error) came from a 401
// response.
func IsSessionExpired(err error) bool {
	var sessErr *SessionExpiredError
	return errors.As(err, &sessErr)
}

// IsTransport returns true if err (or any wrapped error) is a network-level
// failure rather than a classified backend response.
func IsTransport(err error) bool {
	var trErr *TransportError
	return errors.As(err, &trErr)
}

// errMessage extracts the human-readable message from an error body. The
// services wrap messages in a {"detail": ...} envelope; anything else is
// returned as-is.
func errMessage(body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return string(body)
}
