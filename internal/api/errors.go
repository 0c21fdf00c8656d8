package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError means the request never produced a response. The client
// does not retry; retry policy belongs to whoever owns the call site.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BackendError is a non-2xx response, carrying the status and the best
// message the body yielded.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsAuthError reports whether err is a 401 from the backend or proxy.
// Callers use it to route to login instead of showing a failure message.
func IsAuthError(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Status == http.StatusUnauthorized
}

// backendMessage extracts an error message from a response body: tries
// the message, error, and detail keys, then a bare JSON string, then the
// raw body, and finally falls back on the status code family.
func backendMessage(status int, body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	return fallbackMessage(status)
}

func fallbackMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "permission denied"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "validation failed"
	}
	if status >= 500 {
		return "server error"
	}
	return "request failed"
}
