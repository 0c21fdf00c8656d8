package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestBackendMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message key", 400, `{"message": "title is required"}`, "title is required"},
		{"error key", 400, `{"error": "bad project id"}`, "bad project id"},
		{"detail key", 422, `{"detail": "due date in the past"}`, "due date in the past"},
		{"message wins over error", 400, `{"error": "e", "message": "m"}`, "m"},
		{"bare json string", 400, `"plain failure"`, "plain failure"},
		{"raw text body", 400, `something broke`, "something broke"},
		{"object without known keys", 400, `{"code": 17}`, "invalid request"},
		{"empty body 401", 401, ``, "authentication required"},
		{"empty body 403", 403, ``, "permission denied"},
		{"empty body 404", 404, ``, "not found"},
		{"empty body 409", 409, ``, "conflict"},
		{"empty body 422", 422, ``, "validation failed"},
		{"empty body 503", 503, ``, "server error"},
		{"empty body other 4xx", 418, ``, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := backendMessage(tt.status, []byte(tt.body)); got != tt.want {
				t.Errorf("backendMessage(%d, %q) = %q, want %q", tt.status, tt.body, got, tt.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&BackendError{Status: http.StatusUnauthorized}) {
		t.Error("401 should be an auth error")
	}
	if !IsAuthError(fmt.Errorf("fetching tasks: %w", &BackendError{Status: 401})) {
		t.Error("wrapped 401 should still be an auth error")
	}
	if IsAuthError(&BackendError{Status: http.StatusForbidden}) {
		t.Error("403 is not an auth error")
	}
	if IsAuthError(&NetworkError{URL: "http://x", Err: errors.New("refused")}) {
		t.Error("network failures are not auth errors")
	}
	if IsAuthError(nil) {
		t.Error("nil is not an auth error")
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{URL: "http://localhost:1", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
}
