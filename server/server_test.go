package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, backendURL string) *Server {
	t.Helper()
	s, err := New(Config{
		ListenAddr: ":0",
		BackendURL: backendURL,
		Driver:     "sqlite",
		DSN:        filepath.Join(t.TempDir(), "sessions.db"),
		Secret:     "test-secret",
	})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRelayRequiresCredentials(t *testing.T) {
	backendHit := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHit = true
	}))
	defer backend.Close()
	s := newTestServer(t, backend.URL)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/my-tasks", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if backendHit {
		t.Error("unauthenticated request must never reach the backend")
	}
}

func TestRelayVerbatim(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("backend Authorization = %q", got)
		}
		if r.URL.Path != "/api/tasks/my-tasks" {
			t.Errorf("backend path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "3" {
			t.Errorf("backend page = %q, want 3", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"message": "exactly this"}`))
	}))
	defer backend.Close()
	s := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/my-tasks?page=3", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	// Status and body come back untouched, whatever they are.
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if got := rec.Body.String(); got != `{"message": "exactly this"}` {
		t.Errorf("body = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
}

func TestRelayUnreachableBackend(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/my-tasks", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func loginSession(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "pat@example.com", "password": "hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestSessionLoginAndRelay(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "backend-bearer", "user_id": "u1"})
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer backend-bearer" {
				t.Errorf("relayed Authorization = %q, want the session's bearer", got)
			}
			w.Write([]byte(`{"items": [], "total": 0}`))
		}
	}))
	defer backend.Close()
	s := newTestServer(t, backend.URL)

	cookie := loginSession(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/my-tasks", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("relay with session cookie = %d, want 200", rec.Code)
	}
}

func TestLoginFailureRelayedVerbatim(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "bad credentials"}`))
	}))
	defer backend.Close()
	s := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "pat@example.com", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 relayed", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != `{"message": "bad credentials"}` {
		t.Errorf("body = %s", body)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			t.Error("failed login must not mint a session")
		}
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "backend-bearer", "user_id": "u1"})
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer backend.Close()
	s := newTestServer(t, backend.URL)

	cookie := loginSession(t, s)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tasks/my-tasks", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("relay with dead session = %d, want 401", rec.Code)
	}
}

func TestTokenCipherRoundTrip(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	encrypted, err := s.cipher.Encrypt("bearer-token-value")
	if err != nil {
		t.Fatal(err)
	}
	if encrypted == "bearer-token-value" {
		t.Fatal("token must not be stored in the clear")
	}
	decrypted, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		t.Fatal(err)
	}
	if decrypted != "bearer-token-value" {
		t.Errorf("round trip = %q", decrypted)
	}
}
