package server

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/planfold/planfold/internal/logger"
)

const sessionCookie = "planfold_session"

// backendAuth is the slice of the backend login response the proxy needs;
// the full body is still relayed to the caller untouched.
type backendAuth struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// handleLogin relays the login to the backend and, on success, mints a
// cookie session holding the backend bearer token encrypted at rest.
// Browser callers get the cookie; the response body passes through
// verbatim so token-based callers keep working too.
func (s *Server) handleLogin(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	req, err := http.NewRequestWithContext(c.Request().Context(),
		http.MethodPost, s.cfg.BackendURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error("Backend unreachable during login", logger.F("error", err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "backend unreachable"})
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		// Relay failure status and body verbatim
		return c.Blob(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}

	var auth backendAuth
	if err := json.Unmarshal(respBody, &auth); err != nil || auth.Token == "" {
		logger.Error("Unexpected login response from backend", logger.F("error", err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "unexpected backend response"})
	}

	token, expiresAt, err := s.createSession(auth.UserID, auth.Token)
	if err != nil {
		logger.Error("Failed to create session", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("Session created", logger.F("user", auth.UserID))
	return c.Blob(http.StatusOK, resp.Header.Get("Content-Type"), respBody)
}

// handleLogout deletes the proxy session and clears the cookie. The
// backend is told too, on a best-effort basis, when a bearer is at hand.
func (s *Server) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		bearer, lookupErr := s.lookupSession(cookie.Value)
		if _, err := s.db.Exec(`DELETE FROM sessions WHERE token = $1`, cookie.Value); err != nil {
			logger.Warn("Failed to delete session", logger.F("error", err))
		}
		if lookupErr == nil {
			req, err := http.NewRequestWithContext(c.Request().Context(),
				http.MethodPost, s.cfg.BackendURL+"/api/auth/logout", nil)
			if err == nil {
				req.Header.Set("Authorization", "Bearer "+bearer)
				if resp, err := s.httpClient.Do(req); err == nil {
					resp.Body.Close()
				}
			}
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// createSession stores a new session row and returns the cookie token
func (s *Server) createSession(userID, bearer string) (string, time.Time, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, err
	}
	token := hex.EncodeToString(tokenBytes)

	encrypted, err := s.cipher.Encrypt(bearer)
	if err != nil {
		return "", time.Time{}, err
	}

	// Session expires in 30 days
	expiresAt := time.Now().Add(30 * 24 * time.Hour)

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, token, user_id, bearer_encrypted, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), token, userID, encrypted, expiresAt, time.Now(),
	)
	return token, expiresAt, err
}

// lookupSession resolves a cookie token to the decrypted backend bearer.
func (s *Server) lookupSession(token string) (string, error) {
	var encrypted string
	var expiresAt time.Time
	err := s.db.QueryRow(`
		SELECT bearer_encrypted, expires_at FROM sessions WHERE token = $1`,
		token,
	).Scan(&encrypted, &expiresAt)
	if err != nil {
		return "", err
	}
	if time.Now().After(expiresAt) {
		_, _ = s.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
		return "", errSessionExpired
	}
	return s.cipher.Decrypt(encrypted)
}
