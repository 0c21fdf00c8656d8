package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/model"
)

// AuthResult is the backend's answer to a successful login.
type AuthResult struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ExpiresAt string `json:"expires_at"`
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &result); err != nil {
		return AuthResult{}, err
	}
	c.token = result.Token
	return result, nil
}

// Me fetches the authenticated user's profile and caches it.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &user); err != nil {
		return model.User{}, err
	}
	c.cache.Set(cache.MeQuery{}, user)
	return user, nil
}

// Logout revokes the session server-side and clears the local token.
// The cached profile goes with it so a later login never renders the
// previous user.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.token = ""
	c.cache.Delete(cache.MeQuery{})
	return err
}

// Credentials is the on-disk session state for the terminal front end,
// kept at ~/.planfold/credentials.json.
type Credentials struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
}

func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".planfold", "credentials.json"), nil
}

// LoadCredentials reads the stored session, or returns defaults when none
// exists yet.
func LoadCredentials() (*Credentials, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &Credentials{ServerURL: "http://localhost:8080"}, nil
	}

	creds := &Credentials{}
	if err := json.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.ServerURL == "" {
		creds.ServerURL = "http://localhost:8080"
	}
	return creds, nil
}

// Save writes the credentials back to disk, readable by the owner only.
func (cr *Credentials) Save() error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LoggedIn returns true if a token is stored.
func (cr *Credentials) LoggedIn() bool {
	return cr.Token != ""
}

// Clear drops the session locally.
func (cr *Credentials) Clear() error {
	cr.Token = ""
	cr.UserID = ""
	cr.Email = ""
	return cr.Save()
}
