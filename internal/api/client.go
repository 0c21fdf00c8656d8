// Package api is the typed client for the Planfold backend. Fetchers
// store what they read in the shared cache; mutators write to the backend
// and then patch every cache entry that can embed the changed entity, so
// views re-render without a refetch.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/logger"
)

// Client talks to the Planfold backend (or the proxy in front of it).
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *cache.Store

	inflightMu sync.Mutex
	inflight   map[string]*statusFlight
}

// New creates a client bound to a cache store.
func New(baseURL, token string, store *cache.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      store,
		inflight:   make(map[string]*statusFlight),
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Cache exposes the store so views can subscribe to keys.
func (c *Client) Cache() *cache.Store {
	return c.cache
}

// do performs one request. Transport failures come back as *NetworkError,
// non-2xx responses as *BackendError; out is decoded from the body when
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		berr := &BackendError{Status: resp.StatusCode, Message: backendMessage(resp.StatusCode, respBody)}
		logger.Debug("Backend request failed",
			logger.F("method", method),
			logger.F("path", path),
			logger.F("status", resp.StatusCode))
		return berr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func pageQuery(page, size int, sort string) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("size", fmt.Sprint(size))
	if sort != "" {
		q.Set("sort", sort)
	}
	return q
}
