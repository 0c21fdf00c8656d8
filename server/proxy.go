package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planfold/planfold/internal/logger"
)

// handleRelay forwards the request to the backend 1:1 (same method,
// path, query and body) with the caller's credentials attached, and
// copies the response status and body back verbatim, error bodies
// included.
func (s *Server) handleRelay(c echo.Context) error {
	in := c.Request()

	u := s.cfg.BackendURL + in.URL.Path
	if in.URL.RawQuery != "" {
		u += "?" + in.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(in.Context(), in.Method, u, in.Body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if ct := in.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if auth := in.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if bearer, ok := c.Get(ctxBearer).(string); ok && bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookieHeader, ok := c.Get(ctxForwardCookie).(string); ok && cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		req.Header.Set(echo.HeaderXRequestID, reqID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error("Backend unreachable",
			logger.F("method", in.Method),
			logger.F("path", in.URL.Path),
			logger.F("error", err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "backend unreachable"})
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Response().Header().Set("Content-Type", ct)
	}
	c.Response().WriteHeader(resp.StatusCode)
	_, err = io.Copy(c.Response(), resp.Body)
	return err
}
