package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var errSessionExpired = errors.New("session expired")

// Context keys for the credentials the relay attaches.
const (
	ctxBearer        = "bearer"
	ctxForwardCookie = "forward_cookie"
)

// authMiddleware resolves the caller's credentials: a bearer token
// forwarded as-is, a proxy session cookie resolved to its backend
// bearer, or a plain cookie header forwarded verbatim. Absent all three,
// the request is refused here and never reaches the backend.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "" {
			// Relay copies the header through untouched.
			return next(c)
		}

		if cookie, err := c.Cookie(sessionCookie); err == nil {
			bearer, err := s.lookupSession(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
			}
			c.Set(ctxBearer, bearer)
			return next(c)
		}

		if cookieHeader := c.Request().Header.Get("Cookie"); cookieHeader != "" {
			c.Set(ctxForwardCookie, cookieHeader)
			return next(c)
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization required"})
	}
}
