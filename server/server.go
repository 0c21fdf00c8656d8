// Package server is the Planfold API proxy: it fronts the backend REST
// service for browser and terminal clients, attaching each caller's
// credentials and relaying responses verbatim. It adds no business logic
// beyond authentication-presence checks.
package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/planfold/planfold/internal/logger"
)

// Config holds proxy settings.
type Config struct {
	ListenAddr string
	BackendURL string
	Driver     string // "sqlite" or "postgres"
	DSN        string
	Secret     string // key material for encrypting bearer tokens at rest
}

// Server is the API proxy
type Server struct {
	cfg        Config
	db         *sql.DB
	echo       *echo.Echo
	cipher     *TokenCipher
	httpClient *http.Client
}

// New creates a new proxy server
func New(cfg Config) (*Server, error) {
	db, err := openSessionDB(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:        cfg,
		db:         db,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	// Run migrations
	if err := s.migrate(); err != nil {
		return nil, err
	}

	cipher, err := s.newCipher(cfg.Secret)
	if err != nil {
		return nil, err
	}
	s.cipher = cipher

	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// Session endpoints (public)
	e.POST("/api/auth/login", s.handleLogin)
	e.POST("/api/auth/logout", s.handleLogout)

	// Everything else under /api relays 1:1 to the backend with the
	// caller's credentials attached.
	relay := e.Group("/api")
	relay.Use(s.authMiddleware)
	relay.Any("/*", s.handleRelay)

	s.echo = e
}

// Close closes the session store
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start() error {
	return s.echo.Start(s.cfg.ListenAddr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
