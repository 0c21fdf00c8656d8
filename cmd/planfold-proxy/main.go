package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/planfold/planfold/internal/logger"
	"github.com/planfold/planfold/server"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := server.Config{
		ListenAddr: ":" + envOr("PORT", "8080"),
		BackendURL: envOr("PLANFOLD_BACKEND_URL", "http://localhost:9000"),
		Driver:     envOr("PLANFOLD_SESSION_DRIVER", "sqlite"),
		DSN:        envOr("PLANFOLD_SESSION_DSN", "planfold-sessions.db"),
		Secret:     os.Getenv("PLANFOLD_SESSION_SECRET"),
	}

	logCfg := logger.DefaultConfig()
	logCfg.Console = true
	logCfg.Level = logger.ParseLevel(envOr("PLANFOLD_LOG_LEVEL", "INFO"))
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("Planfold proxy starting on %s (backend %s)", cfg.ListenAddr, cfg.BackendURL)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
