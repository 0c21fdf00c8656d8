package server

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// openSessionDB opens the session store. SQLite covers single-node
// deployments; postgres covers anything fronted by more than one proxy.
func openSessionDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite":
		// modernc driver registers as "sqlite"
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported session store driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to session store: %w", err)
	}
	return db, nil
}

// migrate runs session store migrations
func (s *Server) migrate() error {
	migrations := []string{
		migrationMeta,
		migrationSessions,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Portable SQL only: the same statements run on sqlite and postgres, so
// timestamps and IDs are assigned in code, not by column defaults.
const migrationMeta = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const migrationSessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    token TEXT UNIQUE NOT NULL,
    user_id TEXT NOT NULL,
    bearer_encrypted TEXT NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
`
