package storage

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotaworks/rota/internal/storage/postgres"
	"github.com/rotaworks/rota/internal/storage/sqlite"
)

// IsPostgres reports whether the config value is a PostgreSQL connection
// string rather than a SQLite file path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Passwords belong in the environment, .pgpass, or the OS
// keyring, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.User != nil {
		if _, has := u.User.Password(); has {
			return true
		}
	}
	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		if kv := strings.SplitN(part, "=", 2); len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}

// New selects the backend for the given config value: a postgres://
// connection string gets the PostgreSQL store, anything else is treated as a
// SQLite file path.
func New(config string) Provider {
	if IsPostgres(config) {
		return postgres.New(config)
	}
	return sqlite.NewStore(ExpandPath(config))
}
