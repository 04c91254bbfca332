package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for the store connection.
const (
	EnvDBURL      = "DB_URL"
	EnvDBName     = "DB_NAME"
	EnvCollection = "COLLECTION_NAME"
)

// Store holds the connection parameters for the persistence collaborator.
type Store struct {
	URL        string
	Database   string
	Collection string
}

// ConfigError reports required configuration that is absent.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing environment configuration: %s", strings.Join(e.Missing, ", "))
}

// LoadDotEnv loads path (typically ".env") into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadStore reads the store connection from getenv (os.Getenv in production).
// Every missing variable is listed in the returned *ConfigError.
func LoadStore(getenv func(string) string) (Store, error) {
	cfg := Store{
		URL:        strings.TrimSpace(getenv(EnvDBURL)),
		Database:   strings.TrimSpace(getenv(EnvDBName)),
		Collection: strings.TrimSpace(getenv(EnvCollection)),
	}

	var missing []string
	if cfg.URL == "" {
		missing = append(missing, EnvDBURL)
	}
	if cfg.Database == "" {
		missing = append(missing, EnvDBName)
	}
	if cfg.Collection == "" {
		missing = append(missing, EnvCollection)
	}
	if len(missing) > 0 {
		return Store{}, &ConfigError{Missing: missing}
	}
	return cfg, nil
}
