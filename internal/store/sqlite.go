package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dkoosis/trigen/internal/config"
)

const backendSQLite = "sqlite"

// sqlitePragmas let concurrent writers wait on the lock instead of failing
// with SQLITE_BUSY.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite stores records as rows of a table named after the collection.
// Each row also carries the full record as a JSON document.
// It is safe for concurrent use.
type SQLite struct {
	db      *sql.DB
	table   string
	timeout time.Duration

	mu       sync.Mutex
	migrated bool
}

// OpenSQLite opens the database file named by a sqlite://<path> URL.
// DB_NAME is unused: the file is the database.
func OpenSQLite(cfg config.Store, timeout time.Duration) (*SQLite, error) {
	path := strings.TrimPrefix(cfg.URL, "sqlite://")
	if path == "" {
		return nil, fmt.Errorf("sqlite URL has no path")
	}
	if !identRe.MatchString(cfg.Collection) {
		return nil, fmt.Errorf("collection name %q is not a valid table name", cfg.Collection)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", path+sep+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	return &SQLite{db: db, table: cfg.Collection, timeout: timeout}, nil
}

// quoted returns the table name as a quoted identifier so keywords such as
// "order" are usable as collection names.
func (s *SQLite) quoted() string {
	return `"` + s.table + `"`
}

// migrate creates the table once per store. A failed attempt is retried on
// the next call.
func (s *SQLite) migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrated {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+s.quoted()+` (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  triangle_type TEXT NOT NULL,
  "rows" INTEGER NOT NULL,
  symbol TEXT NOT NULL,
  pattern TEXT NOT NULL,
  created_at TEXT NOT NULL,
  document TEXT NOT NULL
)`)
	if err != nil {
		return err
	}
	s.migrated = true
	return nil
}

// Save creates the table if needed and inserts rec. Only a failure to reach
// the database file counts as a connect error; a locked or rejected write is
// an insert error.
func (s *SQLite) Save(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return &Error{Op: OpConnect, Backend: backendSQLite, Err: err}
	}
	if err := s.migrate(ctx); err != nil {
		return &Error{Op: OpInsert, Backend: backendSQLite, Err: fmt.Errorf("creating table %s: %w", s.table, err)}
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return &Error{Op: OpInsert, Backend: backendSQLite, Err: err}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+s.quoted()+` (triangle_type, "rows", symbol, pattern, created_at, document) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Shape, rec.Rows, rec.Symbol, rec.Pattern, rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(doc))
	if err != nil {
		return &Error{Op: OpInsert, Backend: backendSQLite, Err: err}
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+s.quoted()).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLite) Close(context.Context) error {
	return s.db.Close()
}
