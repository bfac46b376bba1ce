package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const kvTable = "progress_kv"

// KV is a string-keyed, string-valued store. SetMany writes all values or
// none.
type KV interface {
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Store is a SQLite-backed KV.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

var _ KV = (*Store)(nil)

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the key-value table.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	s := &Store{db: db, drv: drv}

	if err := s.migrate(context.Background()); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	return s.drv.Exec(ctx, ddl, []any{}, nil)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Get returns the values stored for keys. Missing keys are absent from the
// result.
func (s *Store) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Select("name", "value").
		From(entsql.Table(kvTable)).
		Where(entsql.In("name", toAny(keys)...)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return out, nil
}

// SetMany upserts every value in a single transaction.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	now := time.Now().UTC()
	for name, value := range values {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(kvTable).
			Columns("name", "value", "updated_at").
			Values(name, value, now).
			OnConflict(
				entsql.ConflictColumns("name"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete removes keys. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(kvTable).
		Where(entsql.In("name", toAny(keys)...)).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func toAny(keys []string) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ATTACQ_DB environment variable
// 2. $XDG_DATA_HOME/attacq/attacq.db
// 3. ~/.local/share/attacq/attacq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ATTACQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "attacq", "attacq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
