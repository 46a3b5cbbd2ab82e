// Package artifacts keeps a history of generated files (diagrams, PDFs,
// HTML plans) in a local SQLite database.
package artifacts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Artifact is one generated file.
type Artifact struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"` // diagram, pdf, html, text_pdf
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Tool      string    `json:"tool"` // tool or command that produced it
	CreatedAt time.Time `json:"created_at"`
}

// Store records artifacts in SQLite. A nil *Store is a valid no-op
// recorder, so callers never need to branch on whether history is enabled.
type Store struct {
	db *sql.DB
}

// Schema for the artifacts database.
const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    title TEXT,
    path TEXT NOT NULL,
    tool TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_artifacts_created_at ON artifacts(created_at DESC);
`

// schemaVersion is the current schema version.
// - Fresh databases get the full schema from `schema` const and start at this version
// - Existing databases run migrations to reach this version
// Increment when adding new migrations.
const schemaVersion = 1

// migration represents a schema migration.
type migration struct {
	version     int
	description string
	up          func(db *sql.DB) error
}

// migrations upgrade databases created before a schema change. The base
// `schema` const always contains the FULL current schema, so fresh
// databases never run these.
var migrations = []migration{}

// Open opens (creating if needed) the artifact database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one artifact row. Safe on a nil Store.
func (s *Store) Record(ctx context.Context, a Artifact) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (kind, title, path, tool) VALUES (?, ?, ?, ?)`,
		a.Kind, a.Title, a.Path, a.Tool)
	if err != nil {
		return fmt.Errorf("record artifact: %w", err)
	}
	return nil
}

// Recent returns the newest artifacts, most recent first. Safe on a nil
// Store, which returns nothing.
func (s *Store) Recent(ctx context.Context, limit int) ([]Artifact, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, COALESCE(title, ''), path, COALESCE(tool, ''), created_at
		FROM artifacts
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Kind, &a.Title, &a.Path, &a.Tool, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return out, nil
}

// Close closes the database. Safe on a nil Store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version").Scan(&currentVersion)
	if err == nil && currentVersion >= schemaVersion {
		return nil
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create base schema: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return fmt.Errorf("check version rows: %w", err)
	}
	if count == 0 {
		// Fresh DB, schema const already matches the latest version
		currentVersion = schemaVersion
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentVersion); err != nil {
			return fmt.Errorf("insert initial version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version > currentVersion {
			if err := m.up(db); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
			}
			if _, err := db.Exec("UPDATE schema_version SET version = ?", m.version); err != nil {
				return fmt.Errorf("update version to %d: %w", m.version, err)
			}
		}
	}
	return nil
}
