// Package store keeps imported legacy field definitions in SQLite and serves
// them to the subpanel translator.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opmodel/legacyui/internal/identity"
	"github.com/opmodel/legacyui/internal/legacy"
	"github.com/opmodel/legacyui/internal/output"
)

// ModuleMapper resolves the legacy module a frontend module name refers to.
type ModuleMapper interface {
	ToLegacy(module string) string
}

// SQLiteStore is a field definition store backed by SQLite.
// Rows are keyed by legacy module name.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	modules ModuleMapper
}

// NewSQLiteStore returns an unopened store. modules may be nil, in which case
// module names are used as given.
func NewSQLiteStore(modules ModuleMapper) *SQLiteStore {
	return &SQLiteStore{modules: modules}
}

// Open opens the database at path and applies pending migrations.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		s.Close()
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the database path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Import upserts the field definitions of a legacy module and returns the
// number of rows written.
func (s *SQLiteStore) Import(ctx context.Context, module string, defs legacy.FieldDefinitions) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO field_definitions (id, module, name, definition, imported_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (module, name) DO UPDATE SET
			definition = excluded.definition,
			imported_at = excluded.imported_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)

	now := time.Now().UTC()
	for _, name := range names {
		data, err := json.Marshal(defs[name])
		if err != nil {
			return 0, fmt.Errorf("encoding field %s.%s: %w", module, name, err)
		}
		if _, err := stmt.ExecContext(ctx, identity.FieldDefinitionID(module, name).String(), module, name, string(data), now); err != nil {
			return 0, fmt.Errorf("failed to import field %s.%s: %w", module, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(names), nil
}

// LoadModule returns the stored field definitions of a legacy module.
func (s *SQLiteStore) LoadModule(ctx context.Context, module string) (legacy.FieldDefinitions, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, definition FROM field_definitions WHERE module = ? ORDER BY name`, module)
	if err != nil {
		return nil, fmt.Errorf("failed to query field definitions: %w", err)
	}
	defer rows.Close()

	defs := make(legacy.FieldDefinitions)
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan field definition: %w", err)
		}
		var attrs legacy.Attributes
		if err := json.Unmarshal([]byte(data), &attrs); err != nil {
			return nil, fmt.Errorf("decoding field %s.%s: %w", module, name, err)
		}
		defs[name] = attrs
	}
	return defs, rows.Err()
}

// Modules returns the legacy modules with stored definitions.
func (s *SQLiteStore) Modules(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT module FROM field_definitions ORDER BY module`)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// FieldDefinitions implements subpanel.FieldDefinitionGateway for a frontend
// module name. Errors are logged and yield no definitions.
func (s *SQLiteStore) FieldDefinitions(module string) legacy.FieldDefinitions {
	legacyName := module
	if s.modules != nil {
		legacyName = s.modules.ToLegacy(module)
	}

	defs, err := s.LoadModule(context.Background(), legacyName)
	if err != nil {
		output.Warn("reading field definitions", "module", legacyName, "err", err)
		return legacy.FieldDefinitions{}
	}
	return defs
}
