package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pdfseek/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "history.db"

// Store is a SQLite-based history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pdfseek/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pdfseek", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// HistoryGateway returns a HistoryGateway interface backed by this store.
func (s *Store) HistoryGateway() driven.HistoryGateway {
	return &historyGateway{store: s}
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.schemaVersion()
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_history.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// applyMigration runs one migration and records its version atomically.
func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// schemaVersion returns the highest applied migration.
func (s *Store) schemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== History Gateway ====================

// historyGateway implements driven.HistoryGateway.
type historyGateway struct {
	store *Store
}

var _ driven.HistoryGateway = (*historyGateway)(nil)

// Load returns the items of one store ordered by position.
func (g *historyGateway) Load(ctx context.Context, store domain.StoreName) ([]domain.HistoryItem, error) {
	rows, err := g.store.db.QueryContext(ctx, `
		SELECT kind, value, match_json
		FROM history_items
		WHERE store = ?
		ORDER BY position
	`, string(store))
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", domain.ErrPersistenceLoad, store, err)
	}
	defer rows.Close()

	items := []domain.HistoryItem{}
	for rows.Next() {
		var (
			kind, value string
			matchJSON   sql.NullString
		)
		if err := rows.Scan(&kind, &value, &matchJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %v", domain.ErrPersistenceLoad, store, err)
		}

		item := domain.HistoryItem{Kind: domain.HistoryItemKind(kind), Value: value}
		if matchJSON.Valid && matchJSON.String != "" {
			var match domain.MatchRecord
			if err := json.Unmarshal([]byte(matchJSON.String), &match); err != nil {
				return nil, fmt.Errorf("%w: decoding match for %s: %v", domain.ErrPersistenceLoad, value, err)
			}
			item.Match = &match
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrPersistenceLoad, store, err)
	}

	return items, nil
}

// Save replaces the items of one store in a single transaction.
func (g *historyGateway) Save(ctx context.Context, store domain.StoreName, items []domain.HistoryItem) error {
	tx, err := g.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrPersistenceSave, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM history_items WHERE store = ?", string(store)); err != nil {
		return fmt.Errorf("%w: clearing %s: %v", domain.ErrPersistenceSave, store, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO history_items (store, position, kind, value, match_json)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %v", domain.ErrPersistenceSave, err)
	}
	defer stmt.Close()

	for i, item := range items {
		var matchJSON sql.NullString
		if item.Match != nil {
			data, err := json.Marshal(item.Match)
			if err != nil {
				return fmt.Errorf("%w: encoding match for %s: %v", domain.ErrPersistenceSave, item.Value, err)
			}
			matchJSON = sql.NullString{String: string(data), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, string(store), i, string(item.Kind), item.Value, matchJSON); err != nil {
			return fmt.Errorf("%w: inserting %s: %v", domain.ErrPersistenceSave, item.Value, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrPersistenceSave, err)
	}
	return nil
}
