//go:build !bolt

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/aip-heidelberg/codeeval/internal/application"
	"github.com/aip-heidelberg/codeeval/internal/encoding"
	"github.com/aip-heidelberg/codeeval/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite implements the Store interface using SQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite store at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := encoding.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, err
	}

	// WAL for concurrency, busy timeout for the CLI's short-lived writers
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func initDB() (Store, error) {
	dbPath, err := application.DatabasePath()
	if err != nil {
		return nil, err
	}

	return NewSQLite(dbPath)
}

// migrate applies embedded migrations in version order. Applied versions
// are tracked in schema_migrations.
func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	entries, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}

	sort.Strings(entries)

	for version, name := range entries {
		var applied int
		err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version+1).Scan(&applied)
		if err != nil {
			return err
		}

		if applied > 0 {
			continue
		}

		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}

		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying %s: %w", name, err)
		}

		if _, err := s.db.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version+1); err != nil {
			return err
		}
	}

	return nil
}

// Ping checks the database connection.
func (s *SQLite) Ping() error {
	return s.db.Ping()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveDataset inserts or replaces a cached dataset by name.
func (s *SQLite) SaveDataset(ds *model.CachedDataset) error {
	_, err := s.db.Exec(`INSERT INTO datasets (name, hub_id, num_rows, fetched_at, rows)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			hub_id = excluded.hub_id,
			num_rows = excluded.num_rows,
			fetched_at = excluded.fetched_at,
			rows = excluded.rows`,
		ds.Name, ds.HubID, ds.NumRows, ds.FetchedAt.UTC().Format(time.RFC3339Nano), []byte(ds.Rows))
	if err != nil {
		return fmt.Errorf("saving dataset %s: %w", ds.Name, err)
	}

	return nil
}

// GetDataset returns a cached dataset by name.
func (s *SQLite) GetDataset(name string) (*model.CachedDataset, error) {
	row := s.db.QueryRow(`SELECT name, hub_id, num_rows, fetched_at, rows FROM datasets WHERE name = ?`, name)

	ds, err := scanDataset(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %s: %w", name, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", name, err)
	}

	return ds, nil
}

// ListDatasets returns all cached datasets ordered by name.
func (s *SQLite) ListDatasets() ([]model.CachedDataset, error) {
	rows, err := s.db.Query(`SELECT name, hub_id, num_rows, fetched_at, rows FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.CachedDataset

	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *ds)
	}

	return out, rows.Err()
}

// DeleteDataset removes a cached dataset. Deleting an absent entry is not
// an error.
func (s *SQLite) DeleteDataset(name string) error {
	_, err := s.db.Exec(`DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting dataset %s: %w", name, err)
	}

	return nil
}

// SaveRun records one setup step execution.
func (s *SQLite) SaveRun(run *model.SetupRun) error {
	_, err := s.db.Exec(`INSERT INTO setup_runs (id, run_id, step, env_name, status, started_at, duration_ms, output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.RunID, run.Step, run.EnvName, run.Status,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.Duration.Milliseconds(), run.Output)
	if err != nil {
		return fmt.Errorf("saving run %s/%s: %w", run.RunID, run.Step, err)
	}

	return nil
}

// ListRuns returns the most recent setup steps, newest first.
func (s *SQLite) ListRuns(limit int) ([]model.SetupRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`SELECT id, run_id, step, env_name, status, started_at, duration_ms, output
		FROM setup_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.SetupRun

	for rows.Next() {
		var (
			run        model.SetupRun
			startedAt  string
			durationMS int64
		)

		if err := rows.Scan(&run.ID, &run.RunID, &run.Step, &run.EnvName, &run.Status,
			&startedAt, &durationMS, &run.Output); err != nil {
			return nil, err
		}

		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.Duration = time.Duration(durationMS) * time.Millisecond

		out = append(out, run)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (*model.CachedDataset, error) {
	var (
		ds        model.CachedDataset
		fetchedAt string
		raw       []byte
	)

	if err := row.Scan(&ds.Name, &ds.HubID, &ds.NumRows, &fetchedAt, &raw); err != nil {
		return nil, err
	}

	ds.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
	ds.Rows = raw

	return &ds, nil
}
