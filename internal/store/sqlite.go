package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/htran/syllabuscal/internal/model"
)

// SQLiteStore implements the Store interface using a SQLite database.
// Sessions open it at ":memory:" so the deadline list lives exactly as
// long as the process.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens a SQLite database at dbPath and runs any pending
// schema migrations. Pass ":memory:" for a session-scoped store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps an in-memory database from vanishing when
	// the pool rotates connections.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// AppendDeadlines inserts a batch of deadlines in sequence. Each record
// gets a fresh UUID; the returned slice carries the assigned IDs. Rowid
// order preserves insertion order for later queries.
func (s *SQLiteStore) AppendDeadlines(
	ctx context.Context,
	deadlines []model.Deadline,
) ([]model.Deadline, error) {
	if len(deadlines) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO deadlines (id, title, date, type, course)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	stored := make([]model.Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		_, err = stmt.ExecContext(ctx, d.ID, d.Title, d.Date, d.Type, d.Course)
		if err != nil {
			return nil, fmt.Errorf("inserting deadline %q: %w", d.Title, err)
		}
		stored = append(stored, d)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing deadlines: %w", err)
	}
	return stored, nil
}

// DeleteDeadline removes a deadline by ID.
func (s *SQLiteStore) DeleteDeadline(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM deadlines WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting deadline %s: %w", id, err)
	}
	return nil
}

// GetDeadlinesForDate returns all deadlines whose date equals the given
// canonical string. Dates are stored exactly as the extractor emits them,
// so string equality is the whole lookup.
func (s *SQLiteStore) GetDeadlinesForDate(
	ctx context.Context,
	date string,
) ([]model.Deadline, error) {
	var deadlines []model.Deadline
	err := s.db.SelectContext(ctx, &deadlines,
		"SELECT id, title, date, type, course FROM deadlines WHERE date = ? ORDER BY rowid",
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("querying deadlines for %s: %w", date, err)
	}
	return deadlines, nil
}

// GetDeadlinesChronological returns every deadline ordered by ascending
// date. The fixed-width zero-padded format makes lexicographic ordering
// chronological; rowid keeps the sort stable.
func (s *SQLiteStore) GetDeadlinesChronological(
	ctx context.Context,
) ([]model.Deadline, error) {
	var deadlines []model.Deadline
	err := s.db.SelectContext(ctx, &deadlines,
		"SELECT id, title, date, type, course FROM deadlines ORDER BY date, rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("querying deadlines: %w", err)
	}
	return deadlines, nil
}

// CountDeadlines returns the number of stored deadlines.
func (s *SQLiteStore) CountDeadlines(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM deadlines")
	if err != nil {
		return 0, fmt.Errorf("counting deadlines: %w", err)
	}
	return count, nil
}
