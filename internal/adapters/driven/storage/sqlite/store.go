package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ecobin-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
)

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "ecobin.db"

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite database exposing the persistent store interfaces
// through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.ecobin/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ecobin", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// AlertStore returns an AlertStore backed by this store.
func (s *Store) AlertStore() driven.AlertStore {
	return &alertStore{store: s}
}

// SchedulerStore returns a SchedulerStore backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migrate applies every pending up migration in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
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
func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Alert Store ====================

// alertStore implements driven.AlertStore.
type alertStore struct {
	store *Store
}

var _ driven.AlertStore = (*alertStore)(nil)

// Record stores the outcome of a send attempt.
func (s *alertStore) Record(ctx context.Context, record *domain.AlertRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO alerts (id, kind, bin_id, body, message_id, success, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			message_id = excluded.message_id,
			success = excluded.success,
			error = excluded.error,
			sent_at = excluded.sent_at
	`, record.ID, string(record.Kind), record.BinID, record.Body,
		nullString(record.MessageID), boolToInt(record.Success),
		nullString(record.Error), formatTime(record.SentAt))
	if err != nil {
		return fmt.Errorf("recording alert: %w", err)
	}
	return nil
}

// LastSuccess returns when an alert of kind was last sent successfully.
func (s *alertStore) LastSuccess(ctx context.Context, kind domain.AlertKind) (time.Time, error) {
	var sentAt sql.NullString
	err := s.store.db.QueryRowContext(ctx, `
		SELECT MAX(sent_at) FROM alerts WHERE kind = ? AND success = 1
	`, string(kind)).Scan(&sentAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying last alert: %w", err)
	}
	return parseNullableTime(sentAt), nil
}

// List returns the most recent records, newest first.
func (s *alertStore) List(ctx context.Context, limit int) ([]domain.AlertRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, bin_id, body, message_id, success, error, sent_at
		FROM alerts
		ORDER BY sent_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var records []domain.AlertRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanAlertRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}

	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlertRecord(row rowScanner) (*domain.AlertRecord, error) {
	var record domain.AlertRecord
	var kind, sentAt string
	var messageID, errMsg sql.NullString
	var success int

	if err := row.Scan(&record.ID, &kind, &record.BinID, &record.Body,
		&messageID, &success, &errMsg, &sentAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning alert: %w", err)
	}

	record.Kind = domain.AlertKind(kind)
	record.MessageID = messageID.String
	record.Success = success == 1
	record.Error = errMsg.String
	record.SentAt = parseNullableTime(sql.NullString{String: sentAt, Valid: true})

	return &record, nil
}
