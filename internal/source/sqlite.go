package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

// DefaultTable is read when no table is configured.
const DefaultTable = "options"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite reads entries from a table with id, label and selected columns,
// in rowid order. The database is opened read-only.
type SQLite struct {
	dbPath string
	dsn    string
	table  string
}

// NewSQLite validates table and returns a source for the database at dbPath.
func NewSQLite(dbPath, table string) (*SQLite, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "sqlite catalog path is empty", nil)
	}
	if table = strings.TrimSpace(table); table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, apperrors.New(apperrors.CodeConfigurationError,
			fmt.Sprintf("invalid table name %q", table), nil)
	}
	return &SQLite{dbPath: trimmed, dsn: buildReadOnlyDSN(trimmed), table: table}, nil
}

// buildReadOnlyDSN creates a read-only WAL DSN for the given path.
func buildReadOnlyDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path implements Source.
func (s *SQLite) Path() string { return s.dbPath }

// Table returns the table the source reads.
func (s *SQLite) Table() string { return s.table }

func (s *SQLite) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog sqlite db: %w", err)
	}
	return db, nil
}

// Load implements Source.
func (s *SQLite) Load(ctx context.Context) ([]catalog.Entry, error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSourceFailed, "open catalog database", err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(`SELECT id, label, COALESCE(selected, 0) FROM %q ORDER BY rowid`, s.table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSourceFailed,
			fmt.Sprintf("query table %s", s.table), err)
	}
	defer func() { _ = rows.Close() }()

	var entries []catalog.Entry
	for rows.Next() {
		var (
			id, label sql.NullString
			selected  int64
		)
		if err := rows.Scan(&id, &label, &selected); err != nil {
			return nil, apperrors.New(apperrors.CodeSourceFailed, "scan option row", err)
		}
		entries = append(entries, catalog.Entry{
			ID:       id.String,
			Label:    label.String,
			Selected: selected != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.New(apperrors.CodeSourceFailed, "iterate option rows", err)
	}
	return entries, nil
}
