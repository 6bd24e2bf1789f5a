// Package source loads catalog entries from files and databases and watches
// them for options added at runtime.
package source

import (
	"context"
	"path/filepath"
	"strings"

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

// Source produces the raw catalog entries for a control.
type Source interface {
	Load(ctx context.Context) ([]catalog.Entry, error)
	// Path is the file backing the source; the watcher observes it.
	Path() string
}

// Spec describes where the catalog lives.
type Spec struct {
	Path   string // YAML or JSON file
	SQLite string // SQLite database; takes precedence over Path
	Table  string // table read from SQLite, defaults to DefaultTable
}

// Open picks the source described by spec.
func Open(spec Spec) (Source, error) {
	if db := strings.TrimSpace(spec.SQLite); db != "" {
		return NewSQLite(db, spec.Table)
	}
	path := strings.TrimSpace(spec.Path)
	if path == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError,
			"no catalog configured (set catalog.path or catalog.sqlite)", nil)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLite(path, spec.Table)
	}
	return NewFile(path), nil
}

// Skipped returns the per-entry problems carried by a load error when the
// load otherwise succeeded: every problem is a catalog authoring error and
// the returned entries are usable. It returns nil for a nil or fatal error.
func Skipped(err error) []error {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		if !apperrors.IsAuthoring(e) {
			return nil
		}
	}
	return errs
}
