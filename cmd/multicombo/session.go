package main

import (
	"context"
	"fmt"

	"multicombo/internal/combobox"
	"multicombo/internal/config"
	"multicombo/internal/debug"
	"multicombo/internal/source"
)

// session is a loaded catalog bound to a controller.
type session struct {
	src  source.Source
	ctrl *combobox.Controller
	diag *combobox.DiagnosticLog
}

// controlConfig turns settings into the control configuration.
func controlConfig(s config.Settings) (combobox.Config, error) {
	mode, err := combobox.ParseAutocomplete(s.Autocomplete)
	if err != nil {
		return combobox.Config{}, err
	}
	return combobox.Config{
		Name:         s.Name,
		Placeholder:  s.Placeholder,
		Multiple:     s.Multiple,
		Tags:         s.Tags,
		Autocomplete: mode,
		Required:     s.Required,
		Disabled:     s.Disabled,
	}, nil
}

// openSession loads the configured catalog and builds a controller over it.
// Entry problems, including entries the source could not decode, are
// recorded in the session's diagnostic log and mirrored to the debug log.
// Configuration and source errors are returned.
func openSession(ctx context.Context, s config.Settings) (*session, error) {
	sess := &session{diag: &combobox.DiagnosticLog{}}
	report := combobox.DiagnosticsFunc(func(err error) {
		sess.diag.Report(err)
		debug.Reporter{Component: "catalog"}.Report(err)
	})

	cfg, err := controlConfig(s)
	if err != nil {
		report(err)
		return sess, err
	}
	sess.src, err = source.Open(source.Spec{
		Path:   s.CatalogPath,
		SQLite: s.CatalogSQLite,
		Table:  s.CatalogTable,
	})
	if err != nil {
		report(err)
		return sess, err
	}
	entries, err := sess.src.Load(ctx)
	if skipped := source.Skipped(err); skipped != nil {
		for _, e := range skipped {
			report(e)
		}
	} else if err != nil {
		report(err)
		return sess, fmt.Errorf("load catalog %s: %w", sess.src.Path(), err)
	}
	debug.Logf("loaded %d entries from %s", len(entries), sess.src.Path())

	sess.ctrl, err = combobox.New(cfg, entries, report)
	if err != nil {
		return sess, err
	}
	return sess, nil
}

// knownIDs lists the ids already in the control so the watcher only
// forwards new ones.
func (s *session) knownIDs() []string {
	opts := s.ctrl.State().Options()
	ids := make([]string, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}
