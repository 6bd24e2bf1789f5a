package combobox

import apperrors "multicombo/internal/errors"

// Diagnostics receives non-fatal problems found while loading or operating the
// control: malformed entries, duplicate ids, extra default selections.
type Diagnostics interface {
	Report(err error)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(err error)

// Report implements Diagnostics.
func (f DiagnosticsFunc) Report(err error) {
	if f != nil {
		f(err)
	}
}

// DiagnosticLog records every reported error in order.
type DiagnosticLog struct {
	entries []error
}

// Report implements Diagnostics.
func (l *DiagnosticLog) Report(err error) {
	if err == nil {
		return
	}
	l.entries = append(l.entries, err)
}

// Entries returns the recorded errors.
func (l *DiagnosticLog) Entries() []error {
	out := make([]error, len(l.entries))
	copy(out, l.entries)
	return out
}

// Codes returns the structured code of each recorded error.
func (l *DiagnosticLog) Codes() []apperrors.Code {
	codes := make([]apperrors.Code, len(l.entries))
	for i, err := range l.entries {
		codes[i] = apperrors.CodeOf(err)
	}
	return codes
}

// Len returns the number of recorded errors.
func (l *DiagnosticLog) Len() int {
	return len(l.entries)
}

type discardDiagnostics struct{}

func (discardDiagnostics) Report(error) {}
