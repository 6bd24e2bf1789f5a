// Package debug traces a multicombo session to a file when --debug is set.
// The trace lives at ~/.multicombo/debug.log and starts empty on each launch.
package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "multicombo/internal/errors"
)

const (
	// LogFileName is the name of the trace file.
	LogFileName = "debug.log"
	// LogDirName is the directory under the user's home holding the trace.
	LogDirName = ".multicombo"
)

// sink is the open trace. A nil logger means tracing is off.
type sink struct {
	mu     sync.Mutex
	file   *os.File
	logger *log.Logger
}

var (
	trace sink

	// logPath is replaced in tests.
	logPath = homeLogPath
)

func homeLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// Path returns where the trace is written.
func Path() (string, error) {
	return logPath()
}

// Init starts a fresh trace when enable is true and stops any previous one.
// With enable false every Logf call is dropped.
func Init(enable bool) error {
	trace.mu.Lock()
	defer trace.mu.Unlock()

	trace.closeLocked()
	if !enable {
		return nil
	}

	path, err := logPath()
	if err != nil {
		return err
	}
	//nolint:gosec // G301: lives in the user's config directory
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // G304: path derives from the user's home
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	trace.file = f
	trace.logger = log.New(f, "", log.Ltime|log.Lmicroseconds)
	trace.logger.Printf("multicombo session started %s (pid %d)", time.Now().Format(time.RFC3339), os.Getpid())
	return nil
}

// Close ends the trace. It is safe to call when tracing is off.
func Close() {
	trace.mu.Lock()
	defer trace.mu.Unlock()
	trace.closeLocked()
}

func (s *sink) closeLocked() {
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = nil
	s.logger = nil
}

// Logf appends a line to the trace in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	trace.mu.Lock()
	defer trace.mu.Unlock()
	if trace.logger == nil {
		return
	}
	trace.logger.Printf(format, v...)
}

// Reporter forwards control diagnostics to the trace, tagged with the error
// code and the component that raised them.
type Reporter struct {
	Component string
}

// Report logs err. Nil errors are ignored.
func (r Reporter) Report(err error) {
	if err == nil {
		return
	}
	name := r.Component
	if name == "" {
		name = "combobox"
	}
	Logf("[%s] %s: %v", name, apperrors.CodeOf(err), err)
}
