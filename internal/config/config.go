package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyMultiple     = "multiple"
	KeyTags         = "tags"
	KeyAutocomplete = "autocomplete"
	KeyRequired     = "required"
	KeyDisabled     = "disabled"
	KeyPlaceholder  = "placeholder"
	KeyName         = "name"

	KeyTheme      = "theme"
	KeyWidth      = "width"
	KeyMaxVisible = "max-visible"

	KeyCatalogPath     = "catalog.path"
	KeyCatalogSQLite   = "catalog.sqlite"
	KeyCatalogTable    = "catalog.table"
	KeyCatalogWatch    = "catalog.watch"
	KeyCatalogDebounce = "catalog.debounce"
)

const (
	// DefaultMaxVisible is the number of list rows shown before scrolling.
	DefaultMaxVisible = 8
	// DefaultWidth is the control width in cells.
	DefaultWidth = 40
	// DirName is the per-user and per-project configuration directory.
	DirName = ".multicombo"

	envPrefix = "MC"
)

// Settings is a typed snapshot of the recognized keys.
type Settings struct {
	Multiple     bool
	Tags         bool
	Autocomplete string
	Required     bool
	Disabled     bool
	Placeholder  string
	Name         string

	Theme      string
	Width      int
	MaxVisible int

	CatalogPath     string
	CatalogSQLite   string
	CatalogTable    string
	CatalogWatch    bool
	CatalogDebounce time.Duration
}

// Load reads every recognized key, initializing on demand.
func Load() (Settings, error) {
	v, err := getViper()
	if err != nil {
		return Settings{}, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	s := Settings{
		Multiple:        v.GetBool(KeyMultiple),
		Tags:            v.GetBool(KeyTags),
		Autocomplete:    v.GetString(KeyAutocomplete),
		Required:        v.GetBool(KeyRequired),
		Disabled:        v.GetBool(KeyDisabled),
		Placeholder:     v.GetString(KeyPlaceholder),
		Name:            v.GetString(KeyName),
		Theme:           v.GetString(KeyTheme),
		Width:           v.GetInt(KeyWidth),
		MaxVisible:      v.GetInt(KeyMaxVisible),
		CatalogPath:     v.GetString(KeyCatalogPath),
		CatalogSQLite:   v.GetString(KeyCatalogSQLite),
		CatalogTable:    v.GetString(KeyCatalogTable),
		CatalogWatch:    v.GetBool(KeyCatalogWatch),
		CatalogDebounce: v.GetDuration(KeyCatalogDebounce),
	}
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.MaxVisible <= 0 {
		s.MaxVisible = DefaultMaxVisible
	}
	return s, nil
}

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// userConfigPathOverride is used by tests to override the user config path.
	// nolint:unused // Used in tests via reset()
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, DirName, "config.yaml"), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, DirName, "config.yaml")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMultiple, false)
	v.SetDefault(KeyTags, false)
	v.SetDefault(KeyAutocomplete, "list")
	v.SetDefault(KeyRequired, false)
	v.SetDefault(KeyDisabled, false)
	v.SetDefault(KeyPlaceholder, "Search…")
	v.SetDefault(KeyName, "value")
	v.SetDefault(KeyTheme, "tokyonight")
	v.SetDefault(KeyWidth, DefaultWidth)
	v.SetDefault(KeyMaxVisible, DefaultMaxVisible)
	v.SetDefault(KeyCatalogPath, "")
	v.SetDefault(KeyCatalogSQLite, "")
	v.SetDefault(KeyCatalogTable, "options")
	v.SetDefault(KeyCatalogWatch, false)
	v.SetDefault(KeyCatalogDebounce, 150*time.Millisecond)
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

// reset clears package state for tests.
//
//nolint:unused // Used in config_test.go
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp))
	return reset
}

// setUserConfigPathOverride sets the user config path for tests.
//
//nolint:unused // Used in config_test.go
func setUserConfigPathOverride(path string) {
	userConfigPathOverride = path
}

// SaveTheme persists the theme name to the appropriate config file.
// If a project config (.multicombo/config.yaml) exists, it updates that file.
// Otherwise, it updates the user config (~/.multicombo/config.yaml).
// The user config directory is auto-created if needed, but project config
// directories are never auto-created.
func SaveTheme(themeName string) error {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	// Create a fresh viper instance for this file only
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)

	// Read existing config (if any) to preserve other settings
	_ = v.ReadInConfig() // ignore error if file doesn't exist

	// Set the theme value
	v.Set(KeyTheme, themeName)

	// Ensure directory exists (safe for user config, project config dir must exist)
	dir := filepath.Dir(targetPath)
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Write config using viper's WriteConfigAs
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// findWritableConfigPath determines which config file to write to.
// Returns project config path if it exists, otherwise user config path.
func findWritableConfigPath() (string, error) {
	// Check for project config first
	wd, err := os.Getwd()
	if err == nil {
		projectPath, err := findProjectConfig(wd)
		if err == nil && projectPath != "" {
			return projectPath, nil
		}
	}

	// Fall back to user config (use override if set by tests)
	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	return defaultUserConfigPath()
}
