package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Preference storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	settingsFileName = "settings.yaml"
	sortFileName     = "sort.toml"
	stateFileName    = "house.json"
	sqliteFileName   = "preferences.db"
)

// Settings is the client configuration, read from settings.yaml.
type Settings struct {
	// StatePath is the controller's house.json.
	StatePath string `yaml:"state_path"`

	// ControllerID overrides the identity derived from the live state.
	ControllerID string `yaml:"controller_id"`

	Preferences PreferencesSettings `yaml:"preferences"`
	Sort        SortFileSettings    `yaml:"sort"`
	Logging     LoggingSettings     `yaml:"logging"`
	Watch       WatchSettings       `yaml:"watch"`
}

// PreferencesSettings selects where preferences are kept.
type PreferencesSettings struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// SortFileSettings locates the sort criteria file.
type SortFileSettings struct {
	Path string `yaml:"path"`
}

// LoggingSettings configures the slog handler.
type LoggingSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	Output string `yaml:"output"` // stdout, stderr
}

// WatchSettings tunes live-state reloads.
type WatchSettings struct {
	// MinInterval is the shortest gap between two reloads of the state file.
	MinInterval time.Duration `yaml:"min_interval"`
}

// DefaultConfigDir returns ~/.config/amplipi, or the working directory when
// no home directory is available.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "amplipi")
}

// DefaultSettings returns settings rooted at configDir.
func DefaultSettings(configDir string) *Settings {
	return &Settings{
		StatePath: filepath.Join(configDir, stateFileName),
		Preferences: PreferencesSettings{
			Backend: BackendJSON,
			Dir:     configDir,
		},
		Sort: SortFileSettings{
			Path: filepath.Join(configDir, sortFileName),
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Watch: WatchSettings{
			MinInterval: 250 * time.Millisecond,
		},
	}
}

// SettingsPath returns the settings file inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsFileName)
}

// LoadSettings reads path over the defaults for its directory. A missing file
// yields the defaults. Environment overrides are applied last.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings(filepath.Dir(path))

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading settings file: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing settings file: %w", err)
		}
	}

	applyEnvOverrides(s)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}
	return s, nil
}

// applyEnvOverrides applies AMPLIPI_PREFS_* environment variables.
func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("AMPLIPI_PREFS_STATE_PATH"); v != "" {
		s.StatePath = v
	}
	if v := os.Getenv("AMPLIPI_PREFS_CONTROLLER_ID"); v != "" {
		s.ControllerID = v
	}
	if v := os.Getenv("AMPLIPI_PREFS_BACKEND"); v != "" {
		s.Preferences.Backend = v
	}
	if v := os.Getenv("AMPLIPI_PREFS_DIR"); v != "" {
		s.Preferences.Dir = v
	}
	if v := os.Getenv("AMPLIPI_PREFS_SORT_PATH"); v != "" {
		s.Sort.Path = v
	}
	if v := os.Getenv("AMPLIPI_PREFS_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	var errs []string

	if s.StatePath == "" {
		errs = append(errs, "state_path is required")
	}
	switch strings.ToLower(s.Preferences.Backend) {
	case BackendJSON, BackendSQLite:
		if s.Preferences.Dir == "" {
			errs = append(errs, "preferences.dir is required")
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("preferences.backend %q must be json, sqlite or memory", s.Preferences.Backend))
	}
	switch strings.ToLower(s.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, "logging.format must be text or json")
	}
	if s.Watch.MinInterval < 0 {
		errs = append(errs, "watch.min_interval must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// OpenStore opens the preference store the settings select.
func (s *Settings) OpenStore() (Store, error) {
	switch strings.ToLower(s.Preferences.Backend) {
	case BackendMemory:
		return NewMemStore(), nil
	case BackendSQLite:
		if err := os.MkdirAll(s.Preferences.Dir, 0755); err != nil {
			return nil, err
		}
		return OpenSQLiteStore(filepath.Join(s.Preferences.Dir, sqliteFileName))
	default:
		return NewJSONStore(s.Preferences.Dir), nil
	}
}
