package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"traynote/internal/logs"
)

const settingsFileName = "settings.yaml"

// Environment variables that override the settings file for one run.
const (
	EnvConfigDir   = "TRAYNOTE_CONFIG_DIR"
	EnvMode        = "TRAYNOTE_MODE"
	EnvSingleFile  = "TRAYNOTE_SINGLE_FILE"
	EnvDailyFolder = "TRAYNOTE_DAILY_FOLDER"
	EnvDailyFormat = "TRAYNOTE_DAILY_FORMAT"
)

// CLIFlags holds parsed CLI flags. Empty fields are unset.
type CLIFlags struct {
	ConfigDir   string
	Mode        string
	SingleFile  string
	DailyFolder string
	DailyFormat string
}

// overrides are per-process values layered over the persisted settings.
type overrides struct {
	mode        Mode
	singleFile  string
	dailyFolder string
	dailyFormat string
}

func (o overrides) apply(s Settings) Settings {
	if o.mode != "" {
		s.Mode = o.mode
	}
	if o.singleFile != "" {
		s.SingleFilePath = expandPath(o.singleFile)
	}
	if o.dailyFolder != "" {
		s.DailyFolderPath = expandPath(o.dailyFolder)
	}
	if o.dailyFormat != "" {
		s.DailyFileFormat = o.dailyFormat
	}
	return s
}

// Store owns the user's settings. It is constructed once per process and
// passed to whatever needs to resolve or change the target file.
// Every setter writes the settings file before returning.
type Store struct {
	mu        sync.Mutex
	dir       string
	defaults  Settings
	persisted Settings
	over      overrides

	// Now is the clock used for daily file names.
	Now func() time.Time
}

// Load builds a Store with priority: CLI flags > env vars > settings file > defaults.
func Load(flags CLIFlags) (*Store, error) {
	dir := flags.ConfigDir
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		var err error
		dir, err = DefaultConfigDir()
		if err != nil {
			return nil, err
		}
	}
	dir = expandPath(dir)

	// .env never overrides variables that are already set
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		logs.Logger.Warn().Err(err).Str("dir", dir).Msg("could not read .env")
	}

	defaults, err := DefaultSettings()
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir:       dir,
		defaults:  defaults,
		persisted: defaults,
		Now:       time.Now,
	}

	if fileSettings, err := loadSettingsFile(s.Path()); err == nil {
		s.persisted = fileSettings.normalize(defaults)
	} else if !errors.Is(err, os.ErrNotExist) {
		logs.Logger.Warn().Err(err).Str("path", s.Path()).Msg("ignoring unreadable settings file")
	}

	// Priority 2: environment variables
	if err := s.over.set(os.Getenv(EnvMode), os.Getenv(EnvSingleFile), os.Getenv(EnvDailyFolder), os.Getenv(EnvDailyFormat)); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvMode, err)
	}

	// Priority 1: CLI flags override everything
	if err := s.over.set(flags.Mode, flags.SingleFile, flags.DailyFolder, flags.DailyFormat); err != nil {
		return nil, err
	}

	return s, nil
}

func (o *overrides) set(mode, singleFile, dailyFolder, dailyFormat string) error {
	if mode != "" {
		m, err := ParseMode(mode)
		if err != nil {
			return err
		}
		o.mode = m
	}
	if singleFile != "" {
		o.singleFile = singleFile
	}
	if dailyFolder != "" {
		o.dailyFolder = dailyFolder
	}
	if dailyFormat != "" {
		o.dailyFormat = dailyFormat
	}
	return nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/traynote or ~/.config/traynote.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "traynote"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "traynote"), nil
}

// Dir returns the configuration directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, settingsFileName)
}

// Settings returns the effective settings (persisted values plus overrides).
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over.apply(s.persisted)
}

// CurrentFilePath resolves the file the next note goes to.
func (s *Store) CurrentFilePath() string {
	return ResolvePath(s.Settings(), s.Now())
}

// PreviewFilename returns today's daily file name for the effective format.
func (s *Store) PreviewFilename() string {
	return PreviewFilename(s.Settings().DailyFileFormat, s.Now())
}

func (s *Store) SetMode(m Mode) error {
	if m != ModeSingle && m != ModeDaily {
		return fmt.Errorf("unknown note file mode %q", m)
	}
	return s.update(func(st *Settings, o *overrides) {
		st.Mode = m
		o.mode = ""
	})
}

func (s *Store) SetSingleFilePath(path string) error {
	if path == "" {
		return errors.New("single file path cannot be empty")
	}
	return s.update(func(st *Settings, o *overrides) {
		st.SingleFilePath = expandPath(path)
		o.singleFile = ""
	})
}

func (s *Store) SetDailyFolderPath(path string) error {
	if path == "" {
		return errors.New("daily folder path cannot be empty")
	}
	return s.update(func(st *Settings, o *overrides) {
		st.DailyFolderPath = expandPath(path)
		o.dailyFolder = ""
	})
}

// SetDailyFileFormat accepts any pattern; odd patterns still resolve to a
// usable file name.
func (s *Store) SetDailyFileFormat(format string) error {
	if format == "" {
		format = DefaultDailyFileFormat
	}
	return s.update(func(st *Settings, o *overrides) {
		st.DailyFileFormat = format
		o.dailyFormat = ""
	})
}

// Set changes a setting by its persisted key name.
func (s *Store) Set(key, value string) error {
	switch key {
	case "noteFileMode":
		m, err := ParseMode(value)
		if err != nil {
			return err
		}
		return s.SetMode(m)
	case "singleFilePath":
		return s.SetSingleFilePath(value)
	case "dailyFolderPath":
		return s.SetDailyFolderPath(value)
	case "dailyFileFormat":
		return s.SetDailyFileFormat(value)
	}
	return fmt.Errorf("unknown setting %q", key)
}

// Keys lists the persisted setting names.
func Keys() []string {
	return []string{"noteFileMode", "singleFilePath", "dailyFolderPath", "dailyFileFormat"}
}

// An explicit change drops the matching override so the user sees what
// they just set.
func (s *Store) update(fn func(*Settings, *overrides)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, nextOver := s.persisted, s.over
	fn(&next, &nextOver)
	if err := writeSettingsFile(s.Path(), next); err != nil {
		return err
	}
	s.persisted, s.over = next, nextOver
	logs.Logger.Debug().Str("path", s.Path()).Str("mode", string(next.Mode)).Msg("settings saved")
	return nil
}

// Reload re-reads the settings file. It reports whether the effective
// settings changed. The file is read under the lock so a concurrent setter
// can't be overwritten by what was on disk before it.
func (s *Store) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileSettings, err := loadSettingsFile(s.Path())
	if err != nil {
		return false, err
	}

	before := s.over.apply(s.persisted)
	s.persisted = fileSettings.normalize(s.defaults)
	return before != s.over.apply(s.persisted), nil
}

// EnsureSettingsFile writes the current persisted settings if the file
// doesn't exist yet.
func (s *Store) EnsureSettingsFile() error {
	if _, err := os.Stat(s.Path()); err == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeSettingsFile(s.Path(), s.persisted)
}

func loadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return settings, nil
}

func writeSettingsFile(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return writeFileAtomic(path, data, 0644)
}

// writeFileAtomic replaces path via a temp file in the same directory so a
// watcher never sees a half-written settings file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
