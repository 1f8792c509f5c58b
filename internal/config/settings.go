package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Mode selects where captured notes are written.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDaily  Mode = "daily"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeSingle, ModeDaily}

// ParseMode accepts the persisted mode names plus a few obvious spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-file", "singlefile", "inbox":
		return ModeSingle, nil
	case "daily", "daily-file", "dailyfile":
		return ModeDaily, nil
	}
	return "", fmt.Errorf("unknown note file mode %q (want single or daily)", s)
}

func (m Mode) DisplayName() string {
	if m == ModeDaily {
		return "Daily File"
	}
	return "Single File"
}

func (m Mode) Description() string {
	if m == ModeDaily {
		return "Creates a new file each day"
	}
	return "All notes go to one file"
}

// Settings is the persisted user configuration. The yaml keys are the
// preference names and must stay stable.
type Settings struct {
	Mode            Mode   `yaml:"noteFileMode"`
	SingleFilePath  string `yaml:"singleFilePath"`
	DailyFolderPath string `yaml:"dailyFolderPath"`
	DailyFileFormat string `yaml:"dailyFileFormat"`
}

// DefaultSettings returns single-file mode writing to ~/Documents/Inbox.md.
func DefaultSettings() (Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, err
	}
	docs := filepath.Join(homeDir, "Documents")
	return Settings{
		Mode:            ModeSingle,
		SingleFilePath:  filepath.Join(docs, "Inbox.md"),
		DailyFolderPath: docs,
		DailyFileFormat: DefaultDailyFileFormat,
	}, nil
}

// ResolvePath returns the file a note captured at now should go to.
// It cannot fail: missing directories are the writer's problem.
func ResolvePath(s Settings, now time.Time) string {
	if s.Mode == ModeDaily {
		return filepath.Join(s.DailyFolderPath, dailyFileName(s.DailyFileFormat, now)+".md")
	}
	return s.SingleFilePath
}

// PreviewFilename is the daily file name for now, as shown in settings UIs.
func PreviewFilename(format string, now time.Time) string {
	return dailyFileName(format, now) + ".md"
}

// normalize fills blanks from defaults and expands ~/ prefixes.
func (s Settings) normalize(defaults Settings) Settings {
	if s.Mode != ModeSingle && s.Mode != ModeDaily {
		if m, err := ParseMode(string(s.Mode)); err == nil {
			s.Mode = m
		} else {
			s.Mode = defaults.Mode
		}
	}
	if s.SingleFilePath == "" {
		s.SingleFilePath = defaults.SingleFilePath
	}
	if s.DailyFolderPath == "" {
		s.DailyFolderPath = defaults.DailyFolderPath
	}
	if s.DailyFileFormat == "" {
		s.DailyFileFormat = defaults.DailyFileFormat
	}
	s.SingleFilePath = expandPath(s.SingleFilePath)
	s.DailyFolderPath = expandPath(s.DailyFolderPath)
	return s
}

func expandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}
	if path != "" && !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}
