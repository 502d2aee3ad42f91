package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/grindmap/internal/engine/history"
	"github.com/dshills/grindmap/internal/logging"
)

// Config holds every setting.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	History HistoryConfig `toml:"history"`
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is where logs are appended. Empty discards logs.
	File string `toml:"file"`
}

// HistoryConfig controls undo.
type HistoryConfig struct {
	// MaxEntries is the number of edits kept for undo.
	MaxEntries int `toml:"max_entries"`

	// ExactHeightUndo restores the exact heights an edit overwrote. When
	// false, undo subtracts the delta and clamps again, so heights pinned at
	// a bound may not come back.
	ExactHeightUndo bool `toml:"exact_height_undo"`
}

// EditorConfig controls editing behavior.
type EditorConfig struct {
	// ScrollStep is the height change for one wheel notch.
	ScrollStep int `toml:"scroll_step"`

	// WatchFiles reloads the open file when it changes on disk.
	WatchFiles bool `toml:"watch_files"`

	// ExtendModifier is held on release to add a box to the selection:
	// "shift", "ctrl" or "alt".
	ExtendModifier string `toml:"extend_modifier"`
}

// UIConfig controls the terminal display.
type UIConfig struct {
	// Mouse enables mouse reporting.
	Mouse bool `toml:"mouse"`

	// CellWidth is the number of columns used to draw one grid cell.
	CellWidth int `toml:"cell_width"`
}

// Limits enforced by Validate.
const (
	MaxHistoryEntries = 100000
	MaxScrollStep     = 100
	MinCellWidth      = 3
	MaxCellWidth      = 8
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			MaxEntries:      history.DefaultMaxEntries,
			ExactHeightUndo: true,
		},
		Editor: EditorConfig{
			ScrollStep:     1,
			WatchFiles:     true,
			ExtendModifier: "shift",
		},
		UI: UIConfig{
			Mouse:     true,
			CellWidth: 3,
		},
	}
}

// DefaultPath returns the per-user config file location, or "" if the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "grindmap", "config.toml")
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(path string, value any, msg string) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Message: msg})
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		invalid("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}
	if c.History.MaxEntries < 1 || c.History.MaxEntries > MaxHistoryEntries {
		invalid("history.max_entries", c.History.MaxEntries, fmt.Sprintf("must be between 1 and %d", MaxHistoryEntries))
	}
	if c.Editor.ScrollStep < 1 || c.Editor.ScrollStep > MaxScrollStep {
		invalid("editor.scroll_step", c.Editor.ScrollStep, fmt.Sprintf("must be between 1 and %d", MaxScrollStep))
	}
	switch c.Editor.ExtendModifier {
	case "shift", "ctrl", "alt":
	default:
		invalid("editor.extend_modifier", c.Editor.ExtendModifier, `must be "shift", "ctrl" or "alt"`)
	}
	if c.UI.CellWidth < MinCellWidth || c.UI.CellWidth > MaxCellWidth {
		invalid("ui.cell_width", c.UI.CellWidth, fmt.Sprintf("must be between %d and %d", MinCellWidth, MaxCellWidth))
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// UndoMode returns the configured height undo behavior.
func (c *Config) UndoMode() history.UndoMode {
	if c.History.ExactHeightUndo {
		return history.UndoExact
	}
	return history.UndoClamped
}
