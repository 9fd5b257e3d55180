// Package config loads op's layered JSONC configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/onpurpose/internal/datalayer"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".op.json"

// Config holds all configuration options.
type Config struct {
	DBPath      string `json:"db_path"`
	MailboxSize int    `json:"mailbox_size"`
	FocusTime   bool   `json:"focus_time"`
	LogLevel    string `json:"log_level"`

	// Resolved (not serialized)
	EffectiveCwd string  `json:"-"`
	DBPathAbs    string  `json:"-"`
	Sources      Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// fileConfig is one config file. Pointers distinguish "unset" from zero.
type fileConfig struct {
	DBPath      *string `json:"db_path"`
	MailboxSize *int    `json:"mailbox_size"`
	FocusTime   *bool   `json:"focus_time"`
	LogLevel    *string `json:"log_level"`
}

// Default returns the built-in configuration. DBPath is empty when neither
// XDG_DATA_HOME nor HOME is set.
func Default(env map[string]string) Config {
	return Config{
		DBPath:      defaultDBPath(env),
		MailboxSize: datalayer.DefaultMailboxSize,
		LogLevel:    "warn",
	}
}

// defaultDBPath uses $XDG_DATA_HOME/op/onpurpose.db, falling back to
// ~/.local/share/op/onpurpose.db.
func defaultDBPath(env map[string]string) string {
	if dataHome := env["XDG_DATA_HOME"]; dataHome != "" {
		return filepath.Join(dataHome, "op", "onpurpose.db")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "op", "onpurpose.db")
	}

	return ""
}

// globalPath returns $XDG_CONFIG_HOME/op/config.json or ~/.config/op/config.json.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "op", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "op", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	DBPathOverride  string            // --db flag value; empty means no override
	Env             map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config
//  3. Project config (.op.json in the working directory, if it exists)
//  4. Explicit config file via ConfigPath (replaces 3, must exist)
//  5. CLI overrides
//
// Relative db paths resolve against the working directory.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default(input.Env)

	if path := globalPath(input.Env); path != "" {
		fc, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = path
			cfg = merge(cfg, fc)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false

	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
	}

	fc, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, fc)
	}

	if input.DBPathOverride != "" {
		cfg.DBPath = input.DBPathOverride
	}

	err = validate(cfg)
	if err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.DBPath) {
		cfg.DBPathAbs = cfg.DBPath
	} else {
		cfg.DBPathAbs = filepath.Join(workDir, cfg.DBPath)
	}

	return cfg, nil
}

// loadFile reads one config file. Missing optional files report loaded=false.
func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !mustExist {
			return fileConfig{}, false, nil
		}

		if os.IsNotExist(err) {
			return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	fc, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	if fc.DBPath != nil && *fc.DBPath == "" {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrDBPathEmpty)
	}

	return fc, true, nil
}

func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig

	err = json.Unmarshal(standardized, &fc)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return fc, nil
}

func merge(base Config, overlay fileConfig) Config {
	if overlay.DBPath != nil {
		base.DBPath = *overlay.DBPath
	}

	if overlay.MailboxSize != nil {
		base.MailboxSize = *overlay.MailboxSize
	}

	if overlay.FocusTime != nil {
		base.FocusTime = *overlay.FocusTime
	}

	if overlay.LogLevel != nil {
		base.LogLevel = *overlay.LogLevel
	}

	return base
}

func validate(cfg Config) error {
	if cfg.DBPath == "" {
		return ErrNoDataDir
	}

	if cfg.MailboxSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrMailboxSize, cfg.MailboxSize)
	}

	_, err := ParseLevel(cfg.LogLevel)

	return err
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w (got %q)", ErrLogLevel, s)
	}
}

// Level returns the configured log level. Load has already validated it.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}

	return level
}
