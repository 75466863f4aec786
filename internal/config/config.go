// Package config loads todo settings from defaults, TOML files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/Makepad-fr/todolist/internal/store/jsonstore"
)

const (
	DefaultFile      = jsonstore.DefaultFileName
	DefaultTitle     = "Todos"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// ErrInvalid is wrapped by Load when the merged configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config is the merged configuration.
type Config struct {
	File      string `toml:"file" validate:"required"`
	Title     string `toml:"title" validate:"required"`
	Theme     string `toml:"theme" validate:"oneof=classic neon mono"`
	LogLevel  string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" validate:"oneof=text json logfmt"`
	LogTime   bool   `toml:"log_time"`
	Group     bool   `toml:"group"`
	Plain     bool   `toml:"plain"`

	// ConfigFiles lists the files that were read, lowest precedence first.
	ConfigFiles []string `toml:"-"`
}

var validate = validator.New()

// Load builds a Config:
// 1. Defaults
// 2. User config file (~/.tada/config.toml)
// 3. Project config file (tada.toml or .tada.toml in the current directory)
// 4. Environment variables (TADA_*)
// 5. Flags parsed from args by fs
//
// The remaining positional arguments are available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	for _, path := range []string{findUserConfigFile(), findProjectConfigFile()} {
		if path == "" {
			continue
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.ConfigFiles = append(cfg.ConfigFiles, path)
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	normalize(cfg)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.File = DefaultFile
	cfg.Title = DefaultTitle
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("TADA_TITLE"); v != "" {
		cfg.Title = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TADA_LOG_TIME"); v != "" {
		cfg.LogTime = boolFromString(v)
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.File, "file", cfg.File, "path to the todo JSON file")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "title for a new list")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme: classic, neon or mono")
	fs.BoolVar(&cfg.Group, "group", cfg.Group, "group output by pending/done")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "print the list instead of opening the interactive view")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or logfmt")
	fs.BoolVar(&cfg.LogTime, "log-time", cfg.LogTime, "include timestamps in log records")
	return fs.Parse(args)
}

func normalize(cfg *Config) {
	cfg.File = expandPath(strings.TrimSpace(cfg.File))
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func findProjectConfigFile() string {
	for _, name := range []string{"tada.toml", ".tada.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".tada", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// expandPath resolves a leading "~/" to the user's home directory.
func expandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
