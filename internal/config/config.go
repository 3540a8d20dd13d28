package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"markwright/internal/checker"
	"markwright/internal/chunk"
	"markwright/internal/dictionary"
	"markwright/internal/languagetool"
)

// Check level constants understood by the remote checker.
const (
	LevelDefault = "default"
	LevelPicky   = "picky"
)

// Defaults for settings with no better source than convention.
const (
	DefaultAddr     = "localhost:4040"
	DefaultLanguage = "en-GB"
	DefaultTimeout  = 30 * time.Second
)

// Settings holds all configuration for the application.
type Settings struct {
	Output       string        `mapstructure:"output"`
	Watch        bool          `mapstructure:"watch"`
	Serve        bool          `mapstructure:"serve"`
	Addr         string        `mapstructure:"addr"`
	Grammar      bool          `mapstructure:"grammar"`
	Endpoint     string        `mapstructure:"endpoint"`
	Language     string        `mapstructure:"language"`
	Level        string        `mapstructure:"level"`
	MaxSegment   int           `mapstructure:"max_segment"`
	Concurrency  int           `mapstructure:"concurrency"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Dictionary   string        `mapstructure:"dictionary"`
	Cache        string        `mapstructure:"cache"`
	CanonicalURL string        `mapstructure:"canonical_url"`
	SearchTerm   string        `mapstructure:"search_term"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
}

// RegisterFlags declares the settings flags on flags. Flag names double as
// viper keys with dashes mapped to underscores.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("output", "", "output HTML path (default: input with .html extension)")
	flags.Bool("watch", false, "rebuild when the input file changes")
	flags.Bool("serve", false, "serve a live preview of the output (implies --watch)")
	flags.String("addr", DefaultAddr, "preview server listen address")
	flags.Bool("grammar", false, "check grammar and spelling after building")
	flags.String("endpoint", languagetool.DefaultBaseURL, "grammar checker API endpoint")
	flags.String("language", DefaultLanguage, "grammar checker language code")
	flags.String("level", LevelPicky, "grammar checker strictness (default or picky)")
	flags.Int("max-segment", chunk.DefaultMaxSegment, "longest text segment sent in one request, in characters")
	flags.Int("concurrency", checker.DefaultConcurrency, "segments checked in parallel")
	flags.Duration("timeout", DefaultTimeout, "per-request timeout for the grammar checker")
	flags.String("dictionary", dictionary.DefaultPath, "accepted words file")
	flags.String("cache", "", "SQLite check result cache path (empty disables caching)")
	flags.String("canonical-url", "", "root URL for rewriting relative links")
	flags.String("search-term", "", "term to highlight in the rendered output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
}

// LoadSettings loads settings from environment variables and an optional
// .env file.
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	// Populate the process environment from .env first so viper sees it
	// (ignore error if the file doesn't exist)
	_ = godotenv.Load()

	v := viper.New()

	// Default values
	v.SetDefault("output", "")
	v.SetDefault("watch", false)
	v.SetDefault("serve", false)
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("grammar", false)
	v.SetDefault("endpoint", languagetool.DefaultBaseURL)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("level", LevelPicky)
	v.SetDefault("max_segment", chunk.DefaultMaxSegment)
	v.SetDefault("concurrency", checker.DefaultConcurrency)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("dictionary", dictionary.DefaultPath)
	v.SetDefault("cache", "")
	v.SetDefault("canonical_url", "")
	v.SetDefault("search_term", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Environment variables
	v.SetEnvPrefix("MARKWRIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("output", flags.Lookup("output"))
		_ = v.BindPFlag("watch", flags.Lookup("watch"))
		_ = v.BindPFlag("serve", flags.Lookup("serve"))
		_ = v.BindPFlag("addr", flags.Lookup("addr"))
		_ = v.BindPFlag("grammar", flags.Lookup("grammar"))
		_ = v.BindPFlag("endpoint", flags.Lookup("endpoint"))
		_ = v.BindPFlag("language", flags.Lookup("language"))
		_ = v.BindPFlag("level", flags.Lookup("level"))
		_ = v.BindPFlag("max_segment", flags.Lookup("max-segment"))
		_ = v.BindPFlag("concurrency", flags.Lookup("concurrency"))
		_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
		_ = v.BindPFlag("dictionary", flags.Lookup("dictionary"))
		_ = v.BindPFlag("cache", flags.Lookup("cache"))
		_ = v.BindPFlag("canonical_url", flags.Lookup("canonical-url"))
		_ = v.BindPFlag("search_term", flags.Lookup("search-term"))
		_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
		_ = v.BindPFlag("log_format", flags.Lookup("log-format"))
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	// Serving a preview without rebuilding on change would show stale output
	if settings.Serve {
		settings.Watch = true
	}

	return &settings, nil
}

// ValidateSettings checks for out-of-range or inconsistent values.
func ValidateSettings(s *Settings) error {
	switch s.Level {
	case LevelDefault, LevelPicky:
		// valid
	default:
		return errors.New("level must be 'default' or 'picky', got: " + s.Level)
	}

	if s.Language == "" {
		return errors.New("language cannot be empty")
	}

	if s.MaxSegment <= 0 {
		return errors.New("max-segment must be positive")
	}

	if s.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}

	if s.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}

	if s.Serve && s.Addr == "" {
		return errors.New("serve requires a listen address")
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return errors.New("log-level must be debug, info, warn, or error, got: " + s.LogLevel)
	}

	switch s.LogFormat {
	case "text", "json":
		// valid
	default:
		return errors.New("log-format must be 'text' or 'json', got: " + s.LogFormat)
	}

	return nil
}

// SlogLevel maps the configured log level onto slog's levels.
func (s *Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
