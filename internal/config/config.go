// Package config loads settings for the ivy command.
//
// A config file is TOML (.toml) or YAML (.yaml, .yml); both use the same
// keys:
//
//	[parser]
//	max_depth  = 512
//	tuple_scan = "nested"   # or "flat"
//	trace      = false
//
//	[log]
//	level  = "warn"         # debug, info, warn, error
//	format = "text"         # text, json
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/ivy-lang/parser"
)

// EnvVar names the environment variable consulted by LoadFromEnv.
const EnvVar = "IVY_CONFIG"

// Config holds the complete ivy configuration.
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ParserConfig holds parser settings.
type ParserConfig struct {
	MaxDepth  int    `toml:"max_depth" yaml:"max_depth"`
	TupleScan string `toml:"tuple_scan" yaml:"tuple_scan"`
	Trace     bool   `toml:"trace" yaml:"trace"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, defaults and validates the config file at path.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by IVY_CONFIG, or returns Default when
// the variable is unset.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Parser.TupleScan == "" {
		c.Parser.TupleScan = parser.ScanNested.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if _, err := parser.ParseTupleScan(c.Parser.TupleScan); err != nil {
		return fmt.Errorf("parser.tuple_scan: %w", err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ParserOptions converts the parser settings. logger is installed as the
// parse logger and, when tracing is on, as the trace sink.
func (c *Config) ParserOptions(logger *slog.Logger) parser.Options {
	scan, _ := parser.ParseTupleScan(c.Parser.TupleScan)
	opts := parser.Options{
		Logger:    logger,
		MaxDepth:  c.Parser.MaxDepth,
		TupleScan: scan,
	}
	if c.Parser.Trace && logger != nil {
		opts.Tracer = parser.NewSlogTracer(logger)
	}
	return opts
}

// Logger builds a slog.Logger writing to w at the configured level and
// format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	hopts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
}
