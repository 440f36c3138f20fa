// package config loads the application configuration
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cirocosta/offmychest/internal/repository"
)

// Environments the application knows how to run in
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// DriverMemory keeps everything in process memory, mostly for demos and tests
const DriverMemory = "memory"

// DefaultPaths are searched in order when no config file is given
var DefaultPaths = []string{"offmychest.yaml", "offmychest.yml"}

// Config holds everything needed to start the application
type Config struct {
	Addr        string   `yaml:"addr"`
	Environment string   `yaml:"environment"`
	Database    Database `yaml:"database"`
	Log         Log      `yaml:"log"`
}

// Database selects and tunes the store
type Database struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Log configures the slog handler
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is specified
func Default() Config {
	return Config{
		Addr:        ":7483",
		Environment: EnvDevelopment,
		Database: Database{
			Driver:          repository.SQLite.Name,
			DSN:             "db.sqlite",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 10 * time.Minute,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or the
// first of DefaultPaths that exists when path is empty) and environment
// overrides, in that order
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		for _, candidate := range DefaultPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	overrides := map[string]*string{
		"OFFMYCHEST_ADDR":       &c.Addr,
		"OFFMYCHEST_ENV":        &c.Environment,
		"OFFMYCHEST_DB_DRIVER":  &c.Database.Driver,
		"OFFMYCHEST_DB_DSN":     &c.Database.DSN,
		"OFFMYCHEST_LOG_LEVEL":  &c.Log.Level,
		"OFFMYCHEST_LOG_FORMAT": &c.Log.Format,
	}

	for key, field := range overrides {
		if value := getenv(key); value != "" {
			*field = value
		}
	}
}

// Validate reports every invalid setting at once
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}

	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Environment))
	}

	if c.Database.Driver != DriverMemory {
		if _, err := repository.DialectFor(c.Database.Driver); err != nil {
			errs = append(errs, err)
		}
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required"))
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether development conveniences must be off
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DBConfig returns the settings the repository layer opens the database with
func (c Config) DBConfig() repository.DBConfig {
	return repository.DBConfig{
		Driver:          c.Database.Driver,
		DSN:             c.Database.DSN,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
	}
}

// SlogLevel parses the configured level
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(l.Level))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}

// NewLogger builds the slog logger described by l
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
