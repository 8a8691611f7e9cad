package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a books directory.
const FileName = "books.yaml"

// Config represents the top-level books.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Books     BooksConfig     `yaml:"books"`
	Reporting ReportingConfig `yaml:"reporting"`
	Log       LogConfig       `yaml:"log"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// BooksConfig locates the transaction log and names the closing identifiers.
type BooksConfig struct {
	Database         string `yaml:"database"` // relative to the books directory unless absolute
	RetainedEarnings string `yaml:"retained_earnings"`
	ClosingMarker    string `yaml:"closing_marker"`
}

// ReportingConfig controls report defaults.
type ReportingConfig struct {
	Month  string `yaml:"month,omitempty"` // "YYYY-MM" label; current month when empty
	Locale string `yaml:"locale"`          // BCP 47 tag for amount formatting
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// envOverrides are the CLOSEBOOKS_* variables applied on top of books.yaml.
type envOverrides struct {
	BusinessName     string `envconfig:"CLOSEBOOKS_BUSINESS_NAME"`
	Database         string `envconfig:"CLOSEBOOKS_DATABASE"`
	RetainedEarnings string `envconfig:"CLOSEBOOKS_RETAINED_EARNINGS"`
	ClosingMarker    string `envconfig:"CLOSEBOOKS_CLOSING_MARKER"`
	ReportMonth      string `envconfig:"CLOSEBOOKS_REPORT_MONTH"`
	Locale           string `envconfig:"CLOSEBOOKS_LOCALE"`
	LogLevel         string `envconfig:"CLOSEBOOKS_LOG_LEVEL"`
	LogFormat        string `envconfig:"CLOSEBOOKS_LOG_FORMAT"`
}

// Load reads a books.yaml file from disk. Missing fields take defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for new books.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Books: BooksConfig{
			Database:         "books.db",
			RetainedEarnings: "303",
			ClosingMarker:    "[Year-End Closing]",
		},
		Reporting: ReportingConfig{
			Locale: "en-US",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadDir loads books.yaml from a books directory. A .env file in the
// directory is read first, then CLOSEBOOKS_* variables override the file.
func LoadDir(dir string) (*Config, error) {
	if err := LoadEnvFile(dir); err != nil {
		return nil, err
	}
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any CLOSEBOOKS_* variables that are set.
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Business.Name, env.BusinessName)
	set(&cfg.Books.Database, env.Database)
	set(&cfg.Books.RetainedEarnings, env.RetainedEarnings)
	set(&cfg.Books.ClosingMarker, env.ClosingMarker)
	set(&cfg.Reporting.Month, env.ReportMonth)
	set(&cfg.Reporting.Locale, env.Locale)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Log.Format, env.LogFormat)
	return nil
}

// DatabasePath resolves the database location against the books directory.
func (c *Config) DatabasePath(dir string) string {
	if filepath.IsAbs(c.Books.Database) {
		return c.Books.Database
	}
	return filepath.Join(dir, c.Books.Database)
}
