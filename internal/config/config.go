package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure. It is read-only after Load
// returns.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Log      LogConfig      `yaml:"log"`
	Memo     MemoConfig     `yaml:"memo"`
	Report   ReportConfig   `yaml:"report"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DatasetConfig points at an override checklist/activities directory.
// Empty means the built-in dataset.
type DatasetConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	UseCases bool   `yaml:"use_cases"`
}

// MemoConfig sizes the result cache.
type MemoConfig struct {
	Size int `yaml:"size"`
}

// ReportConfig controls report export and terminal rendering.
type ReportConfig struct {
	Dir   string `yaml:"dir"`
	Width int    `yaml:"width"`
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// A .env file in the working directory is read into the environment first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := newDefaults(home)

	configPath := getEnv("FIRSTMAP_CONFIG", filepath.Join(home, ".firstmap", "config.yaml"))
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Database.Path = expandHome(cfg.Database.Path, home)
	cfg.Dataset.Dir = expandHome(cfg.Dataset.Dir, home)
	cfg.Report.Dir = expandHome(cfg.Report.Dir, home)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific path, which must exist.
func LoadFromFile(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := newDefaults(home)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Database.Path = expandHome(cfg.Database.Path, home)
	cfg.Dataset.Dir = expandHome(cfg.Dataset.Dir, home)
	cfg.Report.Dir = expandHome(cfg.Report.Dir, home)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDefaults(home string) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(home, ".firstmap", "firstmap.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Memo: MemoConfig{
			Size: 256,
		},
		Report: ReportConfig{
			Dir:   ".",
			Width: 80,
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies FIRSTMAP_* variables. Only non-empty values
// override; malformed numbers and booleans are errors.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FIRSTMAP_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("FIRSTMAP_DATASET_DIR"); v != "" {
		cfg.Dataset.Dir = v
	}

	if v := os.Getenv("FIRSTMAP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FIRSTMAP_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FIRSTMAP_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FIRSTMAP_LOG_USE_CASES: %w", err)
		}
		cfg.Log.UseCases = b
	}

	if v := os.Getenv("FIRSTMAP_MEMO_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIRSTMAP_MEMO_SIZE: %w", err)
		}
		cfg.Memo.Size = n
	}

	if v := os.Getenv("FIRSTMAP_REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("FIRSTMAP_REPORT_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIRSTMAP_REPORT_WIDTH: %w", err)
		}
		cfg.Report.Width = n
	}
	return nil
}

func (c *Config) validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: invalid value %q (expected debug, info, warn or error)", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: invalid value %q (expected text or json)", c.Log.Format))
	}
	if c.Memo.Size <= 0 {
		errs = append(errs, fmt.Errorf("memo.size must be > 0, got %d", c.Memo.Size))
	}
	if c.Report.Width < 40 {
		errs = append(errs, fmt.Errorf("report.width must be >= 40, got %d", c.Report.Width))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	return errors.Join(errs...)
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
