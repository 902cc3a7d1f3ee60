package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "clientbook.yaml"

// Config represents the top-level clientbook.yaml configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Validation ValidationConfig `yaml:"validation"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "sqlite" or "postgres"
	Path     string `yaml:"path,omitempty"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Name     string `yaml:"name,omitempty"`
	SSLMode  string `yaml:"sslmode,omitempty"`
}

// ValidationConfig bounds the fiscal year accepted on payments.
type ValidationConfig struct {
	MinFiscalYear int `yaml:"min_fiscal_year"`
	MaxYearsAhead int `yaml:"max_years_ahead"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Load reads a clientbook.yaml file from disk. A missing file is an error;
// use LoadOrDefault when the file is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists, falls back to Default otherwise,
// then applies environment overrides.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
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

// Default returns a Config backed by a local SQLite file.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Path:    "clientbook.db",
			Host:    "localhost",
			Port:    5432,
			User:    "clientbook",
			Name:    "client_management",
			SSLMode: "disable",
		},
		Validation: ValidationConfig{
			MinFiscalYear: 1900,
			MaxYearsAhead: 10,
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// ApplyEnv overrides fields from environment variables. Variables that are
// unset or empty leave the current value alone.
func (c *Config) ApplyEnv() {
	c.Database.Driver = getEnv("CLIENTBOOK_DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("CLIENTBOOK_DB_PATH", c.Database.Path)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Log.Level = getEnv("CLIENTBOOK_LOG_LEVEL", c.Log.Level)
	c.Log.Console = getEnvBool("CLIENTBOOK_LOG_CONSOLE", c.Log.Console)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool accepts "1", "true", "yes" as true; any other non-empty value is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
