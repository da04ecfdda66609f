// Package config loads the YAML configuration file over compiled-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the whole application configuration.
type Config struct {
	Database Database `yaml:"database"`
	Http     Http     `yaml:"http"`
	Log      Log      `yaml:"log"`
	ML       ML       `yaml:"ml"`
	Report   Report   `yaml:"report"`
}

// Database selects the store driver and its connection settings.
type Database struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	// Path is the database file when Driver is sqlite3.
	Path string `yaml:"path"`
}

// Http configures the API server.
type Http struct {
	Port           int           `yaml:"port"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

// Log configures the level, encoder and optional rotated file sink.
type Log struct {
	Level      string `yaml:"level"`
	Mode       string `yaml:"mode"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ML names the model artifact loaded at startup.
type ML struct {
	ModelType string `yaml:"model_type"`
	ModelPath string `yaml:"model_path"`
}

// Report selects the locale for labels and premium formatting.
type Report struct {
	Locale string `yaml:"locale"`
}

// Default returns the fixed connection constants and the shipped model.
func Default() Config {
	return Config{
		Database: Database{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Password: "",
			Name:     "asuransi_projek1",
			Path:     "data/predictions.db",
		},
		Http: Http{
			Port:           8080,
			Timeout:        30 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   1 << 20,
		},
		Log: Log{
			Level:      "info",
			Mode:       "development",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		ML: ML{
			ModelType: "linear",
			ModelPath: "models/premium_linear.json",
		},
		Report: Report{
			Locale: "en",
		},
	}
}

// Load decodes path over Default.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		def := Default()
		return &def, nil
	}
	return config, err
}

// Validate checks the fields the process cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql":
		if c.Database.Name == "" {
			return errors.New("database.name is required for mysql")
		}
	case "sqlite3":
		if c.Database.Path == "" {
			return errors.New("database.path is required for sqlite3")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.ML.ModelPath == "" {
		return errors.New("ml.model_path is required")
	}
	if c.Http.Port <= 0 {
		return errors.New("http.port must be positive")
	}
	return nil
}
