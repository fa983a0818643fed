package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains listener configuration.
type Server struct {
	Address        string   `toml:"address"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
	MaxRequestSize int      `toml:"max_request_size"`
	Concurrency    int      `toml:"concurrency"`
}

// Logging contains configuration for log output.
type Logging struct {
	File string `toml:"file"`
	JSON bool   `toml:"json"`
}

// Processing contains normalization settings.
type Processing struct {
	Normalizer      string `toml:"normalizer"`
	Workers         int    `toml:"workers"`
	BatchSize       int    `toml:"batch_size"`
	MaxBatchRecords int    `toml:"max_batch_records"`
	WarmUp          bool   `toml:"warm_up"`
}

// Config encapsulates all server configuration values.
type Config struct {
	Server     Server     `toml:"server"`
	Logging    Logging    `toml:"logging"`
	Processing Processing `toml:"processing"`
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText renders the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Address:        ":8080",
			ReadTimeout:    Duration{30 * time.Second},
			WriteTimeout:   Duration{30 * time.Second},
			MaxRequestSize: 10 * 1024 * 1024,
		},
		Logging: Logging{
			JSON: true,
		},
		Processing: Processing{
			Normalizer:      "guarded",
			BatchSize:       100,
			MaxBatchRecords: 10000,
			WarmUp:          true,
		},
	}
}

// Load parses and validates the configuration file at path. An empty path
// returns the defaults. A named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found", path)
			}
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
