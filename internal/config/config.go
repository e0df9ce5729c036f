// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rampshare.
//
// go-rampshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-rampshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-rampshare/pkg/crypto/aead"
	"github.com/jeremyhahn/go-rampshare/pkg/crypto/rand"
	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
	"github.com/jeremyhahn/go-rampshare/pkg/validation"
)

// Storage backend names
const (
	BackendMemory = "memory"
	BackendFile   = "file"
)

// Config represents the rampshare configuration
type Config struct {
	Scheme   SchemeConfig   `yaml:"scheme"`
	Envelope EnvelopeConfig `yaml:"envelope"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SchemeConfig holds the ramp scheme parameters
type SchemeConfig struct {
	N         int    `yaml:"n"`
	K         int    `yaml:"k"`
	M         int    `yaml:"m"`
	Coalition string `yaml:"coalition"`
}

// EnvelopeConfig selects the AEAD cipher and entropy source
type EnvelopeConfig struct {
	Algorithm string `yaml:"algorithm"`
	RNG       string `yaml:"rng"`
}

// StorageConfig selects where share sets are persisted
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics configuration. Textfile, when set, is the
// path of a Prometheus text exposition file written after each command.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration: a 7-participant scheme with
// threshold 5 and 3 mandatory participants, AES-256-GCM envelopes and an
// in-memory store.
func Default() *Config {
	return &Config{
		Scheme: SchemeConfig{
			N:         7,
			K:         5,
			M:         3,
			Coalition: ramp.CoalitionMandatoryFirst.String(),
		},
		Envelope: EnvelopeConfig{
			Algorithm: aead.AES256GCM,
			RNG:       string(rand.ModeSoftware),
		},
		Storage: StorageConfig{
			Backend: BackendMemory,
			Path:    "./data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logger.FormatText,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from a YAML file and validates it. Fields
// missing from the file keep their defaults. Environment variables
// override file values.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further
// overrides before calling Validate.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies RAMPSHARE_* environment variables to the config
func applyEnvOverrides(cfg *Config) {
	// Scheme
	envInt("RAMPSHARE_N", &cfg.Scheme.N)
	envInt("RAMPSHARE_K", &cfg.Scheme.K)
	envInt("RAMPSHARE_M", &cfg.Scheme.M)
	if coalition := os.Getenv("RAMPSHARE_COALITION"); coalition != "" {
		cfg.Scheme.Coalition = coalition
	}

	// Envelope
	if algorithm := os.Getenv("RAMPSHARE_ALGORITHM"); algorithm != "" {
		cfg.Envelope.Algorithm = algorithm
	}
	if rng := os.Getenv("RAMPSHARE_RNG"); rng != "" {
		cfg.Envelope.RNG = rng
	}

	// Storage
	if backend := os.Getenv("RAMPSHARE_STORAGE"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dataDir := os.Getenv("RAMPSHARE_DATA_DIR"); dataDir != "" {
		cfg.Storage.Path = dataDir
	}

	// Logging
	if level := os.Getenv("RAMPSHARE_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("RAMPSHARE_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	// Metrics
	if enabled := os.Getenv("RAMPSHARE_METRICS_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			log.Printf("Warning: invalid RAMPSHARE_METRICS_ENABLED value %q, using default %t: %v",
				enabled, cfg.Metrics.Enabled, err)
		} else {
			cfg.Metrics.Enabled = v
		}
	}
	if textfile := os.Getenv("RAMPSHARE_METRICS_TEXTFILE"); textfile != "" {
		cfg.Metrics.Textfile = textfile
	}
}

func envInt(name string, dst *int) {
	raw := os.Getenv(name)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using default %d: %v", name, raw, *dst, err)
		return
	}
	if v < 0 {
		log.Printf("Warning: invalid %s value %q (must not be negative), using default %d", name, raw, *dst)
		return
	}
	*dst = v
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if _, err := ramp.ParseCoalition(c.Scheme.Coalition); err != nil {
		return err
	}

	if _, err := aead.Normalize(c.Envelope.Algorithm); err != nil {
		return err
	}
	mode, err := rand.ParseMode(c.Envelope.RNG)
	if err != nil {
		return err
	}
	if mode == rand.ModeReader {
		return fmt.Errorf("rng mode %q cannot be configured from a file", rand.ModeReader)
	}

	if err := validation.ValidateBackendName(c.Storage.Backend); err != nil {
		return fmt.Errorf("invalid storage backend: %w", err)
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path must be specified for the %s backend", BackendFile)
		}
	default:
		return fmt.Errorf("unknown storage backend: %s (must be %s or %s)", c.Storage.Backend, BackendMemory, BackendFile)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := logger.ValidateFormat(c.Logging.Format); err != nil {
		return err
	}

	return nil
}

// Params returns the validated scheme parameters.
func (c *Config) Params() (ramp.Params, error) {
	return ramp.NewParams(c.Scheme.N, c.Scheme.K, c.Scheme.M)
}

// Coalition returns the parsed coalition policy.
func (c *Config) Coalition() (ramp.Coalition, error) {
	return ramp.ParseCoalition(c.Scheme.Coalition)
}
