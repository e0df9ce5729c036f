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

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-rampshare/internal/config"
	"github.com/jeremyhahn/go-rampshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-rampshare/pkg/crypto/aead"
	"github.com/jeremyhahn/go-rampshare/pkg/crypto/rand"
	"github.com/jeremyhahn/go-rampshare/pkg/dealer"
	"github.com/jeremyhahn/go-rampshare/pkg/envelope"
	"github.com/jeremyhahn/go-rampshare/pkg/metrics"
	"github.com/jeremyhahn/go-rampshare/pkg/shares"
	"github.com/jeremyhahn/go-rampshare/pkg/storage"
	"github.com/jeremyhahn/go-rampshare/pkg/storage/file"
	"github.com/jeremyhahn/go-rampshare/pkg/storage/memory"
)

// EnvPrefix is the prefix of environment variables read by the CLI.
const EnvPrefix = "RAMPSHARE"

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose enables verbose logging
	Verbose bool

	// Settings is the resolved configuration: defaults, then the config
	// file, then RAMPSHARE_* variables, then command-line flags.
	Settings *config.Config

	// Stderr receives logs. Defaults to os.Stderr.
	Stderr io.Writer
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: string(OutputFormatText),
		Settings:     config.Default(),
		Stderr:       os.Stderr,
	}
}

// Load resolves the settings for cmd. Flags are bound into a viper
// instance so that a changed flag overrides the file and environment.
func (c *Config) Load(cmd *cobra.Command) error {
	c.Stderr = cmd.ErrOrStderr()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"config", "output", "verbose"} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	c.ConfigFile = v.GetString("config")
	c.OutputFormat = v.GetString("output")
	c.Verbose = v.GetBool("verbose")

	if err := ValidateOutputFormat(c.OutputFormat); err != nil {
		return err
	}

	settings, err := config.Read(c.ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(v, settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.Settings = settings

	if settings.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}
	return nil
}

// applyFlagOverrides copies changed flags into settings.
func applyFlagOverrides(v *viper.Viper, settings *config.Config) {
	if v.IsSet("n") {
		settings.Scheme.N = v.GetInt("n")
	}
	if v.IsSet("k") {
		settings.Scheme.K = v.GetInt("k")
	}
	if v.IsSet("m") {
		settings.Scheme.M = v.GetInt("m")
	}
	if v.IsSet("coalition") {
		settings.Scheme.Coalition = v.GetString("coalition")
	}
	if v.IsSet("storage") {
		settings.Storage.Backend = v.GetString("storage")
	}
	if v.IsSet("path") {
		settings.Storage.Path = v.GetString("path")
	}
	if v.IsSet("algorithm") {
		settings.Envelope.Algorithm = v.GetString("algorithm")
	}
	if v.GetBool("verbose") {
		settings.Logging.Level = logger.LevelDebug.String()
	}
}

// CreateLogger creates the slog-backed logger described by the settings.
func (c *Config) CreateLogger() (logger.Logger, error) {
	level, err := logger.ParseLevel(c.Settings.Logging.Level)
	if err != nil {
		return nil, err
	}
	out := c.Stderr
	if out == nil {
		out = os.Stderr
	}
	return logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  level,
		Format: c.Settings.Logging.Format,
		Output: out,
	}), nil
}

// CreateBackend creates a storage backend based on the configuration
func (c *Config) CreateBackend() (storage.Backend, error) {
	switch c.Settings.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		backend, err := file.New(c.Settings.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage backend: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", c.Settings.Storage.Backend)
	}
}

// CreateStore wraps a new storage backend in a share store. The caller
// closes the backend.
func (c *Config) CreateStore() (*shares.Store, error) {
	backend, err := c.CreateBackend()
	if err != nil {
		return nil, err
	}
	return shares.NewStore(backend), nil
}

// CreateEncoder creates the envelope encoder described by the settings.
func (c *Config) CreateEncoder() (*envelope.Encoder, error) {
	mode, err := rand.ParseMode(c.Settings.Envelope.RNG)
	if err != nil {
		return nil, err
	}
	random, err := rand.NewResolver(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create random source: %w", err)
	}
	return envelope.NewEncoder(&envelope.Config{
		Algorithm:    c.Settings.Envelope.Algorithm,
		Random:       random,
		NonceTracker: aead.NewNonceTracker(true),
	})
}

// CreateDealer creates a dealer over store.
func (c *Config) CreateDealer(store *shares.Store, log logger.Logger) (*dealer.Dealer, error) {
	params, err := c.Settings.Params()
	if err != nil {
		return nil, err
	}
	coalition, err := c.Settings.Coalition()
	if err != nil {
		return nil, err
	}
	encoder, err := c.CreateEncoder()
	if err != nil {
		return nil, err
	}
	return dealer.New(&dealer.Config{
		Params:    params,
		Coalition: coalition,
		Encoder:   encoder,
		Store:     store,
		Logger:    log,
	})
}
