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

// Package rand provides the random number sources used for envelope keys
// and nonces.
//
// Applications create a Resolver at startup and reuse it:
//
//	rng, _ := rand.NewResolver(rand.ModeSoftware)
//	key, _ := rng.Rand(32)
//
// A Resolver also implements io.Reader, so it can be passed anywhere
// crypto/rand.Reader is expected.
//
// The reader mode wraps a caller-supplied io.Reader. It exists for tests
// that need reproducible keys and nonces and must never be used in
// production.
//
// All Resolver implementations are safe for concurrent use.
package rand

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Mode specifies which RNG source to use.
type Mode string

const (
	// ModeAuto selects the best available source. Only the software
	// source is compiled in, so auto resolves to software.
	ModeAuto Mode = "auto"

	// ModeSoftware uses crypto/rand (stdlib secure random)
	ModeSoftware Mode = "software"

	// ModeReader reads from Config.Reader
	ModeReader Mode = "reader"
)

var (
	// ErrUnknownMode is returned for an unrecognized Mode.
	ErrUnknownMode = errors.New("rand: unknown RNG mode")

	// ErrNoReader is returned when ModeReader is selected without a reader.
	ErrNoReader = errors.New("rand: reader mode requires a reader")

	// ErrClosed is returned by a closed resolver.
	ErrClosed = errors.New("rand: resolver closed")
)

// Config contains RNG configuration.
type Config struct {
	// Mode specifies the RNG source to use.
	// Defaults to ModeAuto if not specified.
	Mode Mode

	// Reader is the byte source for ModeReader.
	Reader io.Reader
}

// Resolver provides the main interface for generating random numbers.
type Resolver interface {
	// Rand returns n random bytes from the configured RNG source.
	Rand(n int) ([]byte, error)

	// Read implements io.Reader.
	Read(p []byte) (n int, err error)

	// Available returns true if the source is ready.
	Available() bool

	// Close releases any resources.
	Close() error
}

// NewResolver creates a resolver. config may be nil, a Mode or a *Config.
// A nil or empty config selects auto mode.
func NewResolver(config interface{}) (Resolver, error) {
	cfg := normalizeConfig(config)
	return newResolver(cfg, cfg.Mode)
}

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeSoftware, ModeReader:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}
}

func normalizeConfig(config interface{}) *Config {
	switch v := config.(type) {
	case Mode:
		if v == "" {
			v = ModeAuto
		}
		return &Config{Mode: v}
	case *Config:
		if v == nil {
			return &Config{Mode: ModeAuto}
		}
		cfg := *v
		if cfg.Mode == "" {
			cfg.Mode = ModeAuto
		}
		return &cfg
	default:
		return &Config{Mode: ModeAuto}
	}
}

func newResolver(cfg *Config, mode Mode) (Resolver, error) {
	switch mode {
	case ModeAuto, ModeSoftware:
		return &SoftwareResolver{}, nil
	case ModeReader:
		if cfg.Reader == nil {
			return nil, ErrNoReader
		}
		return NewReaderResolver(cfg.Reader), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// SoftwareResolver uses crypto/rand from the Go standard library.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

// Read implements io.Reader for compatibility with crypto/rand.Reader.
func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Available() bool {
	return true
}

func (s *SoftwareResolver) Close() error {
	return nil
}

// ReaderResolver draws bytes from an arbitrary io.Reader.
type ReaderResolver struct {
	r      io.Reader
	closed bool
	mu     sync.Mutex
}

var _ Resolver = (*ReaderResolver)(nil)

// NewReaderResolver wraps r. Short reads are reported as errors.
func NewReaderResolver(r io.Reader) *ReaderResolver {
	return &ReaderResolver{r: r}
}

func (rr *ReaderResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rr.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (rr *ReaderResolver) Read(p []byte) (int, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if rr.closed {
		return 0, ErrClosed
	}
	n, err := io.ReadFull(rr.r, p)
	if err != nil {
		return n, fmt.Errorf("rand: read %d of %d bytes: %w", n, len(p), err)
	}
	return n, nil
}

func (rr *ReaderResolver) Available() bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return !rr.closed
}

func (rr *ReaderResolver) Close() error {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.closed = true
	return nil
}
