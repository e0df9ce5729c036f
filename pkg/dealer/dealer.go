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

// Package dealer runs the end-to-end ramp sharing flow: a message is
// sealed in an envelope, the envelope bits are split into one share per
// participant, and the shares are wrapped in checksummed records and
// optionally persisted. Recovery reverses the flow over the designated
// coalition.
//
//	d, err := dealer.New(&dealer.Config{Params: p, Store: store})
//	set, err := d.Deal(ctx, "attack at dawn")
//	message, err := d.RecoverByID(ctx, set.ID)
package dealer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-rampshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-rampshare/pkg/envelope"
	"github.com/jeremyhahn/go-rampshare/pkg/metrics"
	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
	"github.com/jeremyhahn/go-rampshare/pkg/shares"
	"github.com/jeremyhahn/go-rampshare/pkg/storage"
)

// Config contains the dependencies of a Dealer.
type Config struct {
	// Params are the scheme parameters used by Deal (required).
	Params ramp.Params

	// Coalition is the reconstruction policy recorded with every dealt set.
	// The zero value is ramp.CoalitionMandatoryFirst, which reconstructs
	// every secret. ramp.CoalitionLastK fails Deal with ErrUnrecoverable
	// whenever m > 0 and the envelope is longer than C(n, k-1) bits.
	Coalition ramp.Coalition

	// Encoder seals and opens envelopes. Defaults to AES-256-GCM with the
	// software random source.
	Encoder *envelope.Encoder

	// Store persists dealt sets. Optional; without it Deal only returns the
	// set and RecoverByID fails with ErrNoStore.
	Store *shares.Store

	// Logger receives operation logs. Defaults to a no-op logger.
	Logger logger.Logger
}

// Dealer deals and recovers share sets. It is safe for concurrent use.
type Dealer struct {
	scheme  *ramp.Scheme
	encoder *envelope.Encoder
	store   *shares.Store
	logger  logger.Logger
}

// New creates a dealer.
func New(cfg *Config) (*Dealer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	encoder := cfg.Encoder
	if encoder == nil {
		var err error
		encoder, err = envelope.NewEncoder(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create envelope encoder: %w", err)
		}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoop()
	}

	return &Dealer{
		scheme:  ramp.New(cfg.Params, ramp.WithCoalition(cfg.Coalition)),
		encoder: encoder,
		store:   cfg.Store,
		logger:  log,
	}, nil
}

// Scheme returns the scheme used by Deal.
func (d *Dealer) Scheme() *ramp.Scheme {
	return d.scheme
}

// Store returns the configured share store, or nil.
func (d *Dealer) Store() *shares.Store {
	return d.store
}

// Deal seals message in an envelope, splits the envelope into one share
// per participant and returns the resulting set. The set is saved when a
// store is configured. Deal fails with ErrUnrecoverable rather than hand
// out shares the coalition could not combine back into the envelope.
func (d *Dealer) Deal(ctx context.Context, message string) (set *shares.Set, err error) {
	ctx, _ = logger.EnsureOperationID(ctx)
	log := logger.ForContext(ctx, d.logger)
	done := metrics.Track(metrics.OpDeal)
	defer func() {
		if err != nil {
			metrics.RecordError(metrics.OpDeal, errorType(err))
			log.Error("deal failed", logger.Error(err))
		}
		done(err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sealed, err := d.encode(message)
	if err != nil {
		return nil, err
	}
	secret := []byte(sealed)

	dealt, err := d.split(secret)
	if err != nil {
		return nil, err
	}

	recovered, err := d.scheme.Reconstruct(dealt)
	if err != nil {
		return nil, fmt.Errorf("failed to verify split: %w", err)
	}
	if !bytes.Equal(recovered, secret) {
		return nil, fmt.Errorf("%w: %s coalition %v leaves mask positions %v uncovered",
			ErrUnrecoverable, d.scheme.CoalitionPolicy(), d.scheme.Coalition(), d.scheme.Uncovered())
	}

	set, err = shares.NewSet("", d.scheme.Params(), d.scheme.CoalitionPolicy(), dealt)
	if err != nil {
		return nil, err
	}

	if d.store != nil {
		if err := d.save(set); err != nil {
			return nil, err
		}
	}

	for _, s := range dealt {
		log.Debug("dealt share", logger.SetID(set.ID), logger.Participant(s.Index), logger.Bits("share", len(s.Bits)))
	}
	log.Info("dealt share set",
		logger.SetID(set.ID),
		logger.String("params", d.scheme.Params().String()),
		logger.String("coalition", d.scheme.CoalitionPolicy().String()),
		logger.Bits("secret", len(secret)*8),
		logger.Int("mask_width", d.scheme.MaskWidth()),
		logger.Bool("stored", d.store != nil))
	return set, nil
}

// Recover verifies the records of set, reconstructs the envelope from the
// coalition recorded with the set and opens it. The set must hold at least
// the coalition's records; others are ignored.
func (d *Dealer) Recover(ctx context.Context, set *shares.Set) (message string, err error) {
	ctx, _ = logger.EnsureOperationID(ctx)
	log := logger.ForContext(ctx, d.logger)
	done := metrics.Track(metrics.OpRecover)
	defer func() {
		if err != nil {
			metrics.RecordError(metrics.OpRecover, errorType(err))
			log.Error("recover failed", logger.Error(err))
		}
		done(err)
	}()

	if set == nil {
		return "", fmt.Errorf("%w: nil set", shares.ErrSetNotFound)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := set.Params.Validate(); err != nil {
		return "", fmt.Errorf("set %q: %w", set.ID, err)
	}
	if err := set.Verify(); err != nil {
		return "", err
	}
	participants, err := set.Shares()
	if err != nil {
		return "", err
	}

	scheme := d.schemeFor(set)
	sealed, err := d.reconstruct(scheme, participants)
	if err != nil {
		return "", err
	}

	message, err = d.decode(string(sealed))
	if err != nil {
		return "", err
	}

	log.Info("recovered share set",
		logger.SetID(set.ID),
		logger.String("params", scheme.Params().String()),
		logger.Participants("coalition", scheme.Coalition()),
		logger.Bits("secret", len(sealed)*8))
	return message, nil
}

// RecoverByID loads the set from the store and recovers it.
func (d *Dealer) RecoverByID(ctx context.Context, id string) (string, error) {
	if d.store == nil {
		return "", ErrNoStore
	}
	set, err := d.load(id)
	if err != nil {
		ctx, _ = logger.EnsureOperationID(ctx)
		metrics.RecordError(metrics.OpRecover, errorType(err))
		logger.ForContext(ctx, d.logger).Error("failed to load share set",
			logger.SetID(id), logger.Error(err))
		return "", err
	}
	return d.Recover(ctx, set)
}

// schemeFor returns the dealer's scheme when set was dealt under the same
// parameters and policy, and a scheme built for the set otherwise. The
// set's parameters must already be validated.
func (d *Dealer) schemeFor(set *shares.Set) *ramp.Scheme {
	if set.Params == d.scheme.Params() && set.Coalition == d.scheme.CoalitionPolicy() {
		return d.scheme
	}
	return ramp.New(set.Params, ramp.WithCoalition(set.Coalition))
}

func (d *Dealer) encode(message string) (sealed string, err error) {
	done := metrics.Track(metrics.OpEncode)
	defer func() { done(err) }()
	return d.encoder.Encode(message)
}

func (d *Dealer) decode(sealed string) (message string, err error) {
	done := metrics.Track(metrics.OpDecode)
	defer func() { done(err) }()
	return d.encoder.Decode(sealed)
}

func (d *Dealer) split(secret []byte) (dealt []ramp.Share, err error) {
	done := metrics.Track(metrics.OpSplit)
	defer func() { done(err) }()
	dealt, err = d.scheme.Split(secret)
	if err != nil {
		return nil, err
	}
	metrics.SetShareBits(len(secret) * 8)
	metrics.SetMaskWidth(d.scheme.MaskWidth())
	return dealt, nil
}

func (d *Dealer) reconstruct(scheme *ramp.Scheme, participants []ramp.Share) (secret []byte, err error) {
	done := metrics.Track(metrics.OpReconstruct)
	defer func() { done(err) }()
	return scheme.Reconstruct(participants)
}

func (d *Dealer) save(set *shares.Set) (err error) {
	done := metrics.Track(metrics.OpStore)
	defer func() { done(err) }()
	return d.store.Save(set)
}

func (d *Dealer) load(id string) (set *shares.Set, err error) {
	done := metrics.Track(metrics.OpLoad)
	defer func() { done(err) }()
	return d.store.Load(id)
}

// errorType classifies err for the errors_total metric.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrUnrecoverable):
		return "unrecoverable"
	case errors.Is(err, envelope.ErrFormat):
		return "format"
	case errors.Is(err, envelope.ErrIntegrity):
		return "integrity"
	case errors.Is(err, envelope.ErrDecryption):
		return "decryption"
	case errors.Is(err, envelope.ErrRandom):
		return "random"
	case errors.Is(err, ramp.ErrInvalidParameters):
		return "parameters"
	case errors.Is(err, shares.ErrChecksumMismatch):
		return "checksum"
	case errors.Is(err, shares.ErrSetNotFound), errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, shares.ErrInvalidRecord), errors.Is(err, shares.ErrSetMismatch):
		return "invalid_record"
	case errors.Is(err, ramp.ErrMissingShare), errors.Is(err, ramp.ErrDuplicateShare),
		errors.Is(err, ramp.ErrInvalidShareIndex), errors.Is(err, ramp.ErrLengthMismatch):
		return "shares"
	case errors.Is(err, storage.ErrInvalidID), errors.Is(err, storage.ErrClosed):
		return "storage"
	default:
		return "internal"
	}
}
