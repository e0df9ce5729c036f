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

// Package shares persists ramp shares as self-describing JSON records.
//
// A Record carries one participant's share bits together with the scheme
// parameters and a SHA-256 checksum, so a set of records can be verified
// and recombined without any other state. A Set groups the records dealt
// from one secret under a random UUID.
package shares

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
)

// Record is one participant's share in its stored form.
type Record struct {
	// SetID identifies the set the record was dealt in
	SetID string `json:"set_id"`

	// Index is the 0-based participant index
	Index int `json:"index"`

	// N is the number of participants
	N int `json:"n"`

	// K is the designated coalition size
	K int `json:"k"`

	// M is the number of mandatory participants
	M int `json:"m"`

	// Coalition is the reconstruction policy the set was dealt under
	Coalition string `json:"coalition,omitempty"`

	// Length is the share length in bits
	Length int `json:"length"`

	// Value is the share bits packed 8 per byte, MSB first, base64 encoded
	Value string `json:"value"`

	// Checksum is the hex SHA-256 over every other field
	Checksum string `json:"checksum"`
}

// FromShare builds a checksummed record for share.
func FromShare(setID string, p ramp.Params, coalition ramp.Coalition, share ramp.Share) (*Record, error) {
	packed, err := ramp.BitsToBytes(share.Bits)
	if err != nil {
		return nil, fmt.Errorf("failed to pack share %d: %w", share.Index, err)
	}

	r := &Record{
		SetID:     setID,
		Index:     share.Index,
		N:         p.N,
		K:         p.K,
		M:         p.M,
		Coalition: coalition.String(),
		Length:    len(share.Bits),
		Value:     base64.StdEncoding.EncodeToString(packed),
	}
	r.Checksum = r.computeChecksum()

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Params returns the scheme parameters recorded in r.
func (r *Record) Params() (ramp.Params, error) {
	return ramp.NewParams(r.N, r.K, r.M)
}

// CoalitionPolicy returns the recorded reconstruction policy.
func (r *Record) CoalitionPolicy() (ramp.Coalition, error) {
	return ramp.ParseCoalition(r.Coalition)
}

// Validate checks that the record fields are mutually consistent.
func (r *Record) Validate() error {
	if r.SetID == "" {
		return fmt.Errorf("%w: set id is empty", ErrInvalidRecord)
	}
	p, err := r.Params()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if r.Index < 0 || r.Index >= p.N {
		return fmt.Errorf("%w: index %d (must be in [0,%d))", ErrInvalidRecord, r.Index, p.N)
	}
	if _, err := r.CoalitionPolicy(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if r.Length < 0 || r.Length%8 != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 8", ErrInvalidRecord, r.Length)
	}
	if base64.StdEncoding.DecodedLen(len(r.Value)) < r.Length/8 {
		return fmt.Errorf("%w: value shorter than %d bits", ErrInvalidRecord, r.Length)
	}
	if len(r.Checksum) != hex.EncodedLen(sha256.Size) {
		return fmt.Errorf("%w: checksum is not a hex SHA-256 digest", ErrInvalidRecord)
	}
	return nil
}

// Verify validates r and recomputes its checksum.
func (r *Record) Verify() error {
	if err := r.Validate(); err != nil {
		return err
	}
	expected := r.computeChecksum()
	if subtle.ConstantTimeCompare([]byte(expected), []byte(r.Checksum)) != 1 {
		return fmt.Errorf("%w: set %s share %d", ErrChecksumMismatch, r.SetID, r.Index)
	}
	return nil
}

// Share decodes the record back into a ramp.Share. The record is verified
// first.
func (r *Record) Share() (ramp.Share, error) {
	if err := r.Verify(); err != nil {
		return ramp.Share{}, err
	}
	packed, err := base64.StdEncoding.DecodeString(r.Value)
	if err != nil {
		return ramp.Share{}, fmt.Errorf("%w: value: %v", ErrInvalidRecord, err)
	}
	if len(packed)*8 != r.Length {
		return ramp.Share{}, fmt.Errorf("%w: value is %d bits, want %d", ErrInvalidRecord, len(packed)*8, r.Length)
	}
	return ramp.Share{Index: r.Index, Bits: ramp.BytesToBits(packed)}, nil
}

// String returns a short description of the record without share bits.
func (r *Record) String() string {
	return fmt.Sprintf("Record{Set: %s, Index: %d, Params: n=%d k=%d m=%d, Bits: %d}",
		r.SetID, r.Index, r.N, r.K, r.M, r.Length)
}

// computeChecksum hashes every field except Checksum, each followed by a
// zero byte so adjacent fields cannot shift into one another.
func (r *Record) computeChecksum() string {
	h := sha256.New()
	for _, field := range []string{
		r.SetID,
		strconv.Itoa(r.Index),
		strconv.Itoa(r.N),
		strconv.Itoa(r.K),
		strconv.Itoa(r.M),
		r.Coalition,
		strconv.Itoa(r.Length),
		r.Value,
	} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
