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

package ramp

import (
	"fmt"
)

// Scheme holds the scheme-scoped artifacts derived from Params: the
// combination matrix, the mandatory block and the participant masks.
// They are built once by New and never modified, so a Scheme is safe for
// concurrent use. Per-secret artifacts are returned fresh by Split.
type Scheme struct {
	params       Params
	coalition    Coalition
	combinations Matrix
	mandatory    Matrix
	masks        []Bits
}

// Option configures a Scheme.
type Option func(*Scheme)

// WithCoalition selects the reconstruction coalition policy.
// The default is CoalitionLastK.
func WithCoalition(c Coalition) Option {
	return func(s *Scheme) {
		s.coalition = c
	}
}

// New builds a Scheme for validated parameters.
func New(p Params, opts ...Option) *Scheme {
	combinations := Combinations(p.N, p.Zeros())
	mandatory := MandatoryMask(p.N, p.M)
	s := &Scheme{
		params:       p,
		coalition:    CoalitionLastK,
		combinations: combinations,
		mandatory:    mandatory,
		masks:        ParticipantMasks(combinations, mandatory),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewScheme validates n, k and m and builds a Scheme.
func NewScheme(n, k, m int, opts ...Option) (*Scheme, error) {
	p, err := NewParams(n, k, m)
	if err != nil {
		return nil, err
	}
	return New(p, opts...), nil
}

// Params returns the scheme parameters.
func (s *Scheme) Params() Params {
	return s.params
}

// CoalitionPolicy returns the reconstruction policy.
func (s *Scheme) CoalitionPolicy() Coalition {
	return s.coalition
}

// Coalition returns the participant indices used by Reconstruct.
func (s *Scheme) Coalition() []int {
	return s.coalition.Members(s.params)
}

// Combinations returns a copy of the combination matrix.
func (s *Scheme) Combinations() Matrix {
	return s.combinations.Clone()
}

// MandatoryMask returns a copy of the mandatory block.
func (s *Scheme) MandatoryMask() Matrix {
	return s.mandatory.Clone()
}

// ParticipantMasks returns a copy of every participant mask.
func (s *Scheme) ParticipantMasks() []Bits {
	return Matrix(s.masks).Clone()
}

// ParticipantMask returns a copy of participant i's mask.
func (s *Scheme) ParticipantMask(i int) (Bits, error) {
	if i < 0 || i >= len(s.masks) {
		return nil, fmt.Errorf("%w: %d (n=%d)", ErrInvalidShareIndex, i, s.params.N)
	}
	return s.masks[i].Clone(), nil
}

// MaskWidth returns the width shared by every participant mask.
func (s *Scheme) MaskWidth() int {
	return len(s.combinations) + s.params.M
}

// Uncovered returns the mask positions at which no coalition member holds
// a 1. Secret bits that land on these positions, modulo the mask width,
// cannot be reconstructed.
func (s *Scheme) Uncovered() []int {
	var positions []int
	members := s.Coalition()
	for j := 0; j < s.MaskWidth(); j++ {
		covered := false
		for _, i := range members {
			if s.masks[i][j] == 1 {
				covered = true
				break
			}
		}
		if !covered {
			positions = append(positions, j)
		}
	}
	return positions
}

// Split masks secret into one share per participant.
func (s *Scheme) Split(secret []byte) ([]Share, error) {
	return s.SplitBits(BytesToBits(secret))
}

// SplitBits masks a bit sequence into one share per participant. The
// sequence must be byte aligned.
func (s *Scheme) SplitBits(secret Bits) ([]Share, error) {
	if len(secret)%8 != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrNotByteAligned, len(secret))
	}
	shares := make([]Share, len(s.masks))
	for i, mask := range s.masks {
		bits, err := MaskShare(RepeatMask(mask, len(secret)), secret)
		if err != nil {
			return nil, err
		}
		shares[i] = Share{Index: i, Bits: bits}
	}
	return shares, nil
}

// ReconstructBits selects the coalition members from shares and ORs their
// bits. Shares from participants outside the coalition are ignored.
func (s *Scheme) ReconstructBits(shares []Share) (Bits, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}
	byIndex := make(map[int]Bits, len(shares))
	for _, share := range shares {
		if share.Index < 0 || share.Index >= s.params.N {
			return nil, fmt.Errorf("%w: %d (n=%d)", ErrInvalidShareIndex, share.Index, s.params.N)
		}
		if _, exists := byIndex[share.Index]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateShare, share.Index)
		}
		byIndex[share.Index] = share.Bits
	}

	members := s.Coalition()
	selected := make([]Bits, 0, len(members))
	for _, i := range members {
		bits, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("%w: participant %d", ErrMissingShare, i)
		}
		selected = append(selected, bits)
	}
	return Combine(selected)
}

// Reconstruct recovers the secret bytes from the coalition's shares.
func (s *Scheme) Reconstruct(shares []Share) ([]byte, error) {
	bits, err := s.ReconstructBits(shares)
	if err != nil {
		return nil, err
	}
	return BitsToBytes(bits)
}
