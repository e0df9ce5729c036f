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
	"math/bits"
)

const (
	// MaxParticipants is the largest supported N. Enumeration rows are
	// held in a uint64 and the loop bound is 1<<N.
	MaxParticipants = 63

	// MaxCombinations bounds C(N, K-1), the number of enumerated rows and
	// the bulk of every participant mask.
	MaxCombinations = 1 << 20
)

// Params holds the scheme parameters.
type Params struct {
	N int // participants
	K int // designated coalition size
	M int // mandatory participants
}

// NewParams validates and returns scheme parameters.
func NewParams(n, k, m int) (Params, error) {
	p := Params{N: n, K: k, M: m}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks 0 <= m < k < n and the supported size limits.
func (p Params) Validate() error {
	if p.M < 0 {
		return fmt.Errorf("%w: m must be >= 0, got %d", ErrInvalidParameters, p.M)
	}
	if p.M >= p.K {
		return fmt.Errorf("%w: m (%d) must be < k (%d)", ErrInvalidParameters, p.M, p.K)
	}
	if p.K >= p.N {
		return fmt.Errorf("%w: k (%d) must be < n (%d)", ErrInvalidParameters, p.K, p.N)
	}
	if p.N > MaxParticipants {
		return fmt.Errorf("%w: n must be <= %d, got %d", ErrInvalidParameters, MaxParticipants, p.N)
	}
	if c := Binomial(p.N, p.K-1); c > MaxCombinations {
		return fmt.Errorf("%w: C(%d, %d) = %d exceeds %d combinations",
			ErrInvalidParameters, p.N, p.K-1, c, MaxCombinations)
	}
	return nil
}

// Zeros returns the number of zero bits in every enumerated row (k-1).
func (p Params) Zeros() int {
	return p.K - 1
}

// Combinations returns C(n, k-1).
func (p Params) Combinations() int {
	return Binomial(p.N, p.K-1)
}

// MaskWidth returns the width of every participant mask, C(n, k-1) + m.
func (p Params) MaskWidth() int {
	return p.Combinations() + p.M
}

// String returns a compact representation such as "n=7 k=5 m=3".
func (p Params) String() string {
	return fmt.Sprintf("n=%d k=%d m=%d", p.N, p.K, p.M)
}

// Binomial returns C(n, r), or 0 when r is outside 0..n. Results that do
// not fit an int saturate at the largest int.
func Binomial(n, r int) int {
	if r < 0 || n < 0 || r > n {
		return 0
	}
	if r > n-r {
		r = n - r
	}
	const maxInt = uint64(^uint(0) >> 1)
	result := uint64(1)
	for i := 1; i <= r; i++ {
		// result*(n-r+i) is always divisible by i; the 128-bit product
		// keeps the intermediate exact.
		hi, lo := bits.Mul64(result, uint64(n-r+i))
		if hi >= uint64(i) {
			return int(maxInt)
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
		if result > maxInt {
			return int(maxInt)
		}
	}
	return int(result)
}
