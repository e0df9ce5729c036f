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

import "fmt"

// Share is one participant's masked copy of the secret.
type Share struct {
	Index int  // participant index, 0-based
	Bits  Bits // repeated mask AND secret bits
}

// MaskShare returns repeated AND secret, position by position. Neither
// input is modified.
func MaskShare(repeated, secret Bits) (Bits, error) {
	if len(repeated) != len(secret) {
		return nil, fmt.Errorf("%w: mask has %d bits, secret has %d",
			ErrLengthMismatch, len(repeated), len(secret))
	}
	share := make(Bits, len(secret))
	for j := range secret {
		share[j] = repeated[j] & secret[j]
	}
	return share, nil
}

// Combine ORs the given shares position by position.
func Combine(shares []Bits) (Bits, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}
	length := len(shares[0])
	out := make(Bits, length)
	for i, share := range shares {
		if len(share) != length {
			return nil, fmt.Errorf("%w: share %d has %d bits, expected %d",
				ErrLengthMismatch, i, len(share), length)
		}
		for j, bit := range share {
			out[j] |= bit
		}
	}
	return out, nil
}

// DesignatedCoalition returns the participant indices that reconstruct the
// secret: n-k through n-1.
func DesignatedCoalition(p Params) []int {
	if p.K <= 0 || p.K > p.N {
		return nil
	}
	members := make([]int, p.K)
	for i := range members {
		members[i] = p.N - p.K + i
	}
	return members
}
