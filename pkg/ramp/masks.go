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

// MandatoryMask returns the n x m mandatory block. Rows 0..m-1 form the
// identity, so mandatory participant i owns column i. Rows m..n-1 are zero.
func MandatoryMask(n, m int) Matrix {
	if n < 0 {
		n = 0
	}
	if m < 0 {
		m = 0
	}
	mask := make(Matrix, n)
	for i := range mask {
		mask[i] = make(Bits, m)
		if i < m {
			mask[i][i] = 1
		}
	}
	return mask
}

// ParticipantMasks builds one access mask per participant. The combination
// matrix (C(n,k-1) x n) is transposed to n x C(n,k-1) and each row is
// extended with the matching row of the mandatory block (n x m). The number
// of participants is taken from the mandatory block.
func ParticipantMasks(combinations, mandatory Matrix) []Bits {
	columns := Transpose(combinations)
	width := len(combinations) + mandatory.Cols()

	masks := make([]Bits, len(mandatory))
	for i := range masks {
		mask := make(Bits, 0, width)
		if i < len(columns) {
			mask = append(mask, columns[i]...)
		} else {
			mask = append(mask, make(Bits, len(combinations))...)
		}
		masks[i] = append(mask, mandatory[i]...)
	}
	return masks
}

// RepeatMask tiles mask to exactly length elements: length/len(mask) full
// copies followed by the first length%len(mask) elements. A non-positive
// length yields an empty sequence and an empty mask yields zeros.
func RepeatMask(mask Bits, length int) Bits {
	if length <= 0 {
		return Bits{}
	}
	out := make(Bits, length)
	if len(mask) == 0 {
		return out
	}
	for j := 0; j < length; j += len(mask) {
		copy(out[j:], mask)
	}
	return out
}
