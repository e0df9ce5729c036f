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

// NextCombination returns the smallest integer greater than x with the same
// number of set bits. It isolates the lowest set bit, carries it into the
// run of ones above it, and moves the remaining ones of that run back to
// the bottom. NextCombination(0) is 0.
func NextCombination(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	c := x & -x
	r := x + c
	return (((r ^ x) >> 2) / c) | r
}

// Combinations enumerates every n-bit pattern with exactly zeros zero bits,
// in strictly increasing order when rows are read as big-endian integers.
// It returns C(n, zeros) rows of width n. Callers are expected to pass
// validated sizes (see Params.Validate); out-of-range input yields nil.
func Combinations(n, zeros int) Matrix {
	if n <= 0 || n > MaxParticipants || zeros < 0 || zeros > n {
		return nil
	}
	ones := n - zeros
	limit := uint64(1) << uint(n)

	rows := make(Matrix, 0, Binomial(n, zeros))
	if ones == 0 {
		return append(rows, make(Bits, n))
	}
	for x := uint64(1)<<uint(ones) - 1; x < limit; x = NextCombination(x) {
		rows = append(rows, rowBits(x, n))
	}
	return rows
}

// rowBits renders x as n bits, most significant first.
func rowBits(x uint64, n int) Bits {
	row := make(Bits, n)
	for i := 0; i < n; i++ {
		row[i] = byte(x>>uint(n-1-i)) & 1
	}
	return row
}
