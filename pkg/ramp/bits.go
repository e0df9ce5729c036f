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
	"strings"
)

// Bits is an ordered bit sequence. Each element is 0 or 1.
type Bits []byte

// Matrix is a sequence of bit rows.
type Matrix []Bits

// BytesToBits expands data into its bit sequence, most significant bit
// first, eight bits per byte.
func BytesToBits(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
	}
	return bits
}

// BitsToBytes packs a bit sequence into bytes, most significant bit first.
// The length must be a multiple of 8 and every element must be 0 or 1.
func BitsToBytes(bits Bits) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrNotByteAligned, len(bits))
	}
	data := make([]byte, len(bits)/8)
	for i, bit := range bits {
		if bit > 1 {
			return nil, fmt.Errorf("%w: value %d at position %d", ErrInvalidBit, bit, i)
		}
		data[i/8] |= bit << uint(7-i%8)
	}
	return data, nil
}

// Clone returns a copy of b.
func (b Bits) Clone() Bits {
	if b == nil {
		return nil
	}
	out := make(Bits, len(b))
	copy(out, b)
	return out
}

// Ones returns the number of set bits.
func (b Bits) Ones() int {
	count := 0
	for _, bit := range b {
		if bit != 0 {
			count++
		}
	}
	return count
}

// String renders the sequence as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = row.Clone()
	}
	return out
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the width of the first row, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Column returns column j read across all rows.
func (m Matrix) Column(j int) Bits {
	col := make(Bits, len(m))
	for i, row := range m {
		col[i] = row[j]
	}
	return col
}

// Transpose returns the transpose of a rectangular matrix.
func Transpose(m Matrix) Matrix {
	cols := m.Cols()
	out := make(Matrix, cols)
	for j := 0; j < cols; j++ {
		out[j] = m.Column(j)
	}
	return out
}
