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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandatoryMask(t *testing.T) {
	mask := MandatoryMask(7, 3)
	require.Len(t, mask, 7)

	for i, row := range mask {
		require.Len(t, row, 3)
		for j, bit := range row {
			want := byte(0)
			if i < 3 && i == j {
				want = 1
			}
			assert.Equal(t, want, bit, "row %d col %d", i, j)
		}
	}
}

func TestMandatoryMask_NoMandatoryParticipants(t *testing.T) {
	mask := MandatoryMask(4, 0)
	require.Len(t, mask, 4)
	for _, row := range mask {
		assert.Empty(t, row)
	}
}

func TestParticipantMasks_Width(t *testing.T) {
	tests := []struct {
		n, k, m int
	}{
		{7, 5, 3},
		{4, 2, 1},
		{5, 3, 0},
		{10, 4, 2},
	}

	for _, tt := range tests {
		p, err := NewParams(tt.n, tt.k, tt.m)
		require.NoError(t, err)

		combinations := Combinations(p.N, p.Zeros())
		masks := ParticipantMasks(combinations, MandatoryMask(p.N, p.M))
		require.Len(t, masks, p.N)

		for i, mask := range masks {
			assert.Len(t, mask, p.MaskWidth(), "%s participant %d", p, i)
		}
	}
}

func TestParticipantMasks_Layout(t *testing.T) {
	combinations := Combinations(7, 4)
	mandatory := MandatoryMask(7, 3)
	masks := ParticipantMasks(combinations, mandatory)

	for i, mask := range masks {
		for r := range combinations {
			assert.Equal(t, combinations[r][i], mask[r], "participant %d row %d", i, r)
		}
		assert.Equal(t, mandatory[i], mask[len(combinations):], "participant %d mandatory tail", i)
	}

	// Participant 6 is the least significant column: rows 0000111 and
	// 0001011 both end in 1.
	assert.Equal(t, byte(1), masks[6][0])
	assert.Equal(t, byte(1), masks[6][1])
	// Participant 0 only appears in rows starting with 1.
	assert.Equal(t, byte(0), masks[0][0])
	assert.Equal(t, byte(1), masks[0][34])
}

func TestRepeatMask(t *testing.T) {
	mask := Bits{1, 0, 1}

	tests := []struct {
		name   string
		length int
		want   Bits
	}{
		{"zero length", 0, Bits{}},
		{"negative length", -4, Bits{}},
		{"prefix only", 2, Bits{1, 0}},
		{"exact width", 3, Bits{1, 0, 1}},
		{"exact multiple", 6, Bits{1, 0, 1, 1, 0, 1}},
		{"partial tail", 8, Bits{1, 0, 1, 1, 0, 1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepeatMask(mask, tt.length))
		})
	}
}

func TestRepeatMask_Periodic(t *testing.T) {
	scheme, err := NewScheme(7, 5, 3)
	require.NoError(t, err)

	width := scheme.MaskWidth()
	for _, length := range []int{0, 8, 16, 37, 38, 39, 76, 800} {
		for i := 0; i < scheme.Params().N; i++ {
			mask, err := scheme.ParticipantMask(i)
			require.NoError(t, err)

			repeated := RepeatMask(mask, length)
			require.Len(t, repeated, length)
			for j := range repeated {
				require.Equal(t, mask[j%width], repeated[j])
			}
		}
	}
}

func TestRepeatMask_EmptyMask(t *testing.T) {
	assert.Equal(t, Bits{0, 0, 0}, RepeatMask(nil, 3))
}

func TestRepeatMask_DoesNotAliasMask(t *testing.T) {
	mask := Bits{1, 1}
	repeated := RepeatMask(mask, 4)
	repeated[0] = 0
	assert.Equal(t, Bits{1, 1}, mask)
}
