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

package shares

import (
	"encoding/json"
	"testing"

	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShares(t *testing.T, coalition ramp.Coalition, secret string) (*ramp.Scheme, []ramp.Share) {
	t.Helper()
	scheme, err := ramp.NewScheme(7, 5, 3, ramp.WithCoalition(coalition))
	require.NoError(t, err)
	shares, err := scheme.Split([]byte(secret))
	require.NoError(t, err)
	return scheme, shares
}

func TestFromShare_RoundTrip(t *testing.T) {
	scheme, shares := testShares(t, ramp.CoalitionMandatoryFirst, "AB")

	r, err := FromShare("set-1", scheme.Params(), scheme.CoalitionPolicy(), shares[2])
	require.NoError(t, err)

	assert.Equal(t, "set-1", r.SetID)
	assert.Equal(t, 2, r.Index)
	assert.Equal(t, 7, r.N)
	assert.Equal(t, 5, r.K)
	assert.Equal(t, 3, r.M)
	assert.Equal(t, "mandatory-first", r.Coalition)
	assert.Equal(t, 16, r.Length)
	assert.Len(t, r.Checksum, 64)
	require.NoError(t, r.Verify())

	share, err := r.Share()
	require.NoError(t, err)
	assert.Equal(t, shares[2], share)
}

func TestRecord_JSON(t *testing.T) {
	scheme, shares := testShares(t, ramp.CoalitionLastK, "hello")
	r, err := FromShare("set-1", scheme.Params(), scheme.CoalitionPolicy(), shares[0])
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	for _, field := range []string{`"set_id"`, `"index"`, `"n"`, `"k"`, `"m"`, `"coalition"`, `"length"`, `"value"`, `"checksum"`} {
		assert.Contains(t, string(data), field)
	}

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *r, decoded)
	assert.NoError(t, decoded.Verify())
}

func TestRecord_Verify_DetectsTampering(t *testing.T) {
	scheme, shares := testShares(t, ramp.CoalitionLastK, "tamper")

	tests := []struct {
		name   string
		mutate func(r *Record)
		want   error
	}{
		{"value changed", func(r *Record) { r.Value = flipFirst(r.Value) }, ErrChecksumMismatch},
		{"index moved", func(r *Record) { r.Index = 1 }, ErrChecksumMismatch},
		{"set changed", func(r *Record) { r.SetID = "other" }, ErrChecksumMismatch},
		{"threshold lowered", func(r *Record) { r.K = 4 }, ErrChecksumMismatch},
		{"participants added", func(r *Record) { r.N = 8 }, ErrChecksumMismatch},
		{"mandatory dropped", func(r *Record) { r.M = 2 }, ErrChecksumMismatch},
		{"coalition swapped", func(r *Record) { r.Coalition = "mandatory-first" }, ErrChecksumMismatch},
		{"coalition and threshold", func(r *Record) {
			r.Coalition = "mandatory-first"
			r.K = 4
		}, ErrChecksumMismatch},
		{"length shortened", func(r *Record) { r.Length -= 8 }, ErrChecksumMismatch},
		{"checksum truncated", func(r *Record) { r.Checksum = r.Checksum[:10] }, ErrInvalidRecord},
		{"index out of range", func(r *Record) { r.Index = 7 }, ErrInvalidRecord},
		{"bad params", func(r *Record) { r.K = 7 }, ErrInvalidRecord},
		{"empty set", func(r *Record) { r.SetID = "" }, ErrInvalidRecord},
		{"odd length", func(r *Record) { r.Length = 13 }, ErrInvalidRecord},
		{"unknown coalition", func(r *Record) { r.Coalition = "anyone" }, ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromShare("set-1", scheme.Params(), scheme.CoalitionPolicy(), shares[0])
			require.NoError(t, err)
			tt.mutate(r)

			assert.ErrorIs(t, r.Verify(), tt.want)
			_, err = r.Share()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecord_Share_LengthMismatch(t *testing.T) {
	scheme, shares := testShares(t, ramp.CoalitionLastK, "abcd")
	r, err := FromShare("set-1", scheme.Params(), scheme.CoalitionPolicy(), shares[0])
	require.NoError(t, err)

	r.Length = 16
	r.Checksum = r.computeChecksum()
	_, err = r.Share()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestFromShare_NotByteAligned(t *testing.T) {
	p, err := ramp.NewParams(5, 3, 1)
	require.NoError(t, err)

	_, err = FromShare("set-1", p, ramp.CoalitionLastK, ramp.Share{Index: 0, Bits: ramp.Bits{1, 0, 1}})
	assert.ErrorIs(t, err, ramp.ErrNotByteAligned)
}

func TestRecord_String(t *testing.T) {
	scheme, shares := testShares(t, ramp.CoalitionLastK, "AB")
	r, err := FromShare("set-1", scheme.Params(), scheme.CoalitionPolicy(), shares[4])
	require.NoError(t, err)

	s := r.String()
	assert.Contains(t, s, "Index: 4")
	assert.NotContains(t, s, r.Value)
}

func flipFirst(s string) string {
	if s[0] == 'A' {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}
