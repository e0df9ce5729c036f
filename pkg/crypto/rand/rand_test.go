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

package rand

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_Modes(t *testing.T) {
	tests := []struct {
		name   string
		config interface{}
	}{
		{"nil config", nil},
		{"auto mode", ModeAuto},
		{"software mode", ModeSoftware},
		{"empty config", &Config{}},
		{"software config", &Config{Mode: ModeSoftware}},
		{"reader config", &Config{Mode: ModeReader, Reader: bytes.NewReader(make([]byte, 8))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := NewResolver(tt.config)
			require.NoError(t, err)
			defer func() { _ = resolver.Close() }()

			assert.True(t, resolver.Available())
		})
	}
}

func TestNewResolver_Errors(t *testing.T) {
	_, err := NewResolver(&Config{Mode: "invalid"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = NewResolver(ModeReader)
	assert.ErrorIs(t, err, ErrNoReader)
}

func TestNewResolver_DoesNotMutateConfig(t *testing.T) {
	cfg := &Config{}
	_, err := NewResolver(cfg)
	require.NoError(t, err)
	assert.Equal(t, Mode(""), cfg.Mode)
}

func TestSoftwareResolver_Rand(t *testing.T) {
	resolver, err := NewResolver(ModeSoftware)
	require.NoError(t, err)
	defer func() { _ = resolver.Close() }()

	for _, size := range []int{0, 1, 12, 32, 64, 1024} {
		result, err := resolver.Rand(size)
		require.NoError(t, err)
		assert.Len(t, result, size)
	}

	buf1, _ := resolver.Rand(32)
	buf2, _ := resolver.Rand(32)
	assert.False(t, bytes.Equal(buf1, buf2), "consecutive random buffers should not be equal")
}

func TestSoftwareResolver_Read(t *testing.T) {
	resolver := &SoftwareResolver{}
	buf := make([]byte, 16)
	n, err := io.ReadFull(resolver, buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
}

func TestReaderResolver(t *testing.T) {
	source := bytes.Repeat([]byte{0xAB}, 40)
	resolver := NewReaderResolver(bytes.NewReader(source))

	key, err := resolver.Rand(32)
	require.NoError(t, err)
	assert.Equal(t, source[:32], key)

	_, err = resolver.Rand(16)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	require.NoError(t, resolver.Close())
	assert.False(t, resolver.Available())
	_, err = resolver.Rand(1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"software": ModeSoftware,
		"reader":   ModeReader,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("tpm2")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
