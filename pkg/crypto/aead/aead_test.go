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

package aead

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/cpu"
)

func TestHasAESNI(t *testing.T) {
	hasAES := HasAESNI()

	switch runtime.GOARCH {
	case "amd64":
		assert.Equal(t, cpu.X86.HasAES, hasAES)
	case "arm64":
		assert.Equal(t, cpu.ARM64.HasAES, hasAES)
	default:
		assert.False(t, hasAES, "unsupported architecture %s", runtime.GOARCH)
	}

	t.Logf("CPU architecture: %s, AES-NI support: %v", runtime.GOARCH, hasAES)
}

func TestSelectOptimal(t *testing.T) {
	if HasAESNI() {
		assert.Equal(t, AES256GCM, SelectOptimal())
	} else {
		assert.Equal(t, ChaCha20Poly1305, SelectOptimal())
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", AES256GCM},
		{"aes256-gcm", AES256GCM},
		{"A256GCM", AES256GCM},
		{" AES-256-GCM ", AES256GCM},
		{"chacha20-poly1305", ChaCha20Poly1305},
		{"ChaCha20Poly1305", ChaCha20Poly1305},
		{"auto", SelectOptimal()},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Normalize("aes128-cbc")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestNew_SealOpen(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	nonce := bytes.Repeat([]byte{0x07}, NonceSize)
	plaintext := []byte("ramp share envelope")

	for _, algorithm := range []string{AES256GCM, ChaCha20Poly1305} {
		t.Run(algorithm, func(t *testing.T) {
			c, err := New(algorithm, key)
			require.NoError(t, err)
			assert.Equal(t, NonceSize, c.NonceSize())
			assert.Equal(t, TagSize, c.Overhead())

			ciphertext := c.Seal(nil, nonce, plaintext, nil)
			assert.Len(t, ciphertext, len(plaintext)+TagSize)

			opened, err := c.Open(nil, nonce, ciphertext, nil)
			require.NoError(t, err)
			assert.Equal(t, plaintext, opened)

			ciphertext[0] ^= 0x01
			_, err = c.Open(nil, nonce, ciphertext, nil)
			assert.Error(t, err)
		})
	}
}

func TestNew_AlgorithmsAreDistinct(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, KeySize)
	nonce := make([]byte, NonceSize)

	gcm, err := New(AES256GCM, key)
	require.NoError(t, err)
	chacha, err := New(ChaCha20Poly1305, key)
	require.NoError(t, err)

	ciphertext := gcm.Seal(nil, nonce, []byte("message"), nil)
	_, err = chacha.Open(nil, nonce, ciphertext, nil)
	assert.Error(t, err)
}

func TestNew_Errors(t *testing.T) {
	_, err := New("des", make([]byte, KeySize))
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	for _, size := range []int{0, 16, 24, 31, 33} {
		_, err := New(AES256GCM, make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidKeySize, "size %d", size)
	}
}
