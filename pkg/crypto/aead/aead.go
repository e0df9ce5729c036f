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

// Package aead provides the AEAD ciphers used by the secret envelope.
//
// Two ciphers are supported, both with 256-bit keys, 96-bit nonces and
// 128-bit authentication tags:
//
//   - AES-256-GCM: the default. Fast on CPUs with AES-NI.
//   - ChaCha20-Poly1305: constant-time in software, preferred on CPUs
//     without AES acceleration.
//
// SelectOptimal picks between them based on the CPU:
//
//	algorithm := aead.SelectOptimal()
//	cipher, err := aead.New(algorithm, key)
//	if err != nil {
//	    return err
//	}
//	ciphertext := cipher.Seal(nil, nonce, plaintext, nil)
//
// Both peers of an envelope must use the same algorithm; the envelope
// format does not record it.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/sys/cpu"
)

// Algorithm names
const (
	// AES256GCM is AES-256 in Galois/Counter Mode
	AES256GCM = "aes256-gcm"

	// ChaCha20Poly1305 is the IETF ChaCha20-Poly1305 construction (RFC 8439)
	ChaCha20Poly1305 = "chacha20-poly1305"
)

const (
	// KeySize is the key length in bytes for every supported algorithm.
	KeySize = 32

	// NonceSize is the nonce length in bytes for every supported algorithm.
	NonceSize = 12

	// TagSize is the authentication tag length in bytes.
	TagSize = 16
)

// HasAESNI returns true if the CPU has hardware AES support.
//
// Supported architectures:
//   - amd64: Checks X86.HasAES
//   - arm64: Checks ARM64.HasAES
//   - Other architectures return false
func HasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	default:
		return false
	}
}

// SelectOptimal returns AES256GCM when the CPU accelerates AES and
// ChaCha20Poly1305 otherwise.
func SelectOptimal() string {
	if HasAESNI() {
		return AES256GCM
	}
	return ChaCha20Poly1305
}

// Normalize maps accepted spellings to the canonical algorithm name.
// The empty string selects AES256GCM.
func Normalize(algorithm string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AES256GCM, "a256gcm", "aes-256-gcm":
		return AES256GCM, nil
	case ChaCha20Poly1305, "chacha20poly1305":
		return ChaCha20Poly1305, nil
	case "auto":
		return SelectOptimal(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// New returns a cipher.AEAD for the named algorithm. The key must be
// exactly KeySize bytes.
func New(algorithm string, key []byte) (cipher.AEAD, error) {
	name, err := Normalize(algorithm)
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d bytes (must be %d bytes)", ErrInvalidKeySize, len(key), KeySize)
	}

	switch name {
	case ChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
		}
		return aead, nil
	default:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return aead, nil
	}
}
