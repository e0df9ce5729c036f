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

package envelope

import (
	"errors"

	"github.com/jeremyhahn/go-rampshare/pkg/crypto/aead"
)

var (
	// ErrFormat indicates a malformed envelope: wrong field count, a
	// non-numeric length tag, invalid base64, a wrong key size, a
	// ciphertext too short for its nonce, a plaintext too short for its
	// hash, or a message that is not UTF-8.
	ErrFormat = errors.New("envelope: invalid format")

	// ErrIntegrity indicates a length tag or hash mismatch.
	ErrIntegrity = errors.New("envelope: integrity check failed")

	// ErrDecryption indicates AEAD authentication failure.
	ErrDecryption = errors.New("envelope: decryption failed")

	// ErrUnsupportedAlgorithm is returned for an unknown AEAD algorithm.
	ErrUnsupportedAlgorithm = aead.ErrUnsupportedAlgorithm

	// ErrRandom is returned when the random source fails.
	ErrRandom = errors.New("envelope: random source failed")
)
