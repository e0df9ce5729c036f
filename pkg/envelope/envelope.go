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

// Package envelope wraps a message in the self-describing text form fed
// to the ramp mask engine.
//
// An envelope has the form
//
//	<L>:<K_b64>:<E_b64>
//
// where K is a fresh 256-bit key, E is a 96-bit nonce followed by the AEAD
// ciphertext of SHA-256(message) || message, both fields are standard
// padded base64, and L is the decimal length of K_b64 plus E_b64.
//
// The envelope carries its own key, so it provides no confidentiality by
// itself. Confidentiality comes from splitting it: a coalition that cannot
// reconstruct every bit cannot recover K, and a corrupted reconstruction
// fails the tag, hash or length checks instead of yielding a wrong message.
package envelope

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jeremyhahn/go-rampshare/pkg/crypto/aead"
	"github.com/jeremyhahn/go-rampshare/pkg/crypto/rand"
)

const (
	// KeySize is the envelope key length in bytes.
	KeySize = aead.KeySize

	// NonceSize is the envelope nonce length in bytes.
	NonceSize = aead.NonceSize

	// HashSize is the length of the SHA-256 digest prefixed to the message.
	HashSize = sha256.Size

	separator = ":"
)

// encoding rejects non-canonical trailing bits, so every envelope has
// exactly one accepted spelling.
var encoding = base64.StdEncoding.Strict()

// Config configures an Encoder.
type Config struct {
	// Algorithm is the AEAD algorithm. Defaults to aead.AES256GCM.
	Algorithm string

	// Random supplies keys and nonces. Defaults to the software resolver.
	Random rand.Resolver

	// NonceTracker, if set, rejects repeated nonces from Random.
	NonceTracker *aead.NonceTracker
}

// Encoder builds and opens envelopes. It is safe for concurrent use when
// its Random resolver is.
type Encoder struct {
	algorithm string
	random    rand.Resolver
	tracker   *aead.NonceTracker
}

// NewEncoder creates an encoder. A nil config selects AES-256-GCM with the
// software random source.
func NewEncoder(cfg *Config) (*Encoder, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	algorithm, err := aead.Normalize(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	random := cfg.Random
	if random == nil {
		random, err = rand.NewResolver(rand.ModeSoftware)
		if err != nil {
			return nil, fmt.Errorf("failed to create random source: %w", err)
		}
	}

	return &Encoder{
		algorithm: algorithm,
		random:    random,
		tracker:   cfg.NonceTracker,
	}, nil
}

// Algorithm returns the canonical AEAD algorithm name.
func (e *Encoder) Algorithm() string {
	return e.algorithm
}

// Encode wraps message in a new envelope under a fresh key and nonce.
// The message must be valid UTF-8.
func (e *Encoder) Encode(message string) (string, error) {
	if !utf8.ValidString(message) {
		return "", fmt.Errorf("%w: message is not valid UTF-8", ErrFormat)
	}

	key, err := e.random.Rand(KeySize)
	if err != nil {
		return "", fmt.Errorf("%w: key: %v", ErrRandom, err)
	}
	nonce, err := e.random.Rand(NonceSize)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrRandom, err)
	}
	if err := e.tracker.CheckAndRecordNonce(nonce); err != nil {
		return "", err
	}

	c, err := aead.New(e.algorithm, key)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256([]byte(message))
	plaintext := make([]byte, 0, HashSize+len(message))
	plaintext = append(plaintext, digest[:]...)
	plaintext = append(plaintext, message...)

	sealed := make([]byte, NonceSize, NonceSize+len(plaintext)+c.Overhead())
	copy(sealed, nonce)
	sealed = c.Seal(sealed, nonce, plaintext, nil)

	keyB64 := encoding.EncodeToString(key)
	sealedB64 := encoding.EncodeToString(sealed)
	length := len(keyB64) + len(sealedB64)

	return strconv.Itoa(length) + separator + keyB64 + separator + sealedB64, nil
}

// Decode verifies and opens an envelope, returning the original message.
//
// Errors wrap ErrFormat, ErrIntegrity or ErrDecryption. No part of the
// message is returned unless every check passes.
func (e *Encoder) Decode(env string) (string, error) {
	fields := strings.Split(env, separator)
	if len(fields) != 3 {
		return "", fmt.Errorf("%w: expected 3 fields, got %d", ErrFormat, len(fields))
	}
	lengthField, keyB64, sealedB64 := fields[0], fields[1], fields[2]

	length, err := strconv.Atoi(lengthField)
	if err != nil {
		return "", fmt.Errorf("%w: length tag %q is not a decimal integer", ErrFormat, lengthField)
	}
	if actual := len(keyB64) + len(sealedB64); length != actual {
		return "", fmt.Errorf("%w: length tag %d does not match payload length %d", ErrIntegrity, length, actual)
	}

	key, err := encoding.DecodeString(keyB64)
	if err != nil {
		return "", fmt.Errorf("%w: key: %v", ErrFormat, err)
	}
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: key is %d bytes, want %d", ErrFormat, len(key), KeySize)
	}
	// The length tag has matched, so a malformed ciphertext field is
	// treated as tampering rather than a structural error.
	sealed, err := encoding.DecodeString(sealedB64)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", ErrIntegrity, err)
	}
	if len(sealed) < NonceSize {
		return "", fmt.Errorf("%w: ciphertext is %d bytes, too short for a %d byte nonce", ErrFormat, len(sealed), NonceSize)
	}

	c, err := aead.New(e.algorithm, key)
	if err != nil {
		return "", err
	}
	plaintext, err := c.Open(nil, sealed[:NonceSize], sealed[NonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	if len(plaintext) < HashSize {
		return "", fmt.Errorf("%w: plaintext is %d bytes, too short for a SHA-256 hash", ErrFormat, len(plaintext))
	}
	stored, message := plaintext[:HashSize], plaintext[HashSize:]
	computed := sha256.Sum256(message)
	if !bytes.Equal(stored, computed[:]) {
		return "", fmt.Errorf("%w: message hash mismatch", ErrIntegrity)
	}
	if !utf8.Valid(message) {
		return "", fmt.Errorf("%w: message is not valid UTF-8", ErrFormat)
	}

	return string(message), nil
}

var defaultEncoder = &Encoder{
	algorithm: aead.AES256GCM,
	random:    &rand.SoftwareResolver{},
}

// Encode wraps message using AES-256-GCM and crypto/rand.
func Encode(message string) (string, error) {
	return defaultEncoder.Encode(message)
}

// Decode opens an AES-256-GCM envelope.
func Decode(env string) (string, error) {
	return defaultEncoder.Decode(env)
}
