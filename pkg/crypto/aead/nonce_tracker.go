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
	"encoding/hex"
	"sync"
)

// NonceTracker records nonces handed to an encoder and rejects repeats.
//
// Envelopes use a fresh key per message, so a repeated nonce is not by
// itself fatal there; a repeat does mean the random source is broken, and
// the encoder refuses to continue. The tracker is safe for concurrent use.
//
// Memory grows by one entry per encryption. Long-lived processes should
// replace the tracker periodically.
type NonceTracker struct {
	enabled bool
	nonces  map[string]struct{}
	mu      sync.Mutex
}

// NewNonceTracker creates a tracker. A disabled tracker accepts everything.
func NewNonceTracker(enabled bool) *NonceTracker {
	return &NonceTracker{
		enabled: enabled,
		nonces:  make(map[string]struct{}),
	}
}

// CheckAndRecordNonce records nonce and returns ErrNonceReuse if it was
// already recorded.
func (nt *NonceTracker) CheckAndRecordNonce(nonce []byte) error {
	if nt == nil {
		return nil
	}

	nt.mu.Lock()
	defer nt.mu.Unlock()

	if !nt.enabled {
		return nil
	}

	key := hex.EncodeToString(nonce)
	if _, exists := nt.nonces[key]; exists {
		return ErrNonceReuse
	}
	nt.nonces[key] = struct{}{}
	return nil
}
