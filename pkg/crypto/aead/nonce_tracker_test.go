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
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceTracker_DetectsReuse(t *testing.T) {
	tracker := NewNonceTracker(true)
	nonce := []byte("nonce-000001")

	require.NoError(t, tracker.CheckAndRecordNonce(nonce))
	assert.Len(t, tracker.nonces, 1)

	err := tracker.CheckAndRecordNonce(nonce)
	assert.ErrorIs(t, err, ErrNonceReuse)
	assert.Len(t, tracker.nonces, 1)

	require.NoError(t, tracker.CheckAndRecordNonce([]byte("nonce-000002")))
	assert.Len(t, tracker.nonces, 2)
}

func TestNonceTracker_Disabled(t *testing.T) {
	tracker := NewNonceTracker(false)
	nonce := []byte("nonce-000001")

	require.NoError(t, tracker.CheckAndRecordNonce(nonce))
	require.NoError(t, tracker.CheckAndRecordNonce(nonce))
	assert.Empty(t, tracker.nonces)
}

func TestNonceTracker_Nil(t *testing.T) {
	var tracker *NonceTracker
	assert.NoError(t, tracker.CheckAndRecordNonce([]byte("x")))
}

func TestNonceTracker_Concurrent(t *testing.T) {
	tracker := NewNonceTracker(true)

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				nonce := make([]byte, NonceSize)
				binary.BigEndian.PutUint32(nonce, uint32(w))
				binary.BigEndian.PutUint32(nonce[4:], uint32(i))
				assert.NoError(t, tracker.CheckAndRecordNonce(nonce))
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, tracker.nonces, workers*perWorker)
}
