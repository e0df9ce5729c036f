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

package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jeremyhahn/go-rampshare/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	store := New()
	require.NotNil(t, store)

	keys, err := store.List("")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPutGet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value []byte
	}{
		{"simple key-value", "test-key", []byte("test-value")},
		{"empty value", "empty", []byte{}},
		{"share record", storage.SharePath("set-1", 0), []byte(`{"index":0}`)},
		{"binary value", "binary", []byte{0x00, 0xFF, 0x10}},
	}

	store := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Put(tt.key, tt.value, nil))

			got, err := store.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}

	assert.ErrorIs(t, store.Put("", []byte("x"), nil), storage.ErrInvalidKey)
}

func TestGetNotFound(t *testing.T) {
	_, err := New().Get("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := New()
	require.NoError(t, store.Put("key", []byte("value"), nil))

	require.NoError(t, store.Delete("key"))
	exists, err := store.Exists("key")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, store.Delete("key"), storage.ErrNotFound)
}

func TestList(t *testing.T) {
	store := New()
	for _, key := range []string{"sets/b/1.json", "sets/a/0.json", "sets/b/0.json", "other"} {
		require.NoError(t, store.Put(key, []byte("v"), nil))
	}

	all, err := store.List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "sets/a/0.json", "sets/b/0.json", "sets/b/1.json"}, all)

	b, err := store.List("sets/b/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sets/b/0.json", "sets/b/1.json"}, b)
}

func TestDefensiveCopy(t *testing.T) {
	store := New()
	value := []byte("original")
	require.NoError(t, store.Put("key", value, nil))

	value[0] = 'X'
	got, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestConcurrentOperations(t *testing.T) {
	store := New()
	const workers = 10
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d/k%d", w, i)
				assert.NoError(t, store.Put(key, []byte(key), nil))
				_, err := store.Get(key)
				assert.NoError(t, err)
				_, err = store.List("w")
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	keys, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, keys, workers*perWorker)
}

func TestClosedStorage(t *testing.T) {
	store := New()
	require.NoError(t, store.Put("key", []byte("value"), nil))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err := store.Get("key")
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, store.Put("key", nil, nil), storage.ErrClosed)
	assert.ErrorIs(t, store.Delete("key"), storage.ErrClosed)
	_, err = store.List("")
	assert.ErrorIs(t, err, storage.ErrClosed)
	_, err = store.Exists("key")
	assert.ErrorIs(t, err, storage.ErrClosed)
}
