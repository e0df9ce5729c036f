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

package file

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/jeremyhahn/go-rampshare/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return backend.(*FileStorage), dir
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	root := filepath.Join(t.TempDir(), "nested", "root")
	backend, err := New(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, root, backend.(*FileStorage).Root())
}

func TestPutGet(t *testing.T) {
	store, dir := newTestStorage(t)
	key := storage.SharePath("set-1", 3)

	require.NoError(t, store.Put(key, []byte("record"), nil))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("record"), got)

	onDisk, err := os.ReadFile(filepath.Join(dir, "sets", "set-1", "3.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte("record"), onDisk)

	require.NoError(t, store.Put(key, []byte("overwritten"), nil))
	got, err = store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("overwritten"), got)
}

func TestGetNotFound(t *testing.T) {
	store, _ := newTestStorage(t)
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store, dir := newTestStorage(t)
	key := storage.SharePath("set-1", 0)
	require.NoError(t, store.Put(key, []byte("v"), nil))

	require.NoError(t, store.Delete(key))
	assert.ErrorIs(t, store.Delete(key), storage.ErrNotFound)

	// The emptied set directory is pruned; the root stays.
	_, err := os.Stat(filepath.Join(dir, "sets", "set-1"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	store, _ := newTestStorage(t)
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

func TestExists(t *testing.T) {
	store, _ := newTestStorage(t)

	exists, err := store.Exists("key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put("key", []byte("v"), nil))
	exists, err = store.Exists("key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, dir := newTestStorage(t)

	require.NoError(t, store.Put("default", []byte("v"), nil))
	info, err := os.Stat(filepath.Join(dir, "default"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, store.Put("custom", []byte("v"), &storage.Options{Permissions: 0640}))
	info, err = os.Stat(filepath.Join(dir, "custom"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm()&^0022)
}

func TestInvalidKeys(t *testing.T) {
	store, _ := newTestStorage(t)

	for _, key := range []string{"", "../escape", "sets/../../escape", "/etc/passwd", "bad\x00key", ".."} {
		err := store.Put(key, []byte("v"), nil)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, "key %q", key)

		_, err = store.Get(key)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, "key %q", key)
	}
}

func TestValidateStorageKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"my-key", false},
		{"sets/abc/0.json", false},
		{"foo/bar/..", false},
		{"", true},
		{"../secret", true},
		{"foo/../../../etc/passwd", true},
		{"/abs", true},
		{"nul\x00", true},
	}

	for _, tt := range tests {
		err := validateStorageKey(tt.key)
		if tt.wantErr {
			assert.Error(t, err, "key %q", tt.key)
		} else {
			assert.NoError(t, err, "key %q", tt.key)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	store, _ := newTestStorage(t)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				key := storage.SharePath(fmt.Sprintf("set-%d", w), i)
				assert.NoError(t, store.Put(key, []byte(key), nil))
				got, err := store.Get(key)
				assert.NoError(t, err)
				assert.Equal(t, []byte(key), got)
			}
		}(w)
	}
	wg.Wait()

	keys, err := store.List("sets/")
	require.NoError(t, err)
	assert.Len(t, keys, 160)
}

func TestClose(t *testing.T) {
	store, _ := newTestStorage(t)
	require.NoError(t, store.Close())

	_, err := store.Get("key")
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, store.Put("key", nil, nil), storage.ErrClosed)
	_, err = store.List("")
	assert.ErrorIs(t, err, storage.ErrClosed)
}
