// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/loomc/cache"
)

func openStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_LookupMissesOnUnknownPath(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	_, hit := store.Lookup("nope.loom", 1)
	assert.False(t, hit)
}

func TestStore_PutThenLookupRoundTrips(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	hash := cache.HashContent([]byte("fn main() {}"))
	want := []string{"main.loom:1:1: error: unexpected token"}

	require.NoError(t, store.Put("main.loom", hash, want))

	got, hit := store.Lookup("main.loom", hash)
	require.True(t, hit)
	assert.Equal(t, want, got)
}

func TestStore_LookupMissesOnHashMismatch(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	hash := cache.HashContent([]byte("fn main() {}"))
	require.NoError(t, store.Put("main.loom", hash, []string{"old"}))

	_, hit := store.Lookup("main.loom", cache.HashContent([]byte("fn main() { }")))
	assert.False(t, hit)
}

func TestStore_PutOverwritesPriorEntry(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	h1 := cache.HashContent([]byte("a"))
	h2 := cache.HashContent([]byte("b"))

	require.NoError(t, store.Put("f.loom", h1, []string{"first"}))
	require.NoError(t, store.Put("f.loom", h2, []string{"second"}))

	got, hit := store.Lookup("f.loom", h2)
	require.True(t, hit)
	assert.Equal(t, []string{"second"}, got)

	_, hit = store.Lookup("f.loom", h1)
	assert.False(t, hit)
}

func TestStore_InvalidateRemovesEntry(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	hash := cache.HashContent([]byte("a"))
	require.NoError(t, store.Put("f.loom", hash, []string{"x"}))

	require.NoError(t, store.Invalidate("f.loom"))

	_, hit := store.Lookup("f.loom", hash)
	assert.False(t, hit)
}

func TestHashContent_DifferentContentDifferentHash(t *testing.T) {
	t.Parallel()

	a := cache.HashContent([]byte("fn main() {}"))
	b := cache.HashContent([]byte("fn other() {}"))
	assert.NotEqual(t, a, b)
}
