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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths_ExplicitArgsBypassManifest(t *testing.T) {
	paths, root, err := resolvePaths([]string{"a/b.loom", "a/c.loom"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b.loom", "a/c.loom"}, paths)
	assert.Equal(t, "a", root)
}

func TestResolvePaths_FallsBackToManifestDiscovery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.loom"), []byte("fn main() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loom.toml"), []byte(`
[package]
name = "demo"

[source]
root = "."
`), 0o644))

	oldManifest := manifestArg
	manifestArg = filepath.Join(dir, "loom.toml")
	t.Cleanup(func() { manifestArg = oldManifest })

	paths, root, err := resolvePaths(nil)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "main.loom"), paths[0])
}
