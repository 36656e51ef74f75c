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

package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/loomc/project"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}\n"), 0o644))
}

func TestDiscoverSources_FindsLoomFilesRecursively(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "main.loom"))
	touch(t, filepath.Join(root, "pkg", "util.loom"))
	touch(t, filepath.Join(root, "README.md"))

	found, err := project.DiscoverSources(root, nil)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, filepath.Join(root, "main.loom"), found[0])
	assert.Equal(t, filepath.Join(root, "pkg", "util.loom"), found[1])
}

func TestDiscoverSources_AppliesExcludeGlobs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "main.loom"))
	touch(t, filepath.Join(root, "generated", "schema.loom"))

	found, err := project.DiscoverSources(root, []string{"generated/**"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(root, "main.loom"), found[0])
}

func TestDiscoverSources_ResultIsSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "z.loom"))
	touch(t, filepath.Join(root, "a.loom"))
	touch(t, filepath.Join(root, "m.loom"))

	found, err := project.DiscoverSources(root, nil)
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.True(t, found[0] < found[1] && found[1] < found[2])
}

func TestDiscoverSources_InvalidExcludePatternErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "main.loom"))

	_, err := project.DiscoverSources(root, []string{"["})
	require.Error(t, err)
}
