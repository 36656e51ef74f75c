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

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "loom.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ResolvesRelativeRootAgainstManifestDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
version = "0.1.0"

[source]
root = "src"
exclude = ["src/generated/**"]
`)

	m, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Package.Name)
	assert.Equal(t, filepath.Join(dir, "src"), m.Source.Root)
	assert.Equal(t, []string{"src/generated/**"}, m.Source.Exclude)
}

func TestLoad_DefaultsRootToManifestDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
`)

	m, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, m.Source.Root)
}

func TestLoad_MissingFileWrapsErrInvalidManifest(t *testing.T) {
	t.Parallel()

	_, err := project.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrInvalidManifest)
}

func TestLoad_MalformedTOMLWrapsErrInvalidManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "[package\nname = broken")

	_, err := project.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrInvalidManifest)
}
