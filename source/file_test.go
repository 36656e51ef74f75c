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

package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/loomc/source"
)

func TestFile_Location(t *testing.T) {
	t.Parallel()

	text := "let x = 1;\nlet y = 2;\n"
	f := source.NewFile(1, "test.loom", []byte(text))

	assert.Equal(t, 3, f.LineCount())

	for offset := 0; offset < len(text); offset++ {
		loc := f.Location(offset)
		back, ok := f.Offset(loc.Line, loc.Column)
		require.True(t, ok)
		assert.Equal(t, offset, back, "offset %d round-trips through Location/Offset", offset)
	}

	first := f.Location(0)
	assert.Equal(t, source.Location{Offset: 0, Line: 1, Column: 1}, first)

	secondLineStart := f.Location(11)
	assert.Equal(t, 2, secondLineStart.Line)
	assert.Equal(t, 1, secondLineStart.Column)
}

func TestFile_Span(t *testing.T) {
	t.Parallel()

	f := source.NewFile(1, "test.loom", []byte("let x = 1;"))
	s := f.Span(4, 5)
	assert.Equal(t, "x", string(f.Slice(s)))
}

func TestSpan_Merge(t *testing.T) {
	t.Parallel()

	f := source.NewFile(1, "test.loom", []byte("let x = 1;"))
	a := f.Span(0, 3)
	b := f.Span(4, 5)
	m := source.Merge(a, b)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 5, m.End)

	// Merging with a zero span is a no-op.
	assert.Equal(t, a, source.Merge(a, source.Span{}))
	assert.Equal(t, a, source.Merge(source.Span{}, a))
}

func TestManager_LoadFile_DedupesByCanonicalPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.loom")
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}\n"), 0o644))

	m := source.NewManager()
	id1, err := m.LoadFile(path)
	require.NoError(t, err)

	id2, err := m.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, m.Len())
}

func TestManager_LoadAll_DeterministicIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".loom")
		require.NoError(t, os.WriteFile(p, []byte("fn f() {}\n"), 0o644))
		paths = append(paths, p)
	}

	m := source.NewManager()
	ids, err := m.LoadAll(paths)
	require.NoError(t, err)
	require.Len(t, ids, len(paths))

	for i, id := range ids {
		f := m.File(id)
		require.NotNil(t, f)
		canon, err := filepath.Abs(paths[i])
		require.NoError(t, err)
		assert.Equal(t, canon, f.Path())
	}
}

func TestManager_UpdateFile_PreservesID(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.loom")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1;"), 0o644))

	m := source.NewManager()
	id, err := m.LoadFile(path)
	require.NoError(t, err)

	require.NoError(t, m.UpdateFile(id, []byte("let x = 2;\nlet y = 3;")))
	f := m.File(id)
	assert.Equal(t, id, f.ID())
	assert.Equal(t, 2, f.LineCount())
}
