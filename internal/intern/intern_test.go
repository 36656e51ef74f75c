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

package intern_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loom-lang/loomc/internal/intern"
)

func TestIntern(t *testing.T) {
	t.Parallel()

	data := []string{
		"",
		"a",
		"abc",
		"?",
		"xy.z",
		"a_b_c",
		".....",
		"foo.",
		"foo.a",
		"very long",
		" ",
		"verylong",
		"identifier_with_underscore",
	}

	var table intern.Table
	for i := range 3 {
		for _, s := range data {
			t.Run(fmt.Sprintf("%s/%d", s, i), func(t *testing.T) {
				t.Parallel()

				id := table.Intern(s)
				assert.Equal(t, s, table.Resolve(id), "id: %v", id)

				// Re-interning must be idempotent.
				id2 := table.Intern(s)
				assert.Equal(t, id, id2)
			})
		}
	}
}

func TestIntern_DistinctStringsDistinctIDs(t *testing.T) {
	t.Parallel()

	var table intern.Table
	a := table.Intern("foo")
	b := table.Intern("bar")
	assert.NotEqual(t, a, b)
	assert.Equal(t, ID(0), table.Intern("")) // "" always interns to the zero ID
	assert.Equal(t, "", table.Resolve(0))
}

type ID = intern.ID

func TestIntern_Bytes(t *testing.T) {
	t.Parallel()

	var table intern.Table
	id1 := table.Intern("hello")
	id2 := table.InternBytes([]byte("hello"))
	assert.Equal(t, id1, id2)
}
