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

// Package intern provides an interning table abstraction mapping
// identifier and literal text to dense integer IDs.
package intern

import (
	"fmt"
	"strings"
	"sync"
)

// ID is a symbol interned into a particular [Table].
//
// IDs can be compared very cheaply. The zero value of ID always
// corresponds to the empty string.
type ID int32

// String implements [fmt.Stringer].
//
// This does not recover the original text; use [Table.Value] for that.
func (id ID) String() string {
	return fmt.Sprintf("intern.ID(%d)", int(id))
}

// Table is an interning table, mapping arbitrary byte strings to dense,
// small [ID]s.
//
// A Table may be shared by multiple parsers working on independent files
// concurrently; all of its methods are safe for concurrent use.
//
// The zero value of Table is empty and ready to use.
type Table struct {
	mu    sync.RWMutex
	index map[string]ID
	table []string
}

// Intern interns the given string into this table, returning a stable ID.
//
// Distinct byte sequences are guaranteed to yield distinct IDs; identical
// sequences always yield the identical ID, for the lifetime of the table.
func (t *Table) Intern(s string) ID {
	if s == "" {
		return 0
	}

	// Fast path: the string has already been interned. Entries are never
	// removed from index, so a hit here is never invalidated by a
	// concurrent writer.
	t.mu.RLock()
	id, ok := t.index[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Someone may have raced us between RUnlock and Lock.
	if id, ok := t.index[s]; ok {
		return id
	}

	// Tables are long-lived; don't hold on to whatever buffer s may be a
	// slice of.
	s = strings.Clone(s)
	t.table = append(t.table, s)

	// ID 0 is reserved for "".
	id = ID(len(t.table))
	if id < 0 {
		panic(fmt.Sprintf("intern: %d interning IDs exhausted", len(t.table)))
	}

	if t.index == nil {
		t.index = make(map[string]ID)
	}
	t.index[s] = id
	return id
}

// InternBytes is like [Table.Intern], but takes a byte slice. It avoids an
// allocation for strings that are already present in the table.
func (t *Table) InternBytes(b []byte) ID {
	t.mu.RLock()
	id, ok := t.index[string(b)] // does not allocate, see https://go.dev/issue/27425
	t.mu.RUnlock()
	if ok {
		return id
	}
	return t.Intern(string(b))
}

// Resolve converts an [ID] back into its corresponding string.
//
// If id was not produced by this table, the results are unspecified,
// including a potential panic.
func (t *Table) Resolve(id ID) string {
	if id == 0 {
		return ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table[int(id)-1]
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.table)
}
