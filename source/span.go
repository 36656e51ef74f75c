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

// Package source owns file identity and byte-offset-to-line/column
// resolution for the Loom front end. It is the sole mechanism of source
// provenance used throughout the lexer, AST, and parser.
package source

import "fmt"

// Span is an ordered pair of byte offsets, [Start, End), into a single
// source file identified by FileID.
//
// The zero Span is the "no span" sentinel and carries no File.
type Span struct {
	File  FileID
	Start int
	End   int
}

// IsZero reports whether s carries no provenance.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Merge returns the smallest span that contains both a and b.
//
// Panics if a and b name different, non-zero files.
func Merge(a, b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	if a.File != b.File {
		panic(fmt.Sprintf("source: cannot merge spans from different files: %d != %d", a.File, b.File))
	}
	return Span{
		File:  a.File,
		Start: min(a.Start, b.Start),
		End:   max(a.End, b.End),
	}
}

// MergeAll merges a sequence of spans, skipping any zero spans. Returns the
// zero Span if every argument is zero.
func MergeAll(spans ...Span) Span {
	var out Span
	for _, s := range spans {
		out = Merge(out, s)
	}
	return out
}

// Len returns the length, in bytes, of this span.
func (s Span) Len() int {
	return s.End - s.Start
}
