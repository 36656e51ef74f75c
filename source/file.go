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

package source

import (
	"fmt"
	"sort"
)

// FileID is a dense handle for a file loaded into a [Manager].
//
// FileIDs are never pointers; they carry no ownership and are cheap to
// copy and compare.
type FileID int32

// File owns the text of a single source file together with the
// line-start offsets needed to resolve byte offsets to line/column pairs.
//
// A File is immutable once constructed; [Manager.UpdateFile] replaces the
// File value wholesale (for a given FileID) rather than mutating it, so
// that any Span already handed out continues to refer to a consistent
// view of the old text until the caller re-reads it.
type File struct {
	id   FileID
	path string
	text []byte

	// lines[0] is always 0. lines[i] is the byte offset of the first byte
	// of line i+1 (0-indexed slice, 1-indexed line number).
	lines []int
}

// NewFile builds a File for the given canonical path and contents,
// computing its line-start table.
func NewFile(id FileID, path string, text []byte) *File {
	f := &File{id: id, path: path, text: text}
	f.indexLines()
	return f
}

func (f *File) indexLines() {
	lines := make([]int, 1, 64)
	lines[0] = 0
	for i, b := range f.text {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	f.lines = lines
}

// ID returns this file's dense handle.
func (f *File) ID() FileID { return f.id }

// Path returns the canonical absolute path this file was loaded from.
func (f *File) Path() string { return f.path }

// Text returns the full file contents.
func (f *File) Text() []byte { return f.text }

// Len returns the length, in bytes, of the file.
func (f *File) Len() int { return len(f.text) }

// LineCount returns the number of lines in the file (always at least 1,
// even for an empty file).
func (f *File) LineCount() int { return len(f.lines) }

// Span builds a [Span] over [start, end) within this file.
//
// Panics if the range is not a valid sub-range of the file's text.
func (f *File) Span(start, end int) Span {
	if start < 0 || end > len(f.text) || start > end {
		panic(fmt.Sprintf("source: invalid span [%d:%d) for file of length %d", start, end, len(f.text)))
	}
	return Span{File: f.id, Start: start, End: end}
}

// Slice returns the bytes of this file covered by s.
//
// Panics if s does not belong to this file.
func (f *File) Slice(s Span) []byte {
	if s.File != f.id {
		panic("source: span belongs to a different file")
	}
	return f.text[s.Start:s.End]
}

// Location is a 1-based, user-displayable position within a file.
type Location struct {
	Offset int
	Line   int
	Column int
}

// String renders as "line:column".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Location resolves a byte offset to a 1-based (line, column) pair via
// binary search over the line-start table.
//
// offset may equal len(f.text) (the position just past the final byte);
// any other out-of-range offset panics.
func (f *File) Location(offset int) Location {
	if offset < 0 || offset > len(f.text) {
		panic(fmt.Sprintf("source: offset %d out of range for file of length %d", offset, len(f.text)))
	}

	// Largest line index L such that lines[L] <= offset.
	line := sort.Search(len(f.lines), func(i int) bool {
		return f.lines[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}

	col := offset - f.lines[line] + 1
	return Location{Offset: offset, Line: line + 1, Column: col}
}

// Offset is the reverse of [File.Location]: it resolves a 1-based
// (line, column) pair back to a byte offset, for editor integrations.
//
// Returns false if line or column fall outside the file.
func (f *File) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(f.lines) {
		return 0, false
	}
	start := f.lines[line-1]
	var end int
	if line == len(f.lines) {
		end = len(f.text)
	} else {
		end = f.lines[line]
	}
	offset := start + column - 1
	if offset < start || offset > end {
		return 0, false
	}
	return offset, true
}

// LineSpan returns the span covering the given 1-based line, excluding its
// trailing newline.
func (f *File) LineSpan(line int) Span {
	if line < 1 || line > len(f.lines) {
		panic(fmt.Sprintf("source: line %d out of range (file has %d lines)", line, len(f.lines)))
	}
	start := f.lines[line-1]
	end := len(f.text)
	if line < len(f.lines) {
		end = f.lines[line]
	}
	for end > start && (f.text[end-1] == '\n' || f.text[end-1] == '\r') {
		end--
	}
	return f.Span(start, end)
}
