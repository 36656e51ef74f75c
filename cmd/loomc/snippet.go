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
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/source"
)

// printSnippet renders the source line a diagnostic's span starts on,
// followed by a caret line. The caret is aligned by terminal display
// width rather than byte or rune count, so a line containing wide or
// combining characters before the span still points at the right
// column; source-snippet rendering is explicitly a driver concern, not
// part of the diagnostic pipeline itself.
func printSnippet(d diag.Diagnostic, files *source.Manager) {
	if d.Span.IsZero() {
		return
	}
	f := files.File(d.Span.File)
	if f == nil {
		return
	}
	loc := f.Location(d.Span.Start)
	line := string(f.Slice(f.LineSpan(loc.Line)))

	prefixLen := loc.Column - 1
	if prefixLen > len(line) {
		prefixLen = len(line)
	}
	caretCol := uniseg.StringWidth(line[:prefixLen])

	fmt.Println(line)
	fmt.Println(strings.Repeat(" ", caretCol) + "^")
}
