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

// Package diag collects and renders diagnostics (errors, warnings, notes)
// produced while scanning and parsing a Loom source file.
package diag

import (
	"fmt"

	"github.com/loom-lang/loomc/source"
)

// Severity classifies a [Diagnostic].
type Severity int

const (
	// Error indicates the file could not be fully understood; at least
	// one Error prevents downstream compilation stages from running.
	Error Severity = iota
	// Warning indicates something allowed but discouraged.
	Warning
	// Note provides supplementary context, usually attached to a
	// preceding Error or Warning.
	Note
)

// String implements [fmt.Stringer].
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single reported problem: a severity, the span of
// source it concerns, and a message.
type Diagnostic struct {
	Severity Severity
	Span     source.Span
	Message  string
	// Tag identifies the fixed message template that produced Message,
	// for callers that want to match on error identity rather than text.
	Tag ErrorTag
}

// Format renders this diagnostic using the
// "<path>:<line>:<column>: <severity>: <message>" convention, resolving
// Span against files.
func (d Diagnostic) Format(files *source.Manager) string {
	if d.Span.IsZero() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	f := files.File(d.Span.File)
	if f == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	loc := f.Location(d.Span.Start)
	return fmt.Sprintf("%s:%d:%d: %s: %s", f.Path(), loc.Line, loc.Column, d.Severity, d.Message)
}
