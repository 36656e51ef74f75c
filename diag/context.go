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

package diag

import (
	"fmt"

	"github.com/loom-lang/loomc/source"
)

// Context accumulates diagnostics for a single parse and tracks panic
// mode, per the front end's error-recovery discipline: while panic mode
// is set, further Error-severity reports are suppressed, so that a
// single malformed construct produces at most one reported error per
// synchronization boundary.
//
// A Context is owned by exactly one parser for the duration of one
// parse; it is not designed for concurrent mutation from multiple
// goroutines (parallel compilation instead gives each file its own
// Context, sharing only the immutable Manager and the synchronized
// StringInterner).
type Context struct {
	diags      []Diagnostic
	errorCount int
	panicMode  bool
}

// NewContext creates an empty diagnostic context.
func NewContext() *Context {
	return &Context{}
}

// Report records a diagnostic. Error-severity diagnostics are dropped
// while panic mode is active; Warning and Note diagnostics are always
// recorded, since they never trigger or participate in cascade
// suppression.
func (c *Context) Report(d Diagnostic) {
	if d.Severity == Error {
		if c.panicMode {
			return
		}
		c.panicMode = true
		c.errorCount++
	}
	c.diags = append(c.diags, d)
}

// Errorf reports a formatted error at span, tagged with tag.
func (c *Context) Errorf(span source.Span, tag ErrorTag, format string, args ...any) {
	c.Report(Diagnostic{Severity: Error, Span: span, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// Warnf reports a formatted warning at span, tagged with tag.
func (c *Context) Warnf(span source.Span, tag ErrorTag, format string, args ...any) {
	c.Report(Diagnostic{Severity: Warning, Span: span, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// Notef reports a formatted note at span, tagged with tag.
func (c *Context) Notef(span source.Span, tag ErrorTag, format string, args ...any) {
	c.Report(Diagnostic{Severity: Note, Span: span, Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// PanicMode reports whether this context is currently suppressing
// cascade errors.
func (c *Context) PanicMode() bool {
	return c.panicMode
}

// ClearPanicMode exits panic mode. Called by the parser once it has
// synchronized to a plausible statement or declaration boundary.
func (c *Context) ClearPanicMode() {
	c.panicMode = false
}

// ErrorCount returns the number of Error-severity diagnostics reported so
// far (deduplicated by panic-mode suppression, so this also counts the
// number of independent synchronization points that produced an error).
func (c *Context) ErrorCount() int {
	return c.errorCount
}

// Diagnostics returns all diagnostics reported so far, in the order they
// were discovered (a stable post-order traversal of the parse for a
// given input).
func (c *Context) Diagnostics() []Diagnostic {
	return c.diags
}

// HasErrors reports whether any Error-severity diagnostic has been
// recorded.
func (c *Context) HasErrors() bool {
	return c.errorCount > 0
}

// FormatAll renders every diagnostic using the driver-facing
// "<path>:<line>:<column>: <severity>: <message>" convention.
func (c *Context) FormatAll(files *source.Manager) []string {
	out := make([]string, len(c.diags))
	for i, d := range c.diags {
		out[i] = d.Format(files)
	}
	return out
}
