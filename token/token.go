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

package token

import "github.com/loom-lang/loomc/source"

// Token is a single lexical token: a kind paired with the span of source
// text it covers. Tokens do not carry their own text; callers slice it
// out of the originating [source.File] on demand, which keeps a Token
// a small, copyable value.
type Token struct {
	Kind Kind
	Span source.Span
}

// Text returns the exact source text the token spans.
func (t Token) Text(file *source.File) string {
	return string(file.Slice(t.Span))
}

// String renders the token's kind, for debugging.
func (t Token) String() string {
	return t.Kind.String()
}
