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

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

func TestKind_IsKeyword(t *testing.T) {
	t.Parallel()

	assert.True(t, token.KwFn.IsKeyword())
	assert.True(t, token.KwAs.IsKeyword())
	assert.True(t, token.KwMatch.IsKeyword())
	assert.False(t, token.Identifier.IsKeyword())
	assert.False(t, token.Plus.IsKeyword())
	assert.False(t, token.BoolLiteral.IsKeyword())
	assert.False(t, token.Eof.IsKeyword())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fn", token.KwFn.String())
	assert.Equal(t, "==", token.EqEq.String())
	assert.Equal(t, "identifier", token.Identifier.String())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	k, ok := token.Lookup("struct")
	assert.True(t, ok)
	assert.Equal(t, token.KwStruct, k)

	k, ok = token.Lookup("true")
	assert.True(t, ok)
	assert.Equal(t, token.BoolLiteral, k)

	_, ok = token.Lookup("notakeyword")
	assert.False(t, ok)
}

func TestKeywords_VocabularyComplete(t *testing.T) {
	t.Parallel()

	vocab := token.Keywords()
	assert.Contains(t, vocab, "fn")
	assert.Contains(t, vocab, "unreachable")
	assert.Contains(t, vocab, "true")
}

func TestToken_Text(t *testing.T) {
	t.Parallel()

	f := source.NewFile(1, "a.loom", []byte("let x = 1;"))
	tok := token.Token{Kind: token.KwLet, Span: f.Span(0, 3)}
	assert.Equal(t, "let", tok.Text(f))
}
