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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/lexer"
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Context) {
	t.Helper()
	f := source.NewFile(1, "t.loom", []byte(src))
	d := diag.NewContext()
	l := lexer.New(f, d)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			break
		}
	}
	return toks, d
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexer_Keywords(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "fn let struct match for in")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{
		token.KwFn, token.KwLet, token.KwStruct, token.KwMatch, token.KwFor, token.KwIn, token.Eof,
	}, kinds(toks))
}

func TestLexer_IdentifierNotKeyword(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "fnord structure")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{token.Identifier, token.Identifier, token.Eof}, kinds(toks))
}

func TestLexer_Numbers(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "0 123 1_000 0xFF 0b1010 0o17 1.5 1.5e10 1e-3")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{
		token.IntLiteral, token.IntLiteral, token.IntLiteral, token.IntLiteral,
		token.IntLiteral, token.IntLiteral, token.FloatLiteral, token.FloatLiteral,
		token.FloatLiteral, token.Eof,
	}, kinds(toks))
}

func TestLexer_MethodCallVsRangeVsFloat(t *testing.T) {
	t.Parallel()

	toks, d := lexAll(t, "1.method()")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{
		token.IntLiteral, token.Dot, token.Identifier, token.LParen, token.RParen, token.Eof,
	}, kinds(toks))

	toks, d = lexAll(t, "1..10")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{token.IntLiteral, token.DotDot, token.IntLiteral, token.Eof}, kinds(toks))

	toks, d = lexAll(t, "x.5")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{token.Identifier, token.Dot, token.IntLiteral, token.Eof}, kinds(toks))
}

func TestLexer_StringLiteral(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, `"hello\nworld"`)
	require.False(t, d.HasErrors())
	require.Len(t, toks, 2)
	assert.Equal(t, token.StringLiteral, toks[0].Kind)
}

func TestLexer_UnterminatedString(t *testing.T) {
	t.Parallel()
	_, d := lexAll(t, `"hello`)
	assert.True(t, d.HasErrors())
}

func TestLexer_CharLiteral(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, `'a' '\n' '\x41' '\u{1F600}'`)
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{
		token.CharLiteral, token.CharLiteral, token.CharLiteral, token.CharLiteral, token.Eof,
	}, kinds(toks))
}

func TestLexer_MultiByteCharLiteral(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "'中'")
	require.False(t, d.HasErrors())
	assert.Equal(t, token.CharLiteral, toks[0].Kind)
}

func TestLexer_InvalidCharEscape(t *testing.T) {
	t.Parallel()

	toks, d := lexAll(t, `'\xA'`)
	assert.True(t, d.HasErrors())
	assert.Equal(t, token.Illegal, toks[0].Kind)

	toks, d = lexAll(t, `'\u{}'`)
	assert.True(t, d.HasErrors())
	assert.Equal(t, token.Illegal, toks[0].Kind)
}

func TestLexer_NestedBlockComments(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "/* outer /* inner */ still outer */ fn")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{token.KwFn, token.Eof}, kinds(toks))
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	t.Parallel()
	_, d := lexAll(t, "/* never closes")
	assert.True(t, d.HasErrors())
}

func TestLexer_LineComment(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "fn // a comment\nlet")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{token.KwFn, token.KwLet, token.Eof}, kinds(toks))
}

func TestLexer_MaximalMunchOperators(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "<<= >>= == != <= >= => .. ..= ... .? .* .<")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{
		token.ShlEq, token.ShrEq, token.EqEq, token.NotEq, token.LtEq, token.GtEq,
		token.FatArrow, token.DotDot, token.DotDotEq, token.DotDotDot,
		token.DotQuestion, token.DotStar, token.DotLt, token.Eof,
	}, kinds(toks))
}

func TestLexer_Underscore(t *testing.T) {
	t.Parallel()
	toks, d := lexAll(t, "_ _foo foo_")
	require.False(t, d.HasErrors())
	assert.Equal(t, []token.Kind{token.Underscore, token.Identifier, token.Identifier, token.Eof}, kinds(toks))
}

func TestLexer_SpansCoverExactText(t *testing.T) {
	t.Parallel()
	src := "let x = 42;"
	f := source.NewFile(1, "t.loom", []byte(src))
	d := diag.NewContext()
	l := lexer.New(f, d)

	var got []string
	for {
		tok := l.Next()
		if tok.Kind == token.Eof {
			break
		}
		got = append(got, tok.Text(f))
	}
	assert.Equal(t, []string{"let", "x", "=", "42", ";"}, got)
}

func TestTokenStream_PeekAndAdvance(t *testing.T) {
	t.Parallel()
	f := source.NewFile(1, "t.loom", []byte("fn let struct"))
	d := diag.NewContext()
	s := lexer.NewTokenStream(lexer.New(f, d))

	assert.Equal(t, token.KwFn, s.Peek(0).Kind)
	assert.Equal(t, token.KwLet, s.Peek(1).Kind)
	assert.Equal(t, token.KwStruct, s.Peek(2).Kind)

	assert.Equal(t, token.KwFn, s.Advance().Kind)
	assert.Equal(t, token.KwFn, s.Previous().Kind)
	assert.Equal(t, token.KwLet, s.Peek(0).Kind)
}
