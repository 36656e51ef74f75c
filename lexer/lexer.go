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

// Package lexer turns the raw bytes of a [source.File] into a stream of
// [token.Token]s. It is hand-written rather than generated: Loom's
// grammar needs lookahead (1.method vs 1..10 vs x.5) and nesting
// (block comments) that a table-driven scanner would only complicate.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

const eof = -1

// Lexer scans one source file into tokens on demand. It never allocates
// per-token text: every Token carries only a [source.Span], and callers
// slice the originating file to recover the bytes.
type Lexer struct {
	file *source.File
	data []byte
	pos  int // byte offset of the next unread byte
	mark int // byte offset where the current token started

	diags *diag.Context
}

// New creates a Lexer over file, reporting lexical errors to diags.
func New(file *source.File, diags *diag.Context) *Lexer {
	return &Lexer{file: file, data: file.Text(), diags: diags}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.data)
}

// peekRune decodes, without consuming, the rune starting at l.pos.
func (l *Lexer) peekRune() (rune, int) {
	if l.atEnd() {
		return eof, 0
	}
	r, sz := utf8.DecodeRune(l.data[l.pos:])
	return r, sz
}

func (l *Lexer) peekRuneAt(offset int) (rune, int) {
	if l.pos+offset >= len(l.data) {
		return eof, 0
	}
	r, sz := utf8.DecodeRune(l.data[l.pos+offset:])
	return r, sz
}

// advanceRune consumes and returns the rune at l.pos.
func (l *Lexer) advanceRune() rune {
	r, sz := l.peekRune()
	l.pos += sz
	return r
}

func (l *Lexer) peekByte() byte {
	if l.atEnd() {
		return 0
	}
	return l.data[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.data) {
		return 0
	}
	return l.data[l.pos+offset]
}

// match consumes the next byte and returns true if it equals b.
func (l *Lexer) match(b byte) bool {
	if l.peekByte() != b {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) span() source.Span {
	return l.file.Span(l.mark, l.pos)
}

func (l *Lexer) emit(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Span: l.span()}
}

// Next scans and returns the next token, skipping whitespace and
// comments. It always eventually returns an Eof token and continues to
// do so on every subsequent call.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()
	l.mark = l.pos

	if l.atEnd() {
		return l.emit(token.Eof)
	}

	r, sz := l.peekRune()

	switch {
	case r == '_' && !isIdentContinue(l.runeAfter(sz)):
		l.pos += sz
		return l.emit(token.Underscore)
	case isIdentStart(r):
		return l.scanIdentifierOrKeyword()
	case r >= '0' && r <= '9':
		return l.scanNumber()
	case r == '"':
		return l.scanString()
	case r == '\'':
		return l.scanChar()
	}

	return l.scanPunctuator()
}

func (l *Lexer) runeAfter(skip int) rune {
	r, _ := l.peekRuneAt(skip)
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// skipTrivia consumes whitespace, line comments, and (possibly nested)
// block comments.
func (l *Lexer) skipTrivia() {
	for {
		switch l.peekByte() {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			l.pos++
		case '/':
			switch l.peekByteAt(1) {
			case '/':
				l.pos += 2
				for !l.atEnd() && l.peekByte() != '\n' {
					l.pos++
				}
			case '*':
				l.mark = l.pos
				l.pos += 2
				l.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	depth := 1
	for depth > 0 {
		if l.atEnd() {
			l.diags.Errorf(l.span(), diag.TagUnterminatedBlockComment, "unterminated block comment")
			return
		}
		switch {
		case l.peekByte() == '/' && l.peekByteAt(1) == '*':
			l.pos += 2
			depth++
		case l.peekByte() == '*' && l.peekByteAt(1) == '/':
			l.pos += 2
			depth--
		default:
			l.pos++
		}
	}
}

func (l *Lexer) scanIdentifierOrKeyword() token.Token {
	for {
		r, sz := l.peekRune()
		if sz == 0 || !isIdentContinue(r) {
			break
		}
		l.pos += sz
	}
	text := string(l.data[l.mark:l.pos])
	if kind, ok := token.Lookup(text); ok {
		return l.emit(kind)
	}
	return l.emit(token.Identifier)
}

// scanPunctuator scans a single- or multi-character operator using
// maximal munch: at each step it tries the longest match first.
func (l *Lexer) scanPunctuator() token.Token {
	c := l.advanceRuneByte()

	three := func(a, b byte, k3, k2, k1 token.Kind) token.Token {
		if l.peekByte() == a && l.peekByteAt(1) == b {
			l.pos += 2
			return l.emit(k3)
		}
		if l.peekByte() == a {
			l.pos++
			return l.emit(k2)
		}
		return l.emit(k1)
	}

	switch c {
	case '(':
		return l.emit(token.LParen)
	case ')':
		return l.emit(token.RParen)
	case '{':
		return l.emit(token.LBrace)
	case '}':
		return l.emit(token.RBrace)
	case '[':
		return l.emit(token.LBracket)
	case ']':
		return l.emit(token.RBracket)
	case ',':
		return l.emit(token.Comma)
	case ';':
		return l.emit(token.Semicolon)
	case ':':
		return l.emit(token.Colon)
	case '?':
		return l.emit(token.Question)
	case '@':
		return l.emit(token.At)
	case '$':
		return l.emit(token.Dollar)
	case '#':
		return l.emit(token.Hash)
	case '~':
		return l.emit(token.Tilde)
	case '^':
		return l.twoWay('=', token.CaretEq, token.Caret)
	case '+':
		return l.twoWay('=', token.PlusEq, token.Plus)
	case '-':
		return l.twoWay('=', token.MinusEq, token.Minus)
	case '*':
		return l.twoWay('=', token.StarEq, token.Star)
	case '/':
		return l.twoWay('=', token.SlashEq, token.Slash)
	case '%':
		return l.twoWay('=', token.PercentEq, token.Percent)
	case '!':
		return l.twoWay('=', token.NotEq, token.Bang)
	case '=':
		if l.match('=') {
			return l.emit(token.EqEq)
		}
		if l.match('>') {
			return l.emit(token.FatArrow)
		}
		return l.emit(token.Assign)
	case '&':
		return l.twoWay('=', token.AmpEq, token.Amp)
	case '|':
		return l.twoWay('=', token.PipeEq, token.Pipe)
	case '<':
		if l.match('<') {
			return l.twoWay('=', token.ShlEq, token.Shl)
		}
		return l.twoWay('=', token.LtEq, token.Lt)
	case '>':
		if l.match('>') {
			return l.twoWay('=', token.ShrEq, token.Shr)
		}
		return l.twoWay('=', token.GtEq, token.Gt)
	case '.':
		if l.match('.') {
			if l.match('.') {
				return l.emit(token.DotDotDot)
			}
			if l.match('=') {
				return l.emit(token.DotDotEq)
			}
			return l.emit(token.DotDot)
		}
		switch l.peekByte() {
		case '?':
			l.pos++
			return l.emit(token.DotQuestion)
		case '*':
			l.pos++
			return l.emit(token.DotStar)
		case '<':
			l.pos++
			return l.emit(token.DotLt)
		}
		return l.emit(token.Dot)
	}
	_ = three
	l.diags.Errorf(l.span(), diag.TagIllegalByte, "illegal character %q", c)
	return l.emit(token.Illegal)
}

func (l *Lexer) twoWay(b byte, withEq, without token.Kind) token.Token {
	if l.match(b) {
		return l.emit(withEq)
	}
	return l.emit(without)
}

// advanceRuneByte consumes and returns the next byte as if it were an
// ASCII rune; punctuators are always ASCII, so this is equivalent to
// advanceRune for the callers that use it but avoids the UTF-8 decode.
func (l *Lexer) advanceRuneByte() byte {
	b := l.data[l.pos]
	l.pos++
	return b
}
