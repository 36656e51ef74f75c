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

package lexer

import (
	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/token"
)

// scanString scans a double-quoted string literal. The lexer validates
// escape sequences for diagnostic purposes but does not unescape the
// contents: the token's span covers the raw source text including the
// surrounding quotes, and unescaping is deferred to the parser (which
// builds the literal's runtime value once, rather than the lexer
// re-scanning on every lookahead).
func (l *Lexer) scanString() token.Token {
	l.pos++ // opening quote
	for {
		if l.atEnd() {
			l.diags.Errorf(l.span(), diag.TagUnterminatedString, "unterminated string literal")
			return l.emit(token.Illegal)
		}
		switch l.peekByte() {
		case '"':
			l.pos++
			return l.emitString()
		case '\n':
			l.diags.Errorf(l.span(), diag.TagUnterminatedString, "unterminated string literal")
			return l.emit(token.Illegal)
		case '\\':
			l.scanEscape()
		default:
			l.pos++
		}
	}
}

// scanChar scans a single-quoted character literal, which may contain
// exactly one escape sequence or one Unicode scalar value.
func (l *Lexer) scanChar() token.Token {
	l.pos++ // opening quote
	ok := true
	if l.atEnd() || l.peekByte() == '\'' {
		l.diags.Errorf(l.span(), diag.TagUnterminatedChar, "empty character literal")
		ok = false
	} else if l.peekByte() == '\\' {
		ok = ok && l.scanEscape()
	} else {
		l.advanceRune()
	}
	if l.peekByte() == '\'' {
		l.pos++
	} else {
		l.diags.Errorf(l.span(), diag.TagUnterminatedChar, "unterminated character literal")
		ok = false
	}
	if !ok {
		return l.emit(token.Illegal)
	}
	return l.emitString()
}

// scanEscape consumes a backslash escape sequence, validating its shape
// and reporting a diagnostic if malformed. It always advances past the
// backslash and whatever follows it, even on error, so scanning can
// continue. It returns false if the escape was malformed in any way, so
// callers can refuse to treat the surrounding literal as well-formed.
func (l *Lexer) scanEscape() bool {
	start := l.pos
	l.pos++ // backslash
	if l.atEnd() {
		l.diags.Errorf(l.file.Span(start, l.pos), diag.TagInvalidEscape, "unterminated escape sequence")
		return false
	}
	c := l.peekByte()
	switch c {
	case 'n', 'r', 't', '\\', '\'', '"', '0':
		l.pos++
	case 'x':
		l.pos++
		for i := 0; i < 2; i++ {
			if !isHexDigit(l.peekByte()) {
				l.diags.Errorf(l.file.Span(start, l.pos), diag.TagInvalidHexEscape, "invalid hex escape, want 2 hex digits")
				return false
			}
			l.pos++
		}
	case 'u':
		l.pos++
		if l.peekByte() != '{' {
			l.diags.Errorf(l.file.Span(start, l.pos), diag.TagInvalidUnicodeEscape, "expected '{' after \\u")
			return false
		}
		l.pos++
		digits := 0
		for isHexDigit(l.peekByte()) {
			l.pos++
			digits++
		}
		ok := true
		if digits == 0 || digits > 6 {
			l.diags.Errorf(l.file.Span(start, l.pos), diag.TagUnicodeEscapeTooLong, "unicode escape must have 1 to 6 hex digits")
			ok = false
		}
		if l.peekByte() == '}' {
			l.pos++
		} else {
			l.diags.Errorf(l.file.Span(start, l.pos), diag.TagInvalidUnicodeEscape, "expected '}' to close unicode escape")
			ok = false
		}
		return ok
	default:
		l.pos++
		l.diags.Errorf(l.file.Span(start, l.pos), diag.TagInvalidEscape, "invalid escape sequence")
		return false
	}
	return true
}

func (l *Lexer) emitString() token.Token {
	if l.data[l.mark] == '\'' {
		return l.emit(token.CharLiteral)
	}
	return l.emit(token.StringLiteral)
}
