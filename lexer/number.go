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

import "github.com/loom-lang/loomc/token"

// scanNumber scans an integer or float literal. Loom numbers allow `_`
// as a digit separator and 0x/0b/0o radix prefixes; only decimal
// literals may have a fractional part or exponent. Next only dispatches
// here on a leading decimal digit, so a bare `.5` with no preceding
// digit is never scanned as a float: it lexes as a separate Dot and
// IntLiteral, per the grammar's `float = dec-int '.' dec-int ...`.
//
// The `1.method()` vs `1..10` vs `1.5` ambiguity is resolved once inside
// this function by looking past the '.' for a digit: a bare "1."
// followed by an identifier is scanned as an IntLiteral and a separate
// Dot, and "1.." is scanned as an IntLiteral followed by DotDot.
func (l *Lexer) scanNumber() token.Token {
	if l.peekByte() == '0' {
		switch l.peekByteAt(1) {
		case 'x', 'X':
			l.pos += 2
			l.scanDigits(isHexDigit)
			return l.emit(token.IntLiteral)
		case 'b', 'B':
			l.pos += 2
			l.scanDigits(isBinDigit)
			return l.emit(token.IntLiteral)
		case 'o', 'O':
			l.pos += 2
			l.scanDigits(isOctDigit)
			return l.emit(token.IntLiteral)
		}
	}

	l.scanDigits(isDigitByte)

	isFloat := false
	if l.peekByte() == '.' && isDigitByte(l.peekByteAt(1)) {
		isFloat = true
		l.pos++ // consume '.'
		l.scanDigits(isDigitByte)
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		save := l.pos
		l.pos++
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.pos++
		}
		if isDigitByte(l.peekByte()) {
			isFloat = true
			l.scanDigits(isDigitByte)
		} else {
			l.pos = save
		}
	}

	if isFloat {
		return l.emit(token.FloatLiteral)
	}
	return l.emit(token.IntLiteral)
}

func (l *Lexer) scanDigits(valid func(byte) bool) {
	for {
		b := l.peekByte()
		if b == '_' && valid(l.peekByteAt(1)) {
			l.pos++
			continue
		}
		if !valid(b) {
			return
		}
		l.pos++
	}
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isBinDigit(b byte) bool {
	return b == '0' || b == '1'
}

func isOctDigit(b byte) bool {
	return b >= '0' && b <= '7'
}
