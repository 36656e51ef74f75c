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

// lookahead is how many tokens of lookahead TokenStream buffers. The
// parser's most demanding lookahead is 4 tokens (Peek(0..3)): cases like
// `pub fn name<`, struct-init disambiguation (`Ident { field ,`), and
// `$name:spec` inside a macro matcher all need to look three tokens past
// the current one before committing to a parse path.
const lookahead = 4

// TokenStream wraps a Lexer with a small ring buffer so the parser can
// peek ahead without having to push tokens back onto the lexer itself.
type TokenStream struct {
	lex  *Lexer
	buf  [lookahead]token.Token
	n    int // number of valid entries in buf, from the front
	prev token.Token
}

// NewTokenStream creates a stream over lex.
func NewTokenStream(lex *Lexer) *TokenStream {
	return &TokenStream{lex: lex}
}

func (s *TokenStream) fill(upto int) {
	for s.n <= upto {
		s.buf[s.n] = s.lex.Next()
		s.n++
	}
}

// Peek returns the token n positions ahead of the cursor without
// consuming it; Peek(0) is the next token Advance would return.
func (s *TokenStream) Peek(n int) token.Token {
	if n < 0 || n >= lookahead {
		panic("lexer: peek distance out of range")
	}
	s.fill(n)
	return s.buf[n]
}

// Advance consumes and returns the next token.
func (s *TokenStream) Advance() token.Token {
	s.fill(0)
	tok := s.buf[0]
	copy(s.buf[:], s.buf[1:])
	s.n--
	s.prev = tok
	return tok
}

// Previous returns the most recently consumed token, or the zero Token
// before the first call to Advance.
func (s *TokenStream) Previous() token.Token {
	return s.prev
}
