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

// keywords maps every reserved word to its Kind. The lexer consults this
// after scanning a maximal identifier run, so that e.g. "fnord" still
// lexes as Identifier rather than KwFn followed by garbage.
var keywords = map[string]Kind{
	"fn":          KwFn,
	"let":         KwLet,
	"const":       KwConst,
	"struct":      KwStruct,
	"enum":        KwEnum,
	"union":       KwUnion,
	"trait":       KwTrait,
	"impl":        KwImpl,
	"macro":       KwMacro,
	"use":         KwUse,
	"extern":      KwExtern,
	"type":        KwType,
	"static":      KwStatic,
	"mut":         KwMut,
	"pub":         KwPub,
	"self":        KwSelfValue,
	"Self":        KwSelfType,
	"if":          KwIf,
	"else":        KwElse,
	"match":       KwMatch,
	"for":         KwFor,
	"in":          KwIn,
	"break":       KwBreak,
	"continue":    KwContinue,
	"return":      KwReturn,
	"defer":       KwDefer,
	"true":        KwTrue,
	"false":       KwFalse,
	"undef":       KwUndef,
	"null":        KwNull,
	"unreachable": KwUnreachable,
	"as":          KwAs,
}

// Lookup returns the Kind for ident if it is a reserved keyword, and
// (Identifier, false) otherwise. "true"/"false" resolve to BoolLiteral
// rather than a Kw* keyword, matching how the parser consumes them as
// literal expressions rather than bare keyword tokens.
func Lookup(ident string) (kind Kind, isKeyword bool) {
	switch ident {
	case "true", "false":
		return BoolLiteral, true
	}
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	return Identifier, false
}

// Keywords returns the vocabulary of reserved words, in no particular
// order. Used to build "did you mean" suggestions for malformed
// identifiers that look like a near-miss keyword.
func Keywords() []string {
	out := make([]string, 0, len(keywords)+2)
	out = append(out, "true", "false")
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
