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

package parser

import "github.com/loom-lang/loomc/token"

// precedence orders the operators of the Pratt expression core, from
// loosest-binding to tightest:
//
//	Lowest < Assignment < Range < LogicalOr < LogicalAnd < Equality
//	       < Comparison < Bitwise < Shift < Term < Factor < Prefix < Call
//
// Loom has no distinct `&&`/`||` tokens (see token/kind.go): `|` and `&`
// double as the logical-or/logical-and operators, binding at the
// LogicalOr/LogicalAnd levels; `^` is left as the sole "Bitwise" level,
// between Comparison and Shift.
type precedence int

const (
	precLowest precedence = iota
	precAssignment
	precRange
	precLogicalOr
	precLogicalAnd
	precEquality
	precComparison
	precBitwise
	precShift
	precTerm
	precFactor
	precPrefix
	precCall
)

// assignmentOps are right-associative; every other binary operator in
// the table is left-associative.
var assignmentOps = map[token.Kind]bool{
	token.Assign:    true,
	token.PlusEq:    true,
	token.MinusEq:   true,
	token.StarEq:    true,
	token.SlashEq:   true,
	token.PercentEq: true,
	token.AmpEq:     true,
	token.PipeEq:    true,
	token.CaretEq:   true,
	token.ShlEq:     true,
	token.ShrEq:     true,
}

// infixPrecedence returns the binding power of k used as an infix
// operator, and false if k never starts an infix binary form. Postfix
// forms (call, index, field access, etc.) are dispatched separately in
// parsePostfixOp, since they are not simple left-binary operators.
func infixPrecedence(k token.Kind) (precedence, bool) {
	switch k {
	case token.Assign, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq,
		token.PercentEq, token.AmpEq, token.PipeEq, token.CaretEq, token.ShlEq, token.ShrEq:
		return precAssignment, true
	case token.DotDot, token.DotDotEq:
		return precRange, true
	case token.Pipe:
		return precLogicalOr, true
	case token.Amp:
		return precLogicalAnd, true
	case token.EqEq, token.NotEq:
		return precEquality, true
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, true
	case token.Caret:
		return precBitwise, true
	case token.Shl, token.Shr:
		return precShift, true
	case token.Plus, token.Minus:
		return precTerm, true
	case token.Star, token.Slash, token.Percent:
		return precFactor, true
	case token.KwAs:
		return precPrefix, true
	default:
		return precLowest, false
	}
}

// rightAssociative reports whether k's recursive call into the
// right-hand operand should use one level below k's own precedence as
// its minimum (true), letting a same-level operator nest to the right,
// rather than k's own precedence (false), which stops same-level
// merges. Only assignments are right-associative.
func rightAssociative(k token.Kind) bool {
	return assignmentOps[k]
}

// startsPostfix reports whether k, at Call precedence, starts a
// postfix form: `.field`, `.<T>`, `(args)`, `[i]`, `.?`, `.*`, `!args`.
// Struct-init `{fields}` is handled separately since it is gated by the
// parser's allow-struct-init mode.
func startsPostfix(k token.Kind) bool {
	switch k {
	case token.Dot, token.DotLt, token.DotQuestion, token.DotStar, token.LParen, token.LBracket, token.Bang:
		return true
	default:
		return false
	}
}
