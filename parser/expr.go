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

import (
	"github.com/loom-lang/loomc/ast"
	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

// parseExpression is the single Pratt entry point driving all
// expression parsing: a prefix form, followed by a loop of infix and
// postfix forms whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec precedence) (ast.ExprID, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return 0, err
	}
	return p.parseInfix(left, minPrec)
}

func (p *Parser) parseInfix(left ast.ExprID, minPrec precedence) (ast.ExprID, error) {
	for {
		if precCall > minPrec && startsPostfix(p.peekKind()) {
			next, err := p.parsePostfixOp(left)
			if err != nil {
				return 0, err
			}
			left = next
			continue
		}
		if precCall > minPrec && p.check(token.LBrace) && p.allowStructInit && p.looksLikeStructInit() {
			next, err := p.parseStructInit(left)
			if err != nil {
				return 0, err
			}
			left = next
			continue
		}

		op := p.peek()
		prec, ok := infixPrecedence(op.Kind)
		if !ok || prec <= minPrec {
			return left, nil
		}
		p.advance()

		if op.Kind == token.KwAs {
			target, err := p.parseType()
			if err != nil {
				return 0, err
			}
			left = p.arena.NewExpr(ast.Expr{
				Kind: ast.ExprCast,
				Span: source.Merge(p.exprSpan(left), p.exprSpan(target)),
				Left: left,
				Type: target,
			})
			continue
		}

		if op.Kind == token.DotDot || op.Kind == token.DotDotEq {
			var right ast.ExprID
			if canStartExpr(p.peekKind()) {
				r, err := p.parseExpression(prec)
				if err != nil {
					return 0, err
				}
				right = r
			} else if op.Kind == token.DotDotEq {
				return 0, p.errorAt(op.Span, diag.TagRequiresUpperBound,
					"inclusive range requires an upper bound")
			}
			span := p.exprSpan(left)
			if !right.Nil() {
				span = source.Merge(span, p.exprSpan(right))
			} else {
				span = source.Merge(span, op.Span)
			}
			left = p.arena.NewExpr(ast.Expr{
				Kind: ast.ExprRange, Span: span, Left: left, Right: right,
				RangeInclusive: op.Kind == token.DotDotEq,
			})
			continue
		}

		nextMin := prec
		if rightAssociative(op.Kind) {
			nextMin = prec - 1
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return 0, err
		}
		kind := ast.ExprBinary
		if assignmentOps[op.Kind] {
			kind = ast.ExprAssign
		}
		left = p.arena.NewExpr(ast.Expr{
			Kind: kind, Span: source.Merge(p.exprSpan(left), p.exprSpan(right)),
			Op: op.Kind, Left: left, Right: right,
		})
	}
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if id.Nil() {
		return source.Span{}
	}
	return p.arena.Expr(id).Span
}

// canStartExpr reports whether k can open a prefix expression form,
// used to detect the absent operand of an open-ended range (`0..`,
// `..5`).
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral, token.CharLiteral,
		token.BoolLiteral, token.KwUndef, token.KwNull, token.KwUnreachable,
		token.Identifier, token.Underscore, token.KwSelfValue, token.KwSelfType,
		token.LParen, token.Minus, token.Bang, token.Tilde, token.Hash, token.Question,
		token.Amp, token.Star, token.LBracket, token.KwIf, token.KwMatch, token.LBrace,
		token.KwFn, token.DotDot, token.DotDotEq:
		return true
	default:
		return false
	}
}

// parsePrefix dispatches on the current token to parse a prefix
// expression form: a literal, identifier, grouped/tuple expression,
// prefix operator, aggregate literal, or control-flow expression.
func (p *Parser) parsePrefix() (ast.ExprID, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLiteral:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprInt, Span: tok.Span, IntValue: parseIntText(p.text(tok))}), nil
	case token.FloatLiteral:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprFloat, Span: tok.Span, FloatValue: parseFloatText(p.text(tok))}), nil
	case token.StringLiteral:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprString, Span: tok.Span, StringValue: unescapeString(p.text(tok))}), nil
	case token.CharLiteral:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprChar, Span: tok.Span, CharValue: unescapeChar(p.text(tok))}), nil
	case token.BoolLiteral:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprBool, Span: tok.Span, BoolValue: p.text(tok) == "true"}), nil
	case token.KwUndef:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprUndef, Span: tok.Span}), nil
	case token.KwNull:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprNull, Span: tok.Span}), nil
	case token.KwUnreachable:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprUnreachable, Span: tok.Span}), nil
	case token.Bang:
		return p.parseUnary(token.Bang)
	case token.Tilde:
		return p.parseUnary(token.Tilde)
	case token.Hash:
		return p.parseUnary(token.Hash)
	case token.Question:
		return p.parseUnary(token.Question)
	case token.Minus:
		return p.parseUnary(token.Minus)
	case token.Amp:
		return p.parseAddressOf()
	case token.Star:
		return p.parseRawPointerTypePrefix()
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseBracketPrefix()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.LBrace:
		blk, err := p.parseBlock()
		if err != nil {
			return 0, err
		}
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprBlock, Span: p.arena.Block(blk).Span, Body: blk}), nil
	case token.KwFn:
		return p.parseFnType()
	case token.DotDot, token.DotDotEq:
		return p.parseUnaryRange()
	case token.Identifier, token.KwSelfValue, token.KwSelfType:
		return p.parseIdentExpr()
	case token.Underscore:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: tok.Span}), nil
	}
	return 0, p.errorAt(tok.Span, diag.TagExpectedExpression, "expected expression, found %s", tok.Kind)
}

func (p *Parser) parseUnary(op token.Kind) (ast.ExprID, error) {
	start := p.advance()
	operand, err := p.parseExpression(precPrefix)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprUnary, Span: source.Merge(start.Span, p.exprSpan(operand)),
		Op: op, Left: operand,
	}), nil
}

// parseAddressOf parses `&expr` or `&mut expr`.
func (p *Parser) parseAddressOf() (ast.ExprID, error) {
	start := p.advance()
	mut := p.match(token.KwMut)
	operand, err := p.parseExpression(precPrefix)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprUnary, Span: source.Merge(start.Span, p.exprSpan(operand)),
		Op: token.Amp, Mut: mut, Left: operand,
	}), nil
}

// parseRawPointerTypePrefix parses `*T` / `*mut T`, a raw-pointer type
// expression; dereferencing an existing value is spelled postfix `.*`.
func (p *Parser) parseRawPointerTypePrefix() (ast.ExprID, error) {
	start := p.advance()
	mut := p.match(token.KwMut)
	inner, err := p.parseExpression(precPrefix)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprRawPointerType, Span: source.Merge(start.Span, p.exprSpan(inner)),
		Mut: mut, Left: inner,
	}), nil
}

// parseUnaryRange parses a prefix range with an absent lower bound:
// `..5` or `..=5`.
func (p *Parser) parseUnaryRange() (ast.ExprID, error) {
	start := p.advance()
	inclusive := p.previous().Kind == token.DotDotEq
	var right ast.ExprID
	if canStartExpr(p.peekKind()) {
		r, err := p.parseExpression(precRange)
		if err != nil {
			return 0, err
		}
		right = r
	} else if inclusive {
		return 0, p.errorAt(start.Span, diag.TagRequiresUpperBound, "inclusive range requires an upper bound")
	}
	span := start.Span
	if !right.Nil() {
		span = source.Merge(span, p.exprSpan(right))
	}
	return p.arena.NewExpr(ast.Expr{Kind: ast.ExprRange, Span: span, Right: right, RangeInclusive: inclusive}), nil
}

// parseParenOrTuple parses `()` (unit), `(e)` (grouping), or `(e, ...)`
// (a tuple literal). A trailing comma before the closing paren is
// always accepted.
func (p *Parser) parseParenOrTuple() (ast.ExprID, error) {
	start := p.advance() // '('
	if p.check(token.RParen) {
		end := p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprTupleLit, Span: source.Merge(start.Span, end.Span)}), nil
	}
	first, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	if p.check(token.RParen) {
		// A single parenthesized expression with no trailing comma is a
		// grouping, not a tuple: it is transparent, returning the inner
		// expression itself.
		if _, err := p.expect(token.RParen); err != nil {
			return 0, err
		}
		return first, nil
	}
	elems := []ast.ExprID{first}
	for p.match(token.Comma) {
		if p.check(token.RParen) {
			break
		}
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		elems = append(elems, e)
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{Kind: ast.ExprTupleLit, Span: source.Merge(start.Span, end.Span), Args: elems}), nil
}

func (p *Parser) looksLikeStructInit() bool {
	if p.peekKindN(1) == token.RBrace {
		return true
	}
	if p.peekKindN(1) == token.Identifier {
		switch p.peekKindN(2) {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	return false
}
