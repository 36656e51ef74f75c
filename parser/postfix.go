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
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

// parseIdentExpr parses a bare identifier (or `self`/`Self`) as an
// ExprIdent. Everything that can follow it — field access, calls,
// struct-init, turbofish — is handled generically by parseInfix's
// postfix dispatch, so this need only build the leaf node.
func (p *Parser) parseIdentExpr() (ast.ExprID, error) {
	tok := p.advance()
	return p.arena.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Name: p.intern(tok)}), nil
}

// parsePostfixOp dispatches a single postfix/infix-at-Call-precedence
// form onto left: field access, turbofish instantiation, propagate,
// deref, call, index, or macro invocation.
func (p *Parser) parsePostfixOp(left ast.ExprID) (ast.ExprID, error) {
	switch p.peekKind() {
	case token.Dot:
		return p.parseFieldAccess(left)
	case token.DotLt:
		return p.parseGenericInst(left)
	case token.DotQuestion:
		tok := p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprPropagate, Span: source.Merge(p.exprSpan(left), tok.Span), Left: left}), nil
	case token.DotStar:
		tok := p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprDeref, Span: source.Merge(p.exprSpan(left), tok.Span), Left: left}), nil
	case token.LParen:
		return p.parseCall(left)
	case token.LBracket:
		return p.parseIndex(left)
	case token.Bang:
		return p.parseMacroCall(left)
	}
	return left, nil
}

func (p *Parser) parseFieldAccess(left ast.ExprID) (ast.ExprID, error) {
	p.advance() // '.'
	name, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	ident := p.identFrom(name)
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprField, Span: source.Merge(p.exprSpan(left), name.Span),
		Left: left, Name: ident.Name,
	}), nil
}

func (p *Parser) parseGenericInst(left ast.ExprID) (ast.ExprID, error) {
	p.advance() // '.<'
	var args []ast.ExprID
	for !p.check(token.Gt) {
		t, err := p.parseType()
		if err != nil {
			return 0, err
		}
		args = append(args, t)
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.Gt)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprGenericInst, Span: source.Merge(p.exprSpan(left), end.Span),
		Left: left, TypeArgs: args,
	}), nil
}

func (p *Parser) parseCall(left ast.ExprID) (ast.ExprID, error) {
	p.advance() // '('
	var args []ast.ExprID
	for !p.check(token.RParen) {
		a, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		args = append(args, a)
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprCall, Span: source.Merge(p.exprSpan(left), end.Span),
		Left: left, Args: args,
	}), nil
}

func (p *Parser) parseIndex(left ast.ExprID) (ast.ExprID, error) {
	p.advance() // '['
	idx, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	end, err := p.expect(token.RBracket)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprIndex, Span: source.Merge(p.exprSpan(left), end.Span),
		Left: left, Right: idx,
	}), nil
}

// parseStructInit parses `Left { name: value, ... }`, including field
// shorthand (`{ x }` meaning `{ x: x }`).
func (p *Parser) parseStructInit(left ast.ExprID) (ast.ExprID, error) {
	p.advance() // '{'
	var fields []ast.StructInitField
	for !p.check(token.RBrace) {
		nameTok, err := p.expectIdent()
		if err != nil {
			return 0, err
		}
		name := p.identFrom(nameTok)
		var value ast.ExprID
		if p.match(token.Colon) {
			v, err := p.parseExpression(precLowest)
			if err != nil {
				return 0, err
			}
			value = v
		} else {
			value = p.arena.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: name.Span, Name: name.Name})
		}
		fields = append(fields, ast.StructInitField{Name: name, Value: value})
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprStructInit, Span: source.Merge(p.exprSpan(left), end.Span),
		Left: left, Fields: fields,
	}), nil
}

// parseBracketPrefix parses the four forms opened by `[`: an array
// literal `[e, ...]`, a repeated array `[e; n]`, a slice type `[]T`, or
// an array type `[N]T`. The choice between the literal and type forms
// is made by whether the brackets are empty or hold a single expression
// immediately followed by `]`.
func (p *Parser) parseBracketPrefix() (ast.ExprID, error) {
	start := p.advance() // '['
	if p.check(token.RBracket) {
		p.advance()
		elem, err := p.parseExpression(precPrefix)
		if err != nil {
			return 0, err
		}
		return p.arena.NewExpr(ast.Expr{
			Kind: ast.ExprSliceType, Span: source.Merge(start.Span, p.exprSpan(elem)),
			Left: elem,
		}), nil
	}

	first, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	switch {
	case p.match(token.Semicolon):
		// `[value; count]` repeated array literal.
		count, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		end, err := p.expect(token.RBracket)
		if err != nil {
			return 0, err
		}
		return p.arena.NewExpr(ast.Expr{
			Kind: ast.ExprArrayRepeat, Span: source.Merge(start.Span, end.Span),
			Left: first, Right: count,
		}), nil
	case p.check(token.RBracket):
		// `[N]` immediately followed by `]` then a type: array type.
		if _, err := p.expect(token.RBracket); err != nil {
			return 0, err
		}
		elem, err := p.parseExpression(precPrefix)
		if err != nil {
			return 0, err
		}
		return p.arena.NewExpr(ast.Expr{
			Kind: ast.ExprArrayType, Span: source.Merge(start.Span, p.exprSpan(elem)),
			Left: elem, Right: first,
		}), nil
	}

	elems := []ast.ExprID{first}
	for p.match(token.Comma) {
		if p.check(token.RBracket) {
			break
		}
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		elems = append(elems, e)
	}
	end, err := p.expect(token.RBracket)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprArrayLit, Span: source.Merge(start.Span, end.Span), Args: elems,
	}), nil
}

// parseIfExpr parses `if cond { then } [else (if ... | { ... })]`. The
// condition is parsed with struct-init disallowed, so that the `{`
// opening the then-branch can't be mistaken for a struct literal.
func (p *Parser) parseIfExpr() (ast.ExprID, error) {
	start := p.advance() // 'if'
	cond, err := p.withStructInit(false, func() (ast.ExprID, error) { return p.parseExpression(precLowest) })
	if err != nil {
		return 0, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	span := source.Merge(start.Span, p.arena.Block(then).Span)
	var elseExpr ast.ExprID
	if p.match(token.KwElse) {
		if p.check(token.KwIf) {
			e, err := p.parseIfExpr()
			if err != nil {
				return 0, err
			}
			elseExpr = e
		} else {
			blk, err := p.parseBlock()
			if err != nil {
				return 0, err
			}
			elseExpr = p.arena.NewExpr(ast.Expr{Kind: ast.ExprBlock, Span: p.arena.Block(blk).Span, Body: blk})
		}
		span = source.Merge(span, p.exprSpan(elseExpr))
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprIf, Span: span, Cond: cond, Then: then, Else: elseExpr,
	}), nil
}

// parseMatchExpr parses `match scrutinee { pattern [if guard] => body, ... }`.
// The scrutinee is parsed with struct-init disallowed, for the same
// reason as an if-condition: the arm list's opening `{` would otherwise
// be ambiguous with a struct literal.
func (p *Parser) parseMatchExpr() (ast.ExprID, error) {
	start := p.advance() // 'match'
	subject, err := p.withStructInit(false, func() (ast.ExprID, error) { return p.parseExpression(precLowest) })
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return 0, err
	}
	var arms []ast.MatchArm
	for !p.check(token.RBrace) {
		pat, err := p.parsePattern()
		if err != nil {
			return 0, err
		}
		var guard ast.ExprID
		if p.match(token.KwIf) {
			g, err := p.parseExpression(precLowest)
			if err != nil {
				return 0, err
			}
			guard = g
		}
		if _, err := p.expect(token.FatArrow); err != nil {
			return 0, err
		}
		body, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if !p.match(token.Comma) {
			if p.check(token.RBrace) {
				break
			}
		}
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprMatch, Span: source.Merge(start.Span, end.Span), Subject: subject, Arms: arms,
	}), nil
}

// parseFnType parses `fn(params) RetType?` as a type expression.
func (p *Parser) parseFnType() (ast.ExprID, error) {
	start := p.advance() // 'fn'
	if _, err := p.expect(token.LParen); err != nil {
		return 0, err
	}
	var params []ast.Param
	for !p.check(token.RParen) {
		t, err := p.parseType()
		if err != nil {
			return 0, err
		}
		params = append(params, ast.Param{Type: t})
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return 0, err
	}
	span := source.Merge(start.Span, end.Span)
	var ret ast.ExprID
	if canStartType(p.peekKind()) {
		r, err := p.parseType()
		if err != nil {
			return 0, err
		}
		ret = r
		span = source.Merge(span, p.exprSpan(ret))
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprFnType, Span: span, Params: params, RetType: ret,
	}), nil
}
