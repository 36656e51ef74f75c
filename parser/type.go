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

// canStartType reports whether k can open a type expression, used by
// callers deciding whether an optional return type is present (fn
// declarations and fn type expressions).
func canStartType(k token.Kind) bool {
	switch k {
	case token.Identifier, token.KwSelfType, token.Amp, token.Star, token.LBracket,
		token.Question, token.KwFn, token.Bang, token.LParen:
		return true
	default:
		return false
	}
}

// parseType is the type-expression grammar's entry point, parallel to
// parseExpression: a prefix form followed by a suffix loop supporting
// `.Member` path extension, bare `<...>` generic arguments (no `.<`
// turbofish needed — `<` cannot be a less-than comparison in type
// position), and type-level ranges.
func (p *Parser) parseType() (ast.ExprID, error) {
	left, err := p.parseTypePrefix()
	if err != nil {
		return 0, err
	}
	return p.parseTypeSuffix(left)
}

func (p *Parser) parseTypePrefix() (ast.ExprID, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Identifier, token.KwSelfType:
		return p.parseNamedType()
	case token.Amp:
		return p.parseReferenceType()
	case token.Star:
		return p.parseRawPointerType()
	case token.LBracket:
		return p.parseBracketType()
	case token.Question:
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return 0, err
		}
		return p.arena.NewExpr(ast.Expr{
			Kind: ast.ExprOptionalType, Span: source.Merge(tok.Span, p.exprSpan(inner)), Left: inner,
		}), nil
	case token.KwFn:
		return p.parseFnType()
	case token.Bang:
		p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprNeverType, Span: tok.Span}), nil
	case token.LParen:
		return p.parseParenType()
	}
	return 0, p.errorAt(tok.Span, diag.TagExpectedType, "expected type, found %s", tok.Kind)
}

func (p *Parser) parseNamedType() (ast.ExprID, error) {
	tok := p.advance()
	ident := p.identFrom(tok)
	path := ast.Path{Segments: []ast.Ident{ident}, Span: ident.Span}
	return p.arena.NewExpr(ast.Expr{Kind: ast.ExprNamedType, Span: path.Span, Path: path}), nil
}

func (p *Parser) parseReferenceType() (ast.ExprID, error) {
	start := p.advance() // '&'
	mut := p.match(token.KwMut)
	inner, err := p.parseType()
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprPointerType, Span: source.Merge(start.Span, p.exprSpan(inner)), Mut: mut, Left: inner,
	}), nil
}

func (p *Parser) parseRawPointerType() (ast.ExprID, error) {
	start := p.advance() // '*'
	mut := p.match(token.KwMut)
	inner, err := p.parseType()
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprRawPointerType, Span: source.Merge(start.Span, p.exprSpan(inner)), Mut: mut, Left: inner,
	}), nil
}

// parseBracketType parses `[]T` (slice type) or `[N]T` (array type),
// where N is a constant-size expression.
func (p *Parser) parseBracketType() (ast.ExprID, error) {
	start := p.advance() // '['
	if p.match(token.RBracket) {
		elem, err := p.parseType()
		if err != nil {
			return 0, err
		}
		return p.arena.NewExpr(ast.Expr{
			Kind: ast.ExprSliceType, Span: source.Merge(start.Span, p.exprSpan(elem)), Left: elem,
		}), nil
	}
	size, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return 0, err
	}
	elem, err := p.parseType()
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprArrayType, Span: source.Merge(start.Span, p.exprSpan(elem)), Left: elem, Right: size,
	}), nil
}

// parseParenType parses a parenthesized type: `()` the unit type, or a
// single grouped type. Loom's type grammar does not give tuple types
// their own syntax beyond this grouping form.
func (p *Parser) parseParenType() (ast.ExprID, error) {
	start := p.advance() // '('
	if p.check(token.RParen) {
		end := p.advance()
		return p.arena.NewExpr(ast.Expr{Kind: ast.ExprTupleLit, Span: source.Merge(start.Span, end.Span)}), nil
	}
	inner, err := p.parseType()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return 0, err
	}
	return inner, nil
}

// parseTypeSuffix handles the postfix forms of a type expression:
// extending a named type's path (`.Member`), attaching generic
// arguments (`<T, U>`), and type-level ranges (`T..T`, `T..=T`).
func (p *Parser) parseTypeSuffix(left ast.ExprID) (ast.ExprID, error) {
	for {
		switch p.peekKind() {
		case token.Dot:
			if p.peekKindN(1) != token.Identifier {
				return left, nil
			}
			p.advance()
			segTok, err := p.expectIdent()
			if err != nil {
				return 0, err
			}
			seg := p.identFrom(segTok)
			node := p.arena.Expr(left)
			if node.Kind == ast.ExprNamedType {
				segs := append(append([]ast.Ident{}, node.Path.Segments...), seg)
				newPath := ast.Path{Segments: segs, Span: source.Merge(node.Path.Span, seg.Span)}
				left = p.arena.NewExpr(ast.Expr{Kind: ast.ExprNamedType, Span: newPath.Span, Path: newPath})
			} else {
				left = p.arena.NewExpr(ast.Expr{
					Kind: ast.ExprField, Span: source.Merge(node.Span, seg.Span), Left: left, Name: seg.Name,
				})
			}
		case token.Lt:
			p.advance()
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
			node := p.arena.Expr(left)
			if node.Kind == ast.ExprNamedType {
				left = p.arena.NewExpr(ast.Expr{
					Kind: ast.ExprNamedType, Span: source.Merge(node.Span, end.Span),
					Path: node.Path, TypeArgs: args,
				})
			} else {
				left = p.arena.NewExpr(ast.Expr{
					Kind: ast.ExprGenericInst, Span: source.Merge(p.exprSpan(left), end.Span),
					Left: left, TypeArgs: args,
				})
			}
		case token.DotDot, token.DotDotEq:
			op := p.advance()
			hi, err := p.parseType()
			if err != nil {
				return 0, err
			}
			left = p.arena.NewExpr(ast.Expr{
				Kind: ast.ExprRange, Span: source.Merge(p.exprSpan(left), p.exprSpan(hi)),
				Left: left, Right: hi, RangeInclusive: op.Kind == token.DotDotEq,
			})
		default:
			return left, nil
		}
	}
}
