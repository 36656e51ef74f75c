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

// declStarter reports whether k opens a nested declaration in
// statement position: every declaration keyword (plus `pub`) except
// `const`, which in a block is parsed as a StmtConst binding instead.
func declStarter(k token.Kind) bool {
	switch k {
	case token.KwPub, token.KwFn, token.KwStruct, token.KwEnum, token.KwUnion,
		token.KwTrait, token.KwImpl, token.KwMacro, token.KwUse, token.KwType,
		token.KwStatic, token.KwExtern:
		return true
	default:
		return false
	}
}

// isNaturalBoundary reports whether an expression kind has a natural
// closing brace that lets it stand as a statement without a trailing
// `;`.
func isNaturalBoundary(k ast.ExprKind) bool {
	switch k {
	case ast.ExprIf, ast.ExprMatch, ast.ExprBlock:
		return true
	default:
		return false
	}
}

// parseBlock parses a brace-delimited sequence of statements, ending
// optionally in a tail expression with no trailing `;` (its value when
// the block is used in expression position).
func (p *Parser) parseBlock() (ast.BlockID, error) {
	start, err := p.expect(token.LBrace)
	if err != nil {
		return 0, err
	}

	var stmts []ast.StmtID
	var tail ast.ExprID

loop:
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		switch {
		case p.checkAny(token.KwLet, token.KwConst, token.KwFor, token.KwReturn,
			token.KwBreak, token.KwContinue, token.KwDefer) || declStarter(p.peekKind()):
			stmt, err := p.parseStatement()
			if err != nil {
				p.synchronize()
				continue
			}
			stmts = append(stmts, stmt)

		default:
			expr, err := p.parseExpression(precLowest)
			if err != nil {
				p.synchronize()
				continue
			}
			switch {
			case p.match(token.Semicolon):
				stmts = append(stmts, p.arena.NewStmt(ast.Stmt{
					Kind: ast.StmtExpr, Span: p.exprSpan(expr), Expr: expr,
				}))
			case p.check(token.RBrace):
				tail = expr
				break loop
			case isNaturalBoundary(p.arena.Expr(expr).Kind):
				stmts = append(stmts, p.arena.NewStmt(ast.Stmt{
					Kind: ast.StmtExpr, Span: p.exprSpan(expr), Expr: expr,
				}))
			default:
				p.errorAt(p.peek().Span, diag.TagExpectedSemicolon,
					"expected ';' after expression, found %s", p.peekKind())
				p.synchronize()
			}
		}
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	return p.arena.NewBlock(ast.Block{
		Span: source.Merge(start.Span, end.Span), Stmts: stmts, Tail: tail,
	}), nil
}

// parseStatement dispatches a single non-expression statement: a `let`
// or `const` binding, a control-flow statement, or a nested declaration.
// The expression-statement / tail-expression case is handled directly
// by parseBlock's loop, since only it can tell the two apart.
func (p *Parser) parseStatement() (ast.StmtID, error) {
	switch p.peekKind() {
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwConst:
		return p.parseLocalConstStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		return p.parseBreakStmt()
	case token.KwContinue:
		return p.parseContinueStmt()
	case token.KwDefer:
		return p.parseDeferStmt()
	default:
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			return 0, err
		}
		span := p.arena.Decl(decl).Span
		return p.arena.NewStmt(ast.Stmt{Kind: ast.StmtDecl, Span: span, Decl: decl}), nil
	}
}

// parseLetStmt parses `let pattern [: Type] [= value] ;`.
func (p *Parser) parseLetStmt() (ast.StmtID, error) {
	start := p.advance() // 'let'
	pat, err := p.parsePattern()
	if err != nil {
		return 0, err
	}
	var typeAnn ast.ExprID
	if p.match(token.Colon) {
		typeAnn, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	var value ast.ExprID
	if p.match(token.Assign) {
		value, err = p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewStmt(ast.Stmt{
		Kind: ast.StmtLet, Span: source.Merge(start.Span, end.Span),
		Pattern: pat, TypeAnn: typeAnn, Value: value,
	}), nil
}

// parseLocalConstStmt parses a block-local `const pattern [: Type] =
// value ;`. A `const` appearing in declaration position (module,
// struct, trait, impl, extern) instead binds a single name and is
// parsed as a DeclGlobalConst by parseGlobalVarDecl; this local form
// shares let's pattern-based binding shape since a local constant can
// be destructured exactly like a local variable.
func (p *Parser) parseLocalConstStmt() (ast.StmtID, error) {
	start := p.advance() // 'const'
	pat, err := p.parsePattern()
	if err != nil {
		return 0, err
	}
	var typeAnn ast.ExprID
	if p.match(token.Colon) {
		typeAnn, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.expect(token.Assign); err != nil {
		return 0, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewStmt(ast.Stmt{
		Kind: ast.StmtConst, Span: source.Merge(start.Span, end.Span),
		Pattern: pat, TypeAnn: typeAnn, Value: value,
	}), nil
}

// parseForStmt disambiguates and parses either form of `for`: a
// for-in loop (`for pattern in iterable { body }`) or the strict
// three-part classic form (`for init; cond; post { body }`), including
// the fully-empty infinite sugar `for {}`. Telling the two apart in
// general requires unbounded lookahead past a pattern; within the
// parser's 4-token budget this recognizes the common shapes (`ident
// in`, `_ in`, `mut ident in`) and falls back to the classic form
// otherwise.
func (p *Parser) parseForStmt() (ast.StmtID, error) {
	start := p.advance() // 'for'

	looksLikeForIn := (p.checkAny(token.Identifier, token.Underscore) && p.peekKindN(1) == token.KwIn) ||
		(p.check(token.KwMut) && p.peekKindN(1) == token.Identifier && p.peekKindN(2) == token.KwIn)
	if looksLikeForIn {
		return p.parseForIn(start)
	}
	return p.parseForClassic(start)
}

func (p *Parser) parseForIn(start token.Token) (ast.StmtID, error) {
	pat, err := p.parsePattern()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.KwIn); err != nil {
		return 0, err
	}
	iterable, err := p.withStructInit(false, func() (ast.ExprID, error) { return p.parseExpression(precLowest) })
	if err != nil {
		return 0, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	span := source.Merge(start.Span, p.arena.Block(body).Span)
	return p.arena.NewStmt(ast.Stmt{
		Kind: ast.StmtForIn, Span: span, ForPattern: pat, Iterable: iterable, Body: body,
	}), nil
}

func (p *Parser) parseForClassic(start token.Token) (ast.StmtID, error) {
	if p.check(token.LBrace) {
		body, err := p.parseBlock()
		if err != nil {
			return 0, err
		}
		span := source.Merge(start.Span, p.arena.Block(body).Span)
		return p.arena.NewStmt(ast.Stmt{Kind: ast.StmtForClassic, Span: span, Body: body}), nil
	}

	var init ast.StmtID
	if p.check(token.Semicolon) {
		p.advance()
	} else if p.check(token.KwLet) {
		s, err := p.parseLetStmt()
		if err != nil {
			return 0, err
		}
		init = s
	} else {
		e, err := p.withStructInit(false, func() (ast.ExprID, error) { return p.parseExpression(precLowest) })
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return 0, err
		}
		init = p.arena.NewStmt(ast.Stmt{Kind: ast.StmtExpr, Span: p.exprSpan(e), Expr: e})
	}

	var cond ast.ExprID
	if !p.check(token.Semicolon) {
		c, err := p.withStructInit(false, func() (ast.ExprID, error) { return p.parseExpression(precLowest) })
		if err != nil {
			return 0, err
		}
		cond = c
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return 0, err
	}

	var post ast.StmtID
	if !p.check(token.LBrace) {
		e, err := p.withStructInit(false, func() (ast.ExprID, error) { return p.parseExpression(precLowest) })
		if err != nil {
			return 0, err
		}
		post = p.arena.NewStmt(ast.Stmt{Kind: ast.StmtExpr, Span: p.exprSpan(e), Expr: e})
	}

	body, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	span := source.Merge(start.Span, p.arena.Block(body).Span)
	return p.arena.NewStmt(ast.Stmt{
		Kind: ast.StmtForClassic, Span: span, Init: init, Cond: cond, Post: post, Body: body,
	}), nil
}

// parseReturnStmt parses `return [expr] ;`.
func (p *Parser) parseReturnStmt() (ast.StmtID, error) {
	start := p.advance() // 'return'
	var val ast.ExprID
	if !p.check(token.Semicolon) {
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		val = v
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewStmt(ast.Stmt{Kind: ast.StmtReturn, Span: source.Merge(start.Span, end.Span), Expr: val}), nil
}

// parseBreakStmt parses `break [expr] ;`.
func (p *Parser) parseBreakStmt() (ast.StmtID, error) {
	start := p.advance() // 'break'
	var val ast.ExprID
	if !p.check(token.Semicolon) {
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return 0, err
		}
		val = v
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewStmt(ast.Stmt{Kind: ast.StmtBreak, Span: source.Merge(start.Span, end.Span), Expr: val}), nil
}

// parseContinueStmt parses `continue ;`.
func (p *Parser) parseContinueStmt() (ast.StmtID, error) {
	start := p.advance() // 'continue'
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewStmt(ast.Stmt{Kind: ast.StmtContinue, Span: source.Merge(start.Span, end.Span)}), nil
}

// parseDeferStmt parses `defer expr ;`.
func (p *Parser) parseDeferStmt() (ast.StmtID, error) {
	start := p.advance() // 'defer'
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return 0, err
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewStmt(ast.Stmt{Kind: ast.StmtDefer, Span: source.Merge(start.Span, end.Span), Expr: expr}), nil
}
