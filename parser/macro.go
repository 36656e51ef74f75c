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

// parseMacroCall parses `callee! delim ... delim`, the matching
// close-delimiter ending the argument. Expansion is out of scope: the
// parser records only the raw, balanced token stream between the
// delimiters.
func (p *Parser) parseMacroCall(callee ast.ExprID) (ast.ExprID, error) {
	p.advance() // '!'
	openKind := p.peekKind()
	closeKind, ok := macroDelimClose(openKind)
	if !ok {
		return 0, p.unexpected(diag.TagUnexpectedToken, "expected macro argument delimiter, found %s", openKind)
	}
	p.advance() // opening delimiter
	toks, end, err := p.captureTokenTree(openKind, closeKind)
	if err != nil {
		return 0, err
	}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprMacroCall, Span: source.Merge(p.exprSpan(callee), end.Span),
		Left: callee, MacroArgs: toks, MacroDelim: openKind,
	}), nil
}

func macroDelimClose(open token.Kind) (token.Kind, bool) {
	switch open {
	case token.LParen:
		return token.RParen, true
	case token.LBracket:
		return token.RBracket, true
	case token.LBrace:
		return token.RBrace, true
	default:
		return token.Illegal, false
	}
}

// captureTokenTree consumes tokens up to and including the close
// delimiter matching the already-consumed open delimiter, tracking
// balanced `{}`/`()`/`[]` nesting regardless of bracket kind. The
// recorded token list excludes the outer delimiter pair itself.
func (p *Parser) captureTokenTree(openKind, closeKind token.Kind) ([]ast.MacroToken, token.Token, error) {
	var toks []ast.MacroToken
	depth := 1
	for {
		if p.check(token.Eof) {
			return nil, token.Token{}, p.unexpected(diag.TagUnclosedMacroArgument, "unexpected end of file in macro arguments")
		}
		tok := p.peek()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				if tok.Kind != closeKind {
					return nil, token.Token{}, p.errorAt(tok.Span, diag.TagUnbalancedMacroDelimiter,
						"mismatched macro delimiter: expected %s, found %s", closeKind, tok.Kind)
				}
				p.advance()
				return toks, tok, nil
			}
		}
		p.advance()
		toks = append(toks, ast.MacroToken{Kind: tok.Kind, Text: p.text(tok), Span: tok.Span})
	}
}

// parseMacroDecl parses `macro Name { (matcher) => body ; ... }`.
func (p *Parser) parseMacroDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	if _, err := p.expect(token.LBrace); err != nil {
		return 0, err
	}
	var rules []ast.MacroRule
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		rule, err := p.parseMacroRule()
		if err != nil {
			return 0, err
		}
		rules = append(rules, rule)
		p.match(token.Semicolon)
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclMacro, Span: source.Merge(start.Span, end.Span), Pub: pub, Name: name, Rules: rules,
	}), nil
}

func (p *Parser) parseMacroRule() (ast.MacroRule, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return ast.MacroRule{}, err
	}
	matcher, err := p.parseMacroMatcherSeq(token.RParen)
	if err != nil {
		return ast.MacroRule{}, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.MacroRule{}, err
	}
	if _, err := p.expect(token.FatArrow); err != nil {
		return ast.MacroRule{}, err
	}
	body, err := p.parseMacroBody()
	if err != nil {
		return ast.MacroRule{}, err
	}
	return ast.MacroRule{Matcher: matcher, Body: body}, nil
}

func (p *Parser) parseMacroMatcherSeq(closeKind token.Kind) ([]ast.MacroMatcher, error) {
	var seq []ast.MacroMatcher
	for !p.check(closeKind) && !p.check(token.Eof) {
		m, err := p.parseMacroMatcher()
		if err != nil {
			return nil, err
		}
		seq = append(seq, m)
	}
	return seq, nil
}

// parseMacroMatcher parses one matcher entry: a literal token, a
// `$name:spec` capture, or a `$(sub) sep? op` repetition. Repetitions
// nest: their Sub sequence is parsed with this same function, so a
// repetition containing another repetition parses (and is represented)
// recursively.
func (p *Parser) parseMacroMatcher() (ast.MacroMatcher, error) {
	if p.check(token.Dollar) {
		return p.parseMacroDollar()
	}
	tok := p.advance()
	return ast.MacroMatcher{
		Kind: ast.MatcherToken, Span: tok.Span,
		Token: ast.MacroToken{Kind: tok.Kind, Text: p.text(tok), Span: tok.Span},
	}, nil
}

func (p *Parser) parseMacroDollar() (ast.MacroMatcher, error) {
	start := p.advance() // '$'
	if p.check(token.LParen) {
		p.advance()
		sub, err := p.parseMacroMatcherSeq(token.RParen)
		if err != nil {
			return ast.MacroMatcher{}, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ast.MacroMatcher{}, err
		}
		var sep *ast.MacroToken
		if !p.checkAny(token.Star, token.Plus, token.Question) {
			sepTok := p.advance()
			sep = &ast.MacroToken{Kind: sepTok.Kind, Text: p.text(sepTok), Span: sepTok.Span}
		}
		opTok, err := p.expectOneOf(token.Star, token.Plus, token.Question)
		if err != nil {
			return ast.MacroMatcher{}, err
		}
		return ast.MacroMatcher{
			Kind: ast.MatcherRepetition, Span: source.Merge(start.Span, opTok.Span),
			Sub: sub, Sep: sep, Op: opTok.Kind,
		}, nil
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return ast.MacroMatcher{}, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.MacroMatcher{}, err
	}
	specTok := p.advance()
	fragment, ok := macroFragmentKind(p.text(specTok))
	if !ok {
		return ast.MacroMatcher{}, p.errorAt(specTok.Span, diag.TagUnknownMacroFragment,
			"unknown macro fragment specifier %q", p.text(specTok))
	}
	return ast.MacroMatcher{
		Kind: ast.MatcherCapture, Span: source.Merge(start.Span, specTok.Span),
		CaptureName: p.intern(nameTok), Fragment: fragment,
	}, nil
}

func macroFragmentKind(spec string) (ast.MacroFragmentKind, bool) {
	switch spec {
	case "expr":
		return ast.FragmentExpr, true
	case "ident":
		return ast.FragmentIdent, true
	case "ty", "type":
		return ast.FragmentType, true
	case "stmt":
		return ast.FragmentStmt, true
	case "block":
		return ast.FragmentBlock, true
	case "path":
		return ast.FragmentPath, true
	case "literal":
		return ast.FragmentLiteral, true
	case "tt":
		return ast.FragmentTokenTree, true
	default:
		return ast.FragmentInvalid, false
	}
}

// parseMacroBody captures a macro rule's body as a raw, unparsed token
// tree, exactly like a macro call's arguments: expansion (substituting
// captures into it) is a later pass.
func (p *Parser) parseMacroBody() ([]ast.MacroToken, error) {
	openKind := p.peekKind()
	closeKind, ok := macroDelimClose(openKind)
	if !ok {
		return nil, p.unexpected(diag.TagUnexpectedToken, "expected macro rule body, found %s", openKind)
	}
	p.advance()
	toks, _, err := p.captureTokenTree(openKind, closeKind)
	return toks, err
}

func (p *Parser) expectOneOf(kinds ...token.Kind) (token.Token, error) {
	if p.checkAny(kinds...) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(diag.TagUnexpectedToken, "expected one of %v, found %s", kinds, p.peekKind())
}
