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

// parsePattern parses a single pattern, then wraps it in a PatternOr if
// followed by `|`, Loom's pattern-alternation operator. `|` at the head
// of a match arm (`| A | B => ...`) is accepted by simply treating a
// leading alternative like any other.
func (p *Parser) parsePattern() (ast.PatternID, error) {
	p.match(token.Pipe) // optional leading `|`
	first, err := p.parsePatternPrimary()
	if err != nil {
		return 0, err
	}
	if !p.check(token.Pipe) {
		return first, nil
	}
	elems := []ast.PatternID{first}
	for p.match(token.Pipe) {
		next, err := p.parsePatternPrimary()
		if err != nil {
			return 0, err
		}
		elems = append(elems, next)
	}
	span := source.Merge(p.arena.Pattern(first).Span, p.arena.Pattern(elems[len(elems)-1]).Span)
	return p.arena.NewPattern(ast.Pattern{Kind: ast.PatternOr, Span: span, Elems: elems}), nil
}

// parsePatternPrimary parses one pattern, excluding the `|` alternation
// operator handled by parsePattern.
func (p *Parser) parsePatternPrimary() (ast.PatternID, error) {
	base, err := p.parsePatternAtom()
	if err != nil {
		return 0, err
	}
	return p.parsePatternRangeSuffix(base)
}

// parsePatternRangeSuffix extends a pattern into a range pattern
// (`lo..hi`, `lo..=hi`) when followed by a range operator and the
// pattern parsed so far is a literal.
func (p *Parser) parsePatternRangeSuffix(lo ast.PatternID) (ast.PatternID, error) {
	if !p.checkAny(token.DotDot, token.DotDotEq) {
		return lo, nil
	}
	loPat := p.arena.Pattern(lo)
	if loPat.Kind != ast.PatternLiteral {
		return lo, nil
	}
	op := p.advance()
	hi, err := p.parsePatternAtom()
	if err != nil {
		return 0, err
	}
	hiPat := p.arena.Pattern(hi)
	if hiPat.Kind != ast.PatternLiteral {
		return 0, p.errorAt(hiPat.Span, diag.TagExpectedExpression, "expected a literal upper bound in range pattern")
	}
	return p.arena.NewPattern(ast.Pattern{
		Kind: ast.PatternRange, Span: source.Merge(loPat.Span, hiPat.Span),
		RangeStart: loPat.Literal, RangeEnd: hiPat.Literal, RangeInclusive: op.Kind == token.DotDotEq,
	}), nil
}

func (p *Parser) parsePatternAtom() (ast.PatternID, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return p.arena.NewPattern(ast.Pattern{Kind: ast.PatternWildcard, Span: tok.Span}), nil
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral, token.CharLiteral, token.BoolLiteral,
		token.KwNull, token.Minus:
		return p.parseLiteralPattern()
	case token.KwMut:
		return p.parseBindingPattern()
	case token.LParen:
		return p.parseTuplePattern()
	case token.Amp:
		return p.parseReferencePattern()
	case token.Identifier, token.KwSelfType:
		if tok.Kind == token.Identifier && p.peekKindN(1) == token.At {
			return p.parseBindingPattern()
		}
		return p.parsePathPattern()
	}
	return 0, p.errorAt(tok.Span, diag.TagExpectedPattern, "expected pattern, found %s", tok.Kind)
}

// parseLiteralPattern parses an integer, float, string, char, bool, or
// null literal (optionally negated) as a pattern, reusing the
// expression-literal parser so the literal payload lives in one place.
func (p *Parser) parseLiteralPattern() (ast.PatternID, error) {
	lit, err := p.parseExpression(precPrefix)
	if err != nil {
		return 0, err
	}
	span := p.exprSpan(lit)
	return p.arena.NewPattern(ast.Pattern{Kind: ast.PatternLiteral, Span: span, Literal: lit}), nil
}

// parseBindingPattern parses `mut? name [@ subpattern]`.
func (p *Parser) parseBindingPattern() (ast.PatternID, error) {
	start := p.peek()
	mut := p.match(token.KwMut)
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	span := name.Span
	if mut {
		span = source.Merge(start.Span, span)
	}
	var sub ast.PatternID
	if p.match(token.At) {
		s, err := p.parsePatternPrimary()
		if err != nil {
			return 0, err
		}
		sub = s
		span = source.Merge(span, p.arena.Pattern(sub).Span)
	}
	return p.arena.NewPattern(ast.Pattern{
		Kind: ast.PatternBinding, Span: span, Name: name, Sub: sub, Mut: mut,
	}), nil
}

// parseTuplePattern parses `(p, p, ...)`, accepting a trailing comma.
func (p *Parser) parseTuplePattern() (ast.PatternID, error) {
	start := p.advance() // '('
	var elems []ast.PatternID
	for !p.check(token.RParen) {
		e, err := p.parsePattern()
		if err != nil {
			return 0, err
		}
		elems = append(elems, e)
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return 0, err
	}
	return p.arena.NewPattern(ast.Pattern{
		Kind: ast.PatternTuple, Span: source.Merge(start.Span, end.Span), Elems: elems,
	}), nil
}

// parseReferencePattern parses `&pat` or `&mut pat`.
func (p *Parser) parseReferencePattern() (ast.PatternID, error) {
	start := p.advance() // '&'
	mut := p.match(token.KwMut)
	inner, err := p.parsePatternPrimary()
	if err != nil {
		return 0, err
	}
	return p.arena.NewPattern(ast.Pattern{
		Kind: ast.PatternReference, Span: source.Merge(start.Span, p.arena.Pattern(inner).Span),
		Sub: inner, Mut: mut,
	}), nil
}

// parsePathPattern parses everything rooted in a (possibly dotted) path:
// a bare binding (`name`), a qualified enum variant (`Type.Variant`,
// `Type.Variant(pats)`, `Type.Variant { fields }`), or a struct pattern
// (`Type { fields }`). A lone identifier with no following `(`/`{`/`.`
// is a binding, not a zero-argument variant, since Loom has no way to
// otherwise distinguish a capture from a unit-variant match at parse
// time; later passes resolve against the declared enum/struct to tell
// them apart.
func (p *Parser) parsePathPattern() (ast.PatternID, error) {
	first := p.advance()
	segs := []ast.Ident{p.identFrom(first)}
	span := segs[0].Span
	for p.check(token.Dot) && p.peekKindN(1) == token.Identifier {
		p.advance()
		segTok, err := p.expectIdent()
		if err != nil {
			return 0, err
		}
		seg := p.identFrom(segTok)
		segs = append(segs, seg)
		span = source.Merge(span, seg.Span)
	}
	path := ast.Path{Segments: segs, Span: span}

	switch {
	case p.check(token.LParen):
		return p.parseEnumTuplePattern(path)
	case p.check(token.LBrace) && p.looksLikeStructPattern():
		return p.parseStructPattern(path)
	}

	if len(segs) == 1 {
		return p.arena.NewPattern(ast.Pattern{Kind: ast.PatternBinding, Span: span, Name: segs[0]}), nil
	}
	return p.arena.NewPattern(ast.Pattern{Kind: ast.PatternEnumVariant, Span: span, Path: path}), nil
}

// looksLikeStructPattern mirrors looksLikeStructInit's lookahead for
// pattern position: an empty `{}`, `{ .. }`, or `{ [mut] ident (: | , | }) }`.
func (p *Parser) looksLikeStructPattern() bool {
	if p.peekKindN(1) == token.RBrace || p.peekKindN(1) == token.DotDot {
		return true
	}
	if p.peekKindN(1) == token.Identifier {
		switch p.peekKindN(2) {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	if p.peekKindN(1) == token.KwMut && p.peekKindN(2) == token.Identifier {
		switch p.peekKindN(3) {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	return false
}

func (p *Parser) parseEnumTuplePattern(path ast.Path) (ast.PatternID, error) {
	p.advance() // '('
	var elems []ast.PatternID
	for !p.check(token.RParen) {
		e, err := p.parsePattern()
		if err != nil {
			return 0, err
		}
		elems = append(elems, e)
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return 0, err
	}
	return p.arena.NewPattern(ast.Pattern{
		Kind: ast.PatternEnumVariant, Span: source.Merge(path.Span, end.Span), Path: path, Elems: elems,
	}), nil
}

// parseStructPattern parses `Path { name: pat, mut name, ..., .. }`,
// including field shorthand (`{ x }` meaning `{ x: x }`, optionally
// `mut`) and a trailing `..` rest marker.
func (p *Parser) parseStructPattern(path ast.Path) (ast.PatternID, error) {
	p.advance() // '{'
	var fields []ast.FieldPattern
	rest := false
	for !p.check(token.RBrace) {
		if p.match(token.DotDot) {
			rest = true
			break
		}
		mut := p.match(token.KwMut)
		nameTok, err := p.expectIdent()
		if err != nil {
			return 0, err
		}
		name := p.identFrom(nameTok)
		var fieldPat ast.PatternID
		if p.match(token.Colon) {
			fp, err := p.parsePattern()
			if err != nil {
				return 0, err
			}
			fieldPat = fp
		} else {
			fieldPat = p.arena.NewPattern(ast.Pattern{Kind: ast.PatternBinding, Span: name.Span, Name: name, Mut: mut})
		}
		fields = append(fields, ast.FieldPattern{Name: name, Pattern: fieldPat})
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	kind := ast.PatternStruct
	if len(path.Segments) > 1 {
		kind = ast.PatternEnumVariant
	}
	return p.arena.NewPattern(ast.Pattern{
		Kind: kind, Span: source.Merge(path.Span, end.Span), Path: path, Fields: fields, RestField: rest,
	}), nil
}
