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

// parseTopLevelDecl parses one declaration: an optional `pub`, the
// declaration keyword, and the declaration-specific syntax, leaving the
// cursor immediately after the final `}` or `;`. It is also the entry
// point for a nested declaration appearing inside a block, struct,
// trait, impl, or extern body, all of which share the same declaration
// grammar.
func (p *Parser) parseTopLevelDecl() (ast.DeclID, error) {
	pub := p.match(token.KwPub)

	switch p.peekKind() {
	case token.KwFn:
		return p.parseFnDecl(pub, p.advance())
	case token.KwStruct:
		return p.parseStructDecl(pub, p.advance())
	case token.KwEnum:
		return p.parseEnumDecl(pub, p.advance())
	case token.KwUnion:
		return p.parseUnionDecl(pub, p.advance())
	case token.KwTrait:
		return p.parseTraitDecl(pub, p.advance())
	case token.KwImpl:
		return p.parseImplDecl(pub, p.advance())
	case token.KwMacro:
		return p.parseMacroDecl(pub, p.advance())
	case token.KwUse:
		return p.parseUseDecl(pub, p.advance())
	case token.KwExtern:
		return p.parseExternDecl(pub, p.advance())
	case token.KwType:
		return p.parseTypeAliasDecl(pub, p.advance())
	case token.KwConst:
		return p.parseGlobalVarDecl(pub, p.advance(), ast.DeclGlobalConst)
	case token.KwStatic:
		return p.parseGlobalVarDecl(pub, p.advance(), ast.DeclStatic)
	}
	return 0, p.unexpected(diag.TagUnexpectedToken, "expected declaration, found %s", p.peekKind())
}

// parseOptionalGenerics parses a `<Name [: Bound], ...>` generic
// parameter list if one is present, else returns nil.
func (p *Parser) parseOptionalGenerics() ([]ast.GenericParam, error) {
	if !p.check(token.Lt) {
		return nil, nil
	}
	p.advance()
	var params []ast.GenericParam
	for !p.check(token.Gt) {
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		param := ast.GenericParam{Name: p.identFrom(nameTok)}
		if p.match(token.Colon) {
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			param.Bound = bound
		}
		params = append(params, param)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.Gt); err != nil {
		return nil, err
	}
	return params, nil
}

// selfTypeExpr builds the `Self` named-type expression synthesized for
// a `self`/`&self`/`&mut self` receiver parameter at span.
func (p *Parser) selfTypeExpr(span source.Span) ast.ExprID {
	ident := ast.Ident{Name: p.interns.Intern("Self"), Span: span}
	return p.arena.NewExpr(ast.Expr{
		Kind: ast.ExprNamedType, Span: span, Path: ast.Path{Segments: []ast.Ident{ident}, Span: span},
	})
}

func (p *Parser) selfIdent(span source.Span) ast.Ident {
	return ast.Ident{Name: p.interns.Intern("self"), Span: span}
}

// parseParam parses one function parameter: a `self`-family receiver
// (first position only), or `name [: [as] Type] [= default]`.
func (p *Parser) parseParam(first bool) (ast.Param, error) {
	if first {
		switch {
		case p.check(token.KwSelfValue):
			tok := p.advance()
			return ast.Param{Name: p.selfIdent(tok.Span), Type: p.selfTypeExpr(tok.Span)}, nil

		case p.check(token.Amp) && p.peekKindN(1) == token.KwSelfValue:
			amp := p.advance()
			self := p.advance()
			span := source.Merge(amp.Span, self.Span)
			refType := p.arena.NewExpr(ast.Expr{Kind: ast.ExprPointerType, Span: span, Left: p.selfTypeExpr(self.Span)})
			return ast.Param{Name: p.selfIdent(span), Type: refType}, nil

		case p.check(token.Amp) && p.peekKindN(1) == token.KwMut && p.peekKindN(2) == token.KwSelfValue:
			amp := p.advance()
			p.advance() // 'mut'
			self := p.advance()
			span := source.Merge(amp.Span, self.Span)
			refType := p.arena.NewExpr(ast.Expr{
				Kind: ast.ExprPointerType, Span: span, Mut: true, Left: p.selfTypeExpr(self.Span),
			})
			return ast.Param{Name: p.selfIdent(span), Type: refType}, nil
		}
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return ast.Param{}, err
	}
	param := ast.Param{Name: p.identFrom(nameTok)}
	if p.match(token.Colon) {
		if p.match(token.KwAs) {
			param.BindingCast = true
		}
		typ, err := p.parseType()
		if err != nil {
			return ast.Param{}, err
		}
		param.Type = typ
	}
	if p.match(token.Assign) {
		def, err := p.parseExpression(precAssignment)
		if err != nil {
			return ast.Param{}, err
		}
		param.Default = def
	}
	return param, nil
}

// parseParamList parses the comma-separated parameter list between an
// already-consumed `(` and its matching `)`, including a trailing bare
// `...` marking an extern variadic signature (which must be the final
// entry).
func (p *Parser) parseParamList() ([]ast.Param, error) {
	var params []ast.Param
	first := true
	for !p.check(token.RParen) {
		if p.check(token.DotDotDot) {
			p.advance()
			params = append(params, ast.Param{Variadic: true})
			break
		}
		param, err := p.parseParam(first)
		if err != nil {
			return nil, err
		}
		first = false
		params = append(params, param)
		if !p.match(token.Comma) {
			break
		}
	}
	return params, nil
}

// parseFnDecl parses `fn name<Generics>(params) ReturnType? body?`,
// where body is absent for an extern signature or trait-method
// signature (terminated by `;` instead).
func (p *Parser) parseFnDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)

	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return 0, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return 0, err
	}
	end, err := p.expect(token.RParen)
	if err != nil {
		return 0, err
	}
	span := source.Merge(start.Span, end.Span)

	var ret ast.ExprID
	if canStartType(p.peekKind()) {
		ret, err = p.parseType()
		if err != nil {
			return 0, err
		}
		span = source.Merge(span, p.exprSpan(ret))
	}

	var body ast.BlockID
	if p.check(token.LBrace) {
		body, err = p.parseBlock()
		if err != nil {
			return 0, err
		}
		span = source.Merge(span, p.arena.Block(body).Span)
	} else {
		semi, err := p.expect(token.Semicolon)
		if err != nil {
			return 0, err
		}
		span = source.Merge(span, semi.Span)
	}

	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclFn, Span: span, Pub: pub, Name: name,
		Generics: generics, Params: params, ReturnType: ret, Body: body,
	}), nil
}

// parseFieldDecl parses one `[pub] name : Type [= default]` struct or
// union field.
func (p *Parser) parseFieldDecl() (ast.FieldDecl, ast.ExprID, error) {
	pub := p.match(token.KwPub)
	nameTok, err := p.expectIdent()
	if err != nil {
		return ast.FieldDecl{}, 0, err
	}
	name := p.identFrom(nameTok)
	if _, err := p.expect(token.Colon); err != nil {
		return ast.FieldDecl{}, 0, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.FieldDecl{}, 0, err
	}
	var def ast.ExprID
	if p.match(token.Assign) {
		def, err = p.parseExpression(precLowest)
		if err != nil {
			return ast.FieldDecl{}, 0, err
		}
	}
	return ast.FieldDecl{Name: name, Type: typ, Pub: pub}, def, nil
}

// parseAggregateBody parses the mixed field/nested-declaration body of
// a struct or union: `{ (field | nested-decl)* }`. A member opening
// with a declaration keyword (after an optional `pub`) is a nested
// declaration; otherwise it is a field.
func (p *Parser) parseAggregateBody() ([]ast.FieldDecl, []ast.DeclID, source.Span, error) {
	start, err := p.expect(token.LBrace)
	if err != nil {
		return nil, nil, source.Span{}, err
	}

	var fields []ast.FieldDecl
	var members []ast.DeclID
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		lookPast := p.peekKind()
		if lookPast == token.KwPub {
			lookPast = p.peekKindN(1)
		}
		if declStarter(lookPast) || lookPast == token.KwConst {
			decl, err := p.parseTopLevelDecl()
			if err != nil {
				p.recoverMember()
				continue
			}
			members = append(members, decl)
			continue
		}

		field, _, err := p.parseFieldDecl()
		if err != nil {
			p.recoverMember()
			continue
		}
		fields = append(fields, field)
		p.match(token.Comma)
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, nil, source.Span{}, err
	}
	return fields, members, source.Merge(start.Span, end.Span), nil
}

// recoverMember reports the current token as unexpected and advances
// past it: a finer-grained recovery discipline than statement
// resynchronization, used inside impl/struct/enum bodies so a single
// bad member doesn't swallow the rest of a well-formed body.
func (p *Parser) recoverMember() {
	p.unexpected(diag.TagUnexpectedToken, "unexpected token in declaration body: %s", p.peekKind())
	if !p.check(token.Eof) {
		p.advance()
	}
	p.diags.ClearPanicMode()
}

// parseStructDecl parses `struct Name<G>: Base? { fields-and-members }`.
func (p *Parser) parseStructDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	var base ast.ExprID
	if p.match(token.Colon) {
		base, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	fields, members, bodySpan, err := p.parseAggregateBody()
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclStruct, Span: source.Merge(start.Span, bodySpan), Pub: pub,
		Name: name, Generics: generics, BaseType: base, Fields: fields, Members: members,
	}), nil
}

// parseUnionDecl parses `union Name<G> { fields-and-members }`: the
// same shape as a struct, without a base-type clause.
func (p *Parser) parseUnionDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	fields, members, bodySpan, err := p.parseAggregateBody()
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclUnion, Span: source.Merge(start.Span, bodySpan), Pub: pub,
		Name: name, Generics: generics, Fields: fields, Members: members,
	}), nil
}

// parseEnumDecl parses `enum Name<G>: UnderlyingType? { variants }`.
func (p *Parser) parseEnumDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	var underlying ast.ExprID
	if p.match(token.Colon) {
		underlying, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return 0, err
	}
	var variants []ast.EnumVariant
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		v, err := p.parseEnumVariant()
		if err != nil {
			p.recoverMember()
			continue
		}
		variants = append(variants, v)
		p.match(token.Comma)
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclEnum, Span: source.Merge(start.Span, end.Span), Pub: pub,
		Name: name, Generics: generics, BaseType: underlying, Variants: variants,
	}), nil
}

// parseEnumVariant parses one variant: a bare name, an explicit
// discriminant (`= constExpr`), a tuple payload (`(Types)`), or a
// struct-like payload (`{ fields }`).
func (p *Parser) parseEnumVariant() (ast.EnumVariant, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return ast.EnumVariant{}, err
	}
	variant := ast.EnumVariant{Name: p.identFrom(nameTok)}

	switch {
	case p.match(token.Assign):
		variant.Discriminant, err = p.parseExpression(precAssignment)
		if err != nil {
			return ast.EnumVariant{}, err
		}

	case p.check(token.LParen):
		p.advance()
		for !p.check(token.RParen) {
			t, err := p.parseType()
			if err != nil {
				return ast.EnumVariant{}, err
			}
			variant.TupleFields = append(variant.TupleFields, t)
			if !p.match(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ast.EnumVariant{}, err
		}

	case p.check(token.LBrace):
		p.advance()
		for !p.check(token.RBrace) {
			field, def, err := p.parseFieldDecl()
			if err != nil {
				return ast.EnumVariant{}, err
			}
			_ = def // enum struct-fields reuse FieldDecl; defaults aren't meaningful here
			variant.StructFields = append(variant.StructFields, field)
			if !p.match(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return ast.EnumVariant{}, err
		}
	}

	return variant, nil
}

// parseDeclMemberList parses the brace-delimited sequence of nested
// declarations shared by trait, impl, and extern bodies.
// forbidNestedImpl reports TagNestedImpl instead of accepting a member
// whose kind is DeclImpl: impl blocks don't nest inside one another.
func (p *Parser) parseDeclMemberList(forbidNestedImpl bool) ([]ast.DeclID, source.Span, error) {
	start, err := p.expect(token.LBrace)
	if err != nil {
		return nil, source.Span{}, err
	}
	var members []ast.DeclID
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			p.recoverMember()
			continue
		}
		d := p.arena.Decl(decl)
		if forbidNestedImpl && d.Kind == ast.DeclImpl {
			p.errorAt(d.Span, diag.TagNestedImpl, "impl blocks cannot be nested inside another impl")
			continue
		}
		members = append(members, decl)
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, source.Span{}, err
	}
	return members, source.Merge(start.Span, end.Span), nil
}

// parseTraitDecl parses `trait Name<G>: A + B + C { members }`.
func (p *Parser) parseTraitDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	var supertraits []ast.Path
	if p.match(token.Colon) {
		for {
			path, err := p.parsePathRef()
			if err != nil {
				return 0, err
			}
			supertraits = append(supertraits, path)
			if !p.match(token.Plus) {
				break
			}
		}
	}
	members, bodySpan, err := p.parseDeclMemberList(false)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclTrait, Span: source.Merge(start.Span, bodySpan), Pub: pub,
		Name: name, Generics: generics, Supertraits: supertraits, Members: members,
	}), nil
}

// parsePathRef parses a bare dotted path (`A.B.C`), used for trait
// references in a super-trait list and an `impl Trait for Type` clause.
func (p *Parser) parsePathRef() (ast.Path, error) {
	first, err := p.expectIdent()
	if err != nil {
		return ast.Path{}, err
	}
	segs := []ast.Ident{p.identFrom(first)}
	span := segs[0].Span
	for p.check(token.Dot) && p.peekKindN(1) == token.Identifier {
		p.advance()
		seg, err := p.expectIdent()
		if err != nil {
			return ast.Path{}, err
		}
		ident := p.identFrom(seg)
		segs = append(segs, ident)
		span = source.Merge(span, ident.Span)
	}
	return ast.Path{Segments: segs, Span: span}, nil
}

// parseImplDecl parses `impl<G> [Trait for] Type { members }`. The
// generic parameter list precedes the target type syntactically but
// attaches to this same node; nested impl blocks are rejected in
// parseDeclMemberList.
func (p *Parser) parseImplDecl(pub bool, start token.Token) (ast.DeclID, error) {
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	first, err := p.parseType()
	if err != nil {
		return 0, err
	}

	var trait *ast.Path
	target := first
	if p.match(token.KwFor) {
		firstExpr := p.arena.Expr(first)
		if firstExpr.Kind == ast.ExprNamedType {
			path := firstExpr.Path
			trait = &path
		}
		target, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}

	members, bodySpan, err := p.parseDeclMemberList(true)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclImpl, Span: source.Merge(start.Span, bodySpan), Pub: pub,
		Generics: generics, Trait: trait, Target: target, Members: members,
	}), nil
}

// parseExternDecl parses `extern ["ABI"]? { members }`. Function
// signatures, `const`/`static` globals, type aliases, and `use`
// declarations are accepted inside an extern block; any other
// declaration kind is reported as TagInvalidExternMember.
func (p *Parser) parseExternDecl(pub bool, start token.Token) (ast.DeclID, error) {
	var abi string
	if p.check(token.StringLiteral) {
		tok := p.advance()
		abi = unescapeString(p.text(tok))
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return 0, err
	}
	var members []ast.DeclID
	for !p.check(token.RBrace) && !p.check(token.Eof) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			p.recoverMember()
			continue
		}
		switch p.arena.Decl(decl).Kind {
		case ast.DeclFn, ast.DeclStatic, ast.DeclGlobalConst, ast.DeclTypeAlias, ast.DeclUse:
			members = append(members, decl)
		default:
			p.errorAt(p.arena.Decl(decl).Span, diag.TagInvalidExternMember,
				"declaration kind not allowed inside an extern block")
		}
	}
	end, err := p.expect(token.RBrace)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclExternBlock, Span: source.Merge(start.Span, end.Span), Pub: pub,
		ABI: abi, Members: members,
	}), nil
}

// parseTypeAliasDecl parses `type Name<G> = Type ;`.
func (p *Parser) parseTypeAliasDecl(pub bool, start token.Token) (ast.DeclID, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return 0, err
	}
	aliased, err := p.parseType()
	if err != nil {
		return 0, err
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclTypeAlias, Span: source.Merge(start.Span, end.Span), Pub: pub,
		Name: name, Generics: generics, Aliased: aliased,
	}), nil
}

// parseGlobalVarDecl parses a `const NAME : Type = value ;` or `static
// [mut] NAME : Type = value ;` declaration. kind selects DeclGlobalConst
// or DeclStatic; the caller has already consumed the `const`/`static`
// keyword as start.
func (p *Parser) parseGlobalVarDecl(pub bool, start token.Token, kind ast.DeclKind) (ast.DeclID, error) {
	mut := kind == ast.DeclStatic && p.match(token.KwMut)
	nameTok, err := p.expectIdent()
	if err != nil {
		return 0, err
	}
	name := p.identFrom(nameTok)
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
	return p.arena.NewDecl(ast.Decl{
		Kind: kind, Span: source.Merge(start.Span, end.Span), Pub: pub,
		Name: name, TypeAnn: typeAnn, Value: value, Mut: mut,
	}), nil
}

// parseUseDecl parses a `use` path tree: a plain (possibly aliased)
// path, a glob (`prefix.*`), or a group (`prefix.{a, b}`), with an
// optional leading `.`/`..` marking a relative path.
func (p *Parser) parseUseDecl(pub bool, start token.Token) (ast.DeclID, error) {
	relDepth := 0
	switch {
	case p.match(token.DotDot):
		relDepth = 2
	case p.match(token.Dot):
		relDepth = 1
	}

	item, err := p.parseUseItem()
	if err != nil {
		return 0, err
	}
	end, err := p.expect(token.Semicolon)
	if err != nil {
		return 0, err
	}
	return p.arena.NewDecl(ast.Decl{
		Kind: ast.DeclUse, Span: source.Merge(start.Span, end.Span), Pub: pub,
		Path: item.Path, Alias: item.Alias, RelativeDepth: relDepth, Item: item,
	}), nil
}

// parseUseItem parses one entry of a use path tree: a dotted chain of
// identifiers ending in a plain (optionally `as`-aliased) path, a glob
// `.*`, or a `.{a, b, ...}` group. Each element of a group is itself
// parsed by this same function, so a group containing a nested group
// parses recursively.
func (p *Parser) parseUseItem() (ast.UseItem, error) {
	var segs []ast.Ident
	for {
		nameTok, err := p.expectIdent()
		if err != nil {
			return ast.UseItem{}, err
		}
		segs = append(segs, p.identFrom(nameTok))
		if !p.match(token.Dot) {
			break
		}
		if p.match(token.Star) {
			return ast.UseItem{Path: ast.Path{Segments: segs, Span: segSpan(segs)}, Glob: true}, nil
		}
		if p.check(token.LBrace) {
			p.advance()
			var group []ast.UseItem
			for !p.check(token.RBrace) {
				sub, err := p.parseUseItem()
				if err != nil {
					return ast.UseItem{}, err
				}
				group = append(group, sub)
				if !p.match(token.Comma) {
					break
				}
			}
			if _, err := p.expect(token.RBrace); err != nil {
				return ast.UseItem{}, err
			}
			return ast.UseItem{Path: ast.Path{Segments: segs, Span: segSpan(segs)}, Group: group}, nil
		}
	}

	var alias ast.Ident
	if p.match(token.KwAs) {
		aliasTok, err := p.expectIdent()
		if err != nil {
			return ast.UseItem{}, err
		}
		alias = p.identFrom(aliasTok)
	}
	return ast.UseItem{Path: ast.Path{Segments: segs, Span: segSpan(segs)}, Alias: alias}, nil
}

func segSpan(segs []ast.Ident) source.Span {
	if len(segs) == 0 {
		return source.Span{}
	}
	return source.Merge(segs[0].Span, segs[len(segs)-1].Span)
}
