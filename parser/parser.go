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

// Package parser turns a token stream into a Loom [ast.Module]: a
// Pratt-style expression core combined with recursive descent for
// patterns, statements, types, and declarations.
//
// The parser never panics on malformed input. Every `expect` failure
// reports at most one diagnostic (gated by [diag.Context]'s panic mode),
// then unwinds via the sentinel [errParse] to the nearest recovery
// point. A block's statement loop and the top-level declaration loop
// call synchronize and resume; an impl/struct/enum/trait/extern body
// loop instead calls recoverMember, which skips a single token.
package parser

import (
	"fmt"

	"github.com/loom-lang/loomc/ast"
	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/internal/intern"
	"github.com/loom-lang/loomc/lexer"
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

// errParse is the sentinel unwound through the call stack on a parse
// error. It carries no information: the diagnostic was already
// reported to the Context at the point of failure.
type errParse struct{}

func (errParse) Error() string { return "parse error" }

// Parser drives recursive-descent and Pratt-style parsing over a single
// file's token stream, allocating every node into its own [ast.Arena].
//
// A Parser is single-use: create one per file via [New], call [Parser.ParseModule]
// once, then discard it. It is not safe for concurrent use.
type Parser struct {
	file    *source.File
	stream  *lexer.TokenStream
	diags   *diag.Context
	arena   *ast.Arena
	interns *intern.Table

	// allowStructInit gates whether `Ident {` is parsed as a struct
	// initialization or left for the caller to treat `{` as a block.
	// Cleared while parsing an if-condition, a match scrutinee, or a
	// for-loop's three clauses.
	allowStructInit bool
}

// New creates a Parser over file's tokens, reporting diagnostics to
// diags and interning identifier/literal text into interns.
func New(file *source.File, diags *diag.Context, interns *intern.Table) *Parser {
	lex := lexer.New(file, diags)
	return &Parser{
		file:            file,
		stream:          lexer.NewTokenStream(lex),
		diags:           diags,
		arena:           &ast.Arena{},
		interns:         interns,
		allowStructInit: true,
	}
}

// ParseModule parses the entire file as a sequence of top-level
// declarations, recovering from errors at declaration boundaries, and
// returns the resulting Module. Diagnostics accumulate in the Context
// passed to New; ParseModule always returns a (possibly partial) Module,
// even when errors were reported.
func (p *Parser) ParseModule() *ast.Module {
	var decls []ast.DeclID
	for !p.check(token.Eof) {
		start := p.stream.Peek(0)
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			p.synchronize()
			continue
		}
		decls = append(decls, decl)
		// Defensive: a decl parser that consumes no tokens would loop
		// forever. This should never happen if every decl parser
		// advances past at least its keyword, but guard it anyway.
		if p.stream.Peek(0) == start && !p.check(token.Eof) {
			p.advance()
		}
	}
	return &ast.Module{
		File:    p.file.ID(),
		Decls:   decls,
		Arena:   p.arena,
		Interns: p.interns,
	}
}

// --- token-stream helpers -------------------------------------------------

func (p *Parser) peek() token.Token        { return p.stream.Peek(0) }
func (p *Parser) peekN(n int) token.Token  { return p.stream.Peek(n) }
func (p *Parser) peekKind() token.Kind     { return p.stream.Peek(0).Kind }
func (p *Parser) peekKindN(n int) token.Kind { return p.stream.Peek(n).Kind }
func (p *Parser) advance() token.Token     { return p.stream.Advance() }
func (p *Parser) previous() token.Token    { return p.stream.Previous() }

func (p *Parser) check(k token.Kind) bool { return p.peekKind() == k }

// checkAny reports whether the current token's kind is one of ks.
func (p *Parser) checkAny(ks ...token.Kind) bool {
	cur := p.peekKind()
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

// match consumes and returns true if the current token has kind k.
func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// text returns the source text spanned by tok.
func (p *Parser) text(tok token.Token) string {
	return tok.Text(p.file)
}

// intern interns tok's source text.
func (p *Parser) intern(tok token.Token) intern.ID {
	return p.interns.Intern(p.text(tok))
}

// identFrom builds an ast.Ident from tok, interning its text.
func (p *Parser) identFrom(tok token.Token) ast.Ident {
	return ast.Ident{Name: p.intern(tok), Span: tok.Span}
}

// expect consumes the current token if it has kind k, else reports a
// diagnostic (gated by panic mode) and returns errParse. Callers
// propagate the error up to their nearest recovery point.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(diag.TagUnexpectedToken, "expected %s, found %s", k, p.peekKind())
}

// expectIdent consumes an Identifier token, reporting TagExpectedIdentifier
// on mismatch.
func (p *Parser) expectIdent() (token.Token, error) {
	if p.check(token.Identifier) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek().Span, diag.TagExpectedIdentifier,
		"expected identifier, found %s", p.peekKind())
}

// unexpected reports a formatted diagnostic at the current token's span
// and returns errParse, suggesting a near-miss keyword when the current
// token is an identifier.
func (p *Parser) unexpected(tag diag.ErrorTag, format string, args ...any) error {
	return p.errorAt(p.peek().Span, tag, format, args...)
}

// errorAt reports a diagnostic at span unless the context is already in
// panic mode, appending a "did you mean" suggestion when the offending
// text is a near-miss on the keyword vocabulary. It always returns
// errParse so callers can `return p.errorAt(...)`.
func (p *Parser) errorAt(span source.Span, tag diag.ErrorTag, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.check(token.Identifier) {
		if suggestion := diag.SuggestMessage(p.text(p.peek()), token.Keywords()); suggestion != "" {
			msg += suggestion
		}
	}
	p.diags.Report(diag.Diagnostic{Severity: diag.Error, Span: span, Tag: tag, Message: msg})
	return errParse{}
}

// synchronize discards tokens until a plausible statement/declaration
// boundary: a `;` just consumed, or the next token opens a statement or
// declaration. Clears panic mode on return.
func (p *Parser) synchronize() {
	defer p.diags.ClearPanicMode()

	for !p.check(token.Eof) {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peekKind() {
		case token.KwFn, token.KwLet, token.KwConst, token.KwStruct, token.KwEnum,
			token.KwUnion, token.KwTrait, token.KwImpl, token.KwMacro, token.KwUse,
			token.KwExtern, token.KwType, token.KwStatic, token.KwIf, token.KwFor,
			token.KwReturn, token.KwPub:
			return
		}
		p.advance()
	}
}

// withStructInit runs fn with allowStructInit set to allow, restoring
// the previous value afterward. Used to disable struct-init parsing in
// an if-condition, match scrutinee, or for-loop clause.
func (p *Parser) withStructInit(allow bool, fn func() (ast.ExprID, error)) (ast.ExprID, error) {
	save := p.allowStructInit
	p.allowStructInit = allow
	defer func() { p.allowStructInit = save }()
	return fn()
}
