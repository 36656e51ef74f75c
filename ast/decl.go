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

package ast

import (
	"github.com/loom-lang/loomc/internal/intern"
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

// DeclKind discriminates the variants folded into Decl.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclFn
	DeclStruct
	DeclEnum
	DeclUnion
	DeclTrait
	DeclImpl
	DeclMacro
	DeclUse
	DeclExternBlock
	DeclTypeAlias
	DeclStatic
	DeclGlobalLet
	DeclGlobalConst
)

// GenericParam is one `<Name>` or `<Name: Bound>` entry of a generic
// parameter list.
type GenericParam struct {
	Name  Ident
	Bound ExprID // trait-bound type-expression, nil if unbounded
}

// FieldDecl is one field of a struct/union declaration, or one
// struct-shaped variant field of an enum.
type FieldDecl struct {
	Name Ident
	Type ExprID
	Pub  bool
}

// EnumVariant is one variant of an enum declaration: a bare name, a
// tuple of positional fields, or a struct of named fields, optionally
// with an explicit discriminant.
type EnumVariant struct {
	Name        Ident
	TupleFields []ExprID
	StructFields []FieldDecl
	Discriminant ExprID // nil unless explicitly assigned, e.g. `Red = 1`
}

// MacroToken is one token captured verbatim while parsing a macro
// matcher or body; macro expansion itself is out of scope, so the
// parser only needs to record a well-formed, balanced token tree.
type MacroToken struct {
	Kind token.Kind
	Text string
	Span source.Span
}

// MacroFragmentKind names the `$name:spec` fragment specifiers a macro
// matcher capture may declare.
type MacroFragmentKind uint8

const (
	FragmentInvalid MacroFragmentKind = iota
	FragmentExpr
	FragmentIdent
	FragmentType
	FragmentStmt
	FragmentBlock
	FragmentPath
	FragmentLiteral
	FragmentTokenTree
)

// MacroMatcherKind discriminates the entries a macro rule's matcher
// sequence is built from.
type MacroMatcherKind uint8

const (
	MatcherInvalid MacroMatcherKind = iota
	MatcherToken                    // a literal token, matched verbatim
	MatcherCapture                  // `$name:spec`
	MatcherRepetition                // `$( sub... ) sep? op`
)

// MacroMatcher is one entry of a macro rule's matcher sequence. Matchers
// nest: a MatcherRepetition's Sub holds the repeated sub-sequence, so
// repetitions containing repetitions parse (and are represented)
// recursively, per the macro matcher grammar.
type MacroMatcher struct {
	Kind MacroMatcherKind
	Span source.Span

	// MatcherToken.
	Token MacroToken

	// MatcherCapture.
	CaptureName intern.ID
	Fragment    MacroFragmentKind

	// MatcherRepetition.
	Sub []MacroMatcher
	Sep *MacroToken // nil if the repetition has no separator token
	Op  token.Kind  // Star, Plus, or Question
}

// MacroRule is one `(matcher) => { body };` arm of a macro_rules-style
// macro declaration. The body is kept as a raw token tree: substituting
// captures into it is a later expansion pass, out of scope here.
type MacroRule struct {
	Matcher []MacroMatcher
	Body    []MacroToken
}

// UseItem is one entry of a `use` declaration's path tree: a plain
// (possibly aliased) path, a glob (`prefix.*`), or a group
// (`prefix.{a, b, c}`) of further items.
type UseItem struct {
	Path  Path
	Alias Ident // nil unless renamed via `as`
	Glob  bool
	Group []UseItem // non-nil for a `prefix.{...}` group
}

// Decl is every top-level and member declaration node, tagged by Kind.
type Decl struct {
	Kind DeclKind
	Span source.Span
	Pub  bool

	// DeclFn, DeclStruct, DeclEnum, DeclUnion, DeclTrait, DeclTypeAlias,
	// DeclStatic, DeclGlobalLet, DeclGlobalConst, DeclMacro: the
	// declared name.
	Name Ident

	// DeclFn, DeclStruct, DeclEnum, DeclUnion, DeclTrait, DeclTypeAlias,
	// DeclImpl.
	Generics []GenericParam

	// DeclFn.
	Params     []Param
	ReturnType ExprID  // nil for a fn returning the unit type
	Body       BlockID // nil for an extern or trait-method signature

	// DeclStruct, DeclUnion; also StructFields of an enum variant.
	Fields []FieldDecl

	// DeclEnum.
	Variants []EnumVariant

	// DeclStruct, DeclUnion, DeclTrait, DeclImpl, DeclExternBlock: nested
	// member declarations.
	Members []DeclID

	// DeclImpl: the trait being implemented (nil for an inherent impl)
	// and the type it is implemented for.
	Trait  *Path
	Target ExprID

	// DeclStruct, DeclEnum: an optional `: Base` clause — a base struct
	// for a struct, or an explicit underlying integer type for an enum.
	BaseType ExprID

	// DeclTrait: the `: A + B + C` super-trait list, empty if the trait
	// declares none.
	Supertraits []Path

	// DeclMacro.
	Rules []MacroRule

	// DeclUse. RelativeDepth counts leading `.`/`..` path segments (0 for
	// an absolute path). Item holds the (possibly grouped/glob) tail.
	Path          Path
	Alias         Ident // nil unless the use declaration renames via `as`
	RelativeDepth int
	Item          UseItem

	// DeclExternBlock.
	ABI string

	// DeclTypeAlias.
	Aliased ExprID

	// DeclStatic, DeclGlobalLet, DeclGlobalConst.
	TypeAnn ExprID
	Value   ExprID
	Mut     bool
}
