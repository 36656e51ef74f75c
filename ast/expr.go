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

// ExprKind discriminates the variants folded into Expr. Loom treats
// type annotations as expressions too (a named type, `*T`, `[]T`,
// `?T`, and so on parse through the same Pratt core as values), so
// the type-expression kinds live in this same enum rather than a
// parallel Type type.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota

	// Literals and names.
	ExprInt
	ExprFloat
	ExprString
	ExprChar
	ExprBool
	ExprNull
	ExprUndef
	ExprIdent
	ExprPath

	// Operators.
	ExprUnary
	ExprBinary
	ExprAssign
	ExprRange
	ExprCast

	// Postfix / access forms. A method call `recv.method(args)` is not a
	// distinct node kind: it composes from ExprField (`recv.method`)
	// wrapped in an ExprCall, exactly like calling any other
	// field-valued callee (see Scenario C of the parser test suite).
	ExprCall
	ExprIndex
	ExprField
	ExprGenericInst // `.<T, U>` turbofish instantiation of a generic value
	ExprPropagate   // `.?` error/optional propagation
	ExprDeref       // `.*` pointer dereference
	ExprMacroCall   // `callee! ( ... )` / `callee! [ ... ]` / `callee! { ... }`

	// Aggregates.
	ExprStructInit
	ExprArrayLit
	ExprArrayRepeat // `[value; count]`
	ExprTupleLit

	// Control-flow expressions.
	ExprIf
	ExprMatch
	ExprBlock
	ExprUnreachable

	// Type expressions.
	ExprPointerType    // `&T` / `&mut T`: a non-null reference type
	ExprRawPointerType // `*T` / `*mut T`: a volatile raw-pointer type
	ExprArrayType
	ExprSliceType
	ExprOptionalType
	ExprNamedType
	ExprFnType
	ExprTraitObjectType
	ExprNeverType
)

// StructInitField is one `name: value` entry of a struct-literal
// expression.
type StructInitField struct {
	Name  Ident
	Value ExprID
}

// MatchArm is one `pattern [if guard] => body` arm of a match
// expression.
type MatchArm struct {
	Pattern PatternID
	Guard   ExprID // nil if there is no guard clause
	Body    ExprID
}

// Param is one parameter of a function type or function declaration.
//
// `self`/`&self`/`&mut self` receivers are synthesized into a Param
// named "self" with Type set to `Self`/`&Self`/`&mut Self` rather than
// carried as a separate flag, so downstream code has one shape to
// handle regardless of how the receiver was spelled.
type Param struct {
	Name Ident
	Type ExprID
	Mut  bool

	// BindingCast marks a `name: as Type` parameter: a request that the
	// call site convert the argument to Type automatically. Recorded
	// syntactically; applying the conversion is a later pass.
	BindingCast bool

	// Default is the parameter's default-value expression, nil if none.
	Default ExprID

	// Variadic marks the trailing `...` parameter of an extern
	// function's signature.
	Variadic bool
}

// Expr is every expression and type-expression node, tagged by Kind.
// Only the fields relevant to Kind are populated; the rest are zero.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Literal payloads (ExprInt/Float/String/Char/Bool).
	IntValue    uint64
	FloatValue  float64
	StringValue string
	CharValue   rune
	BoolValue   bool

	// ExprIdent.
	Name intern.ID
	// ExprPath, ExprNamedType.
	Path Path
	// ExprNamedType: `Foo<Bar, Baz>` generic arguments, each itself a
	// type-expression.
	TypeArgs []ExprID

	// ExprUnary: Op is Bang, Minus, Amp (reference), Tilde, Hash, or
	// Question.
	// ExprBinary, ExprAssign: Op is the operator token's Kind.
	// ExprCast: unused (see Type field below).
	Op Kind

	// Operand slots, reused across several variants:
	//   ExprUnary:      Left (operand)
	//   ExprBinary:     Left, Right
	//   ExprAssign:     Target (Left), Value (Right)
	//   ExprRange:      Left (start, may be nil), Right (end, may be nil)
	//   ExprCast:       Left (value), Type (target type)
	//   ExprIndex:      Left (base), Right (index)
	//   ExprField:      Left (base); Name is the field
	//   ExprCall:       Left (callee, e.g. an ExprField for a method call); Args
	//   ExprPointerType, ExprSliceType, ExprOptionalType, ExprDeref: Left (inner type/value)
	//   ExprArrayType:  Left (element type), Right (size expr)
	//   ExprGenericInst: Left (the instantiated value); TypeArgs hold the
	//     `.<...>` arguments
	//   ExprPropagate:  Left (operand)
	//   ExprArrayRepeat: Left (value expr), Right (count expr)
	//   ExprMacroCall:  Left (callee expression, an Ident or Field access)
	Left  ExprID
	Right ExprID
	Args  []ExprID
	Type  ExprID

	RangeInclusive bool

	// ExprStructInit.
	Fields []StructInitField

	// ExprArrayLit, ExprTupleLit reuse Args.

	// ExprMacroCall: the raw, unparsed token tree between the call's
	// delimiters, plus which delimiter opened it (LParen/LBracket/LBrace).
	MacroArgs  []MacroToken
	MacroDelim Kind

	// ExprIf.
	Cond ExprID
	Then BlockID
	Else ExprID // ExprIf (else-if) or ExprBlock, nil if no else clause

	// ExprMatch.
	Subject ExprID
	Arms    []MatchArm

	// ExprBlock (a block used in expression position).
	Body BlockID

	// ExprFnType.
	Params   []Param
	RetType  ExprID

	// ExprPointerType, ExprRawPointerType, and an ExprUnary `&mut`
	// address-of.
	Mut bool

	// ExprTraitObjectType.
	Traits []Path
}

// Kind is an alias so Op's doc comment above can refer to the
// token package's operator kinds without stuttering "token.Kind".
type Kind = token.Kind
