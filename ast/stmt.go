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

import "github.com/loom-lang/loomc/source"

// StmtKind discriminates the variants folded into Stmt.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLet
	StmtConst
	StmtExpr   // an expression in statement position, e.g. `foo();`
	StmtReturn
	StmtBreak
	StmtContinue
	StmtDefer
	StmtForClassic // for init; cond; post { body }
	StmtForIn      // for pattern in iterable { body }
	StmtDecl       // a nested declaration (fn, struct, use, ...) inside a block
)

// Block is a brace-delimited sequence of statements, optionally ending
// in a tail expression with no trailing semicolon (its value becomes
// the block's value when used in expression position).
type Block struct {
	Span  source.Span
	Stmts []StmtID
	Tail  ExprID // nil if the block has no tail expression
}

// Stmt is every statement node, tagged by Kind.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	// StmtLet, StmtConst.
	Pattern PatternID
	TypeAnn ExprID // declared type, nil if inferred
	Value   ExprID // initializer, nil for `let x: T;` with no initializer
	Mut     bool

	// StmtExpr, StmtDefer: Expr.
	// StmtReturn, StmtBreak: Expr holds the optional value.
	Expr ExprID

	// StmtBreak, StmtContinue: an optional loop label (reserved for a
	// future labeled-loop extension; unused by the current grammar).
	Label Ident

	// StmtForClassic.
	Init StmtID // nil if the init clause is empty
	Cond ExprID // nil if the condition clause is empty
	Post StmtID // nil if the post clause is empty
	Body BlockID

	// StmtForIn.
	ForPattern PatternID
	Iterable   ExprID

	// StmtDecl.
	Decl DeclID
}
