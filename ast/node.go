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

// Package ast defines the syntax tree produced by the parser: one
// family of node (Expr, Pattern, Stmt, Decl, Block) per major
// grammatical category, each family backed by its own arena so an
// entire parsed file can be torn down in one deallocation instead of
// being walked node by node.
//
// Go has no sum types, so each family is a single tagged struct
// carrying every field any of its variants need; Kind says which
// fields are meaningful. This costs some memory per node in exchange
// for not needing a distinct Go type (and a distinct arena) per
// grammar production.
package ast

import (
	"github.com/loom-lang/loomc/internal/arena"
	"github.com/loom-lang/loomc/internal/intern"
	"github.com/loom-lang/loomc/source"
)

// ExprID, PatternID, StmtID, DeclID, and BlockID are compressed
// pointers into the corresponding arena inside an [Arena]. They are
// nil (zero) when a node has no child in that slot, e.g. an if-expr
// with no else branch.
type (
	ExprID    = arena.Pointer[Expr]
	PatternID = arena.Pointer[Pattern]
	StmtID    = arena.Pointer[Stmt]
	DeclID    = arena.Pointer[Decl]
	BlockID   = arena.Pointer[Block]
)

// Arena owns every node produced while parsing one file (or one
// compilation unit spanning several files that share lifetime). Its
// zero value is ready to use.
type Arena struct {
	exprs    arena.Arena[Expr]
	patterns arena.Arena[Pattern]
	stmts    arena.Arena[Stmt]
	decls    arena.Arena[Decl]
	blocks   arena.Arena[Block]
}

func (a *Arena) NewExpr(e Expr) ExprID       { return a.exprs.New(e) }
func (a *Arena) NewPattern(p Pattern) PatternID { return a.patterns.New(p) }
func (a *Arena) NewStmt(s Stmt) StmtID       { return a.stmts.New(s) }
func (a *Arena) NewDecl(d Decl) DeclID       { return a.decls.New(d) }
func (a *Arena) NewBlock(b Block) BlockID    { return a.blocks.New(b) }

// Expr, Pattern, Stmt, Decl, and Block dereference a node ID allocated
// by the matching New* method on this same Arena. Dereferencing an ID
// from a different Arena panics or returns garbage, exactly as
// [arena.Pointer.In] documents.
func (a *Arena) Expr(id ExprID) *Expr       { return id.In(&a.exprs) }
func (a *Arena) Pattern(id PatternID) *Pattern { return id.In(&a.patterns) }
func (a *Arena) Stmt(id StmtID) *Stmt       { return id.In(&a.stmts) }
func (a *Arena) Decl(id DeclID) *Decl       { return id.In(&a.decls) }
func (a *Arena) Block(id BlockID) *Block    { return id.In(&a.blocks) }

// Module is the root of a parsed file: a flat sequence of top-level
// declarations plus the interner and node arena that own its names
// and nodes.
type Module struct {
	File    source.FileID
	Decls   []DeclID
	Arena   *Arena
	Interns *intern.Table
}

// Ident is a single name reference resolved to its interned form; it
// carries its own span since an identifier's occurrence site rarely
// coincides with the span of the node using it (e.g. a field name
// inside a larger struct-init expression).
type Ident struct {
	Name intern.ID
	Span source.Span
}

// Path is a possibly-qualified name, e.g. `std.io.Error`, modeled as a
// non-empty sequence of segments joined by `.`.
type Path struct {
	Segments []Ident
	Span     source.Span
}

func (p Path) Last() Ident {
	return p.Segments[len(p.Segments)-1]
}
