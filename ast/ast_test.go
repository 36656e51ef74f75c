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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loom-lang/loomc/ast"
)

func TestArena_ExprRoundTrip(t *testing.T) {
	t.Parallel()

	var a ast.Arena
	id := a.NewExpr(ast.Expr{Kind: ast.ExprInt, IntValue: 42})
	assert.Equal(t, uint64(42), a.Expr(id).IntValue)
	assert.Equal(t, ast.ExprInt, a.Expr(id).Kind)
}

func TestArena_NestedExprs(t *testing.T) {
	t.Parallel()

	var a ast.Arena
	lhs := a.NewExpr(ast.Expr{Kind: ast.ExprInt, IntValue: 1})
	rhs := a.NewExpr(ast.Expr{Kind: ast.ExprInt, IntValue: 2})
	sum := a.NewExpr(ast.Expr{Kind: ast.ExprBinary, Left: lhs, Right: rhs})

	got := a.Expr(sum)
	assert.Equal(t, uint64(1), a.Expr(got.Left).IntValue)
	assert.Equal(t, uint64(2), a.Expr(got.Right).IntValue)
}

func TestArena_BlockAndStmt(t *testing.T) {
	t.Parallel()

	var a ast.Arena
	tail := a.NewExpr(ast.Expr{Kind: ast.ExprInt, IntValue: 7})
	letStmt := a.NewStmt(ast.Stmt{Kind: ast.StmtLet, Value: tail})
	block := a.NewBlock(ast.Block{Stmts: []ast.StmtID{letStmt}, Tail: tail})

	b := a.Block(block)
	assert.Len(t, b.Stmts, 1)
	assert.Equal(t, ast.StmtLet, a.Stmt(b.Stmts[0]).Kind)
	assert.Equal(t, uint64(7), a.Expr(b.Tail).IntValue)
}

func TestArena_Decl(t *testing.T) {
	t.Parallel()

	var a ast.Arena
	body := a.NewBlock(ast.Block{})
	fn := a.NewDecl(ast.Decl{Kind: ast.DeclFn, Pub: true, Body: body})

	assert.True(t, a.Decl(fn).Pub)
	assert.Equal(t, ast.DeclFn, a.Decl(fn).Kind)
}
