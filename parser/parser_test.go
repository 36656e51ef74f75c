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

package parser_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/loomc/ast"
	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/internal/intern"
	"github.com/loom-lang/loomc/parser"
	"github.com/loom-lang/loomc/source"
	"github.com/loom-lang/loomc/token"
)

func parseModule(t *testing.T, src string) (*ast.Module, *diag.Context) {
	t.Helper()
	f := source.NewFile(1, "t.loom", []byte(src))
	d := diag.NewContext()
	interns := &intern.Table{}
	p := parser.New(f, d, interns)
	mod := p.ParseModule()
	require.NotNil(t, mod)
	return mod, d
}

// Scenario C: generic instantiation turbofish vs. a less-than comparison.
func TestParser_GenericInstantiationVsLessThan(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn a() { let a = List.<i32>.new(); }`)
	require.False(t, d.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	require.Equal(t, ast.DeclFn, fn.Kind)
	body := mod.Arena.Block(fn.Body)
	require.Len(t, body.Stmts, 1)
	let := mod.Arena.Stmt(body.Stmts[0])
	require.Equal(t, ast.StmtLet, let.Kind)
	call := mod.Arena.Expr(let.Value)
	assert.Equal(t, ast.ExprCall, call.Kind)

	mod2, d2 := parseModule(t, `fn b() { let b = a < 3; }`)
	require.False(t, d2.HasErrors())
	fn2 := mod2.Arena.Decl(mod2.Decls[0])
	body2 := mod2.Arena.Block(fn2.Body)
	let2 := mod2.Arena.Stmt(body2.Stmts[0])
	bin := mod2.Arena.Expr(let2.Value)
	assert.Equal(t, ast.ExprBinary, bin.Kind)
	assert.Equal(t, token.Lt, bin.Op)
}

// Scenario D: struct-init disambiguation inside an `if` condition is
// disallowed, but allowed once the condition position has closed.
func TestParser_StructInitDisambiguation(t *testing.T) {
	t.Parallel()

	_, d := parseModule(t, `fn f() { if cond { x: 1 } }`)
	assert.True(t, d.HasErrors())

	mod, d2 := parseModule(t, `fn f() { let p = Point { x: 1, y: 2 }; }`)
	require.False(t, d2.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	body := mod.Arena.Block(fn.Body)
	let := mod.Arena.Stmt(body.Stmts[0])
	init := mod.Arena.Expr(let.Value)
	require.Equal(t, ast.ExprStructInit, init.Kind)
	assert.Len(t, init.Fields, 2)
}

// Scenario E: a macro declaration with a repetition matcher, and a call
// to it.
func TestParser_MacroDeclarationAndCall(t *testing.T) {
	t.Parallel()

	src := `
macro vec { ($($e:expr),*) => { { let mut l = List.new(); $( l.push($e); )* l } } }
fn f() { let v = vec!(1, 2, 3); }
`
	mod, d := parseModule(t, src)
	require.False(t, d.HasErrors())
	require.Len(t, mod.Decls, 2)

	macroDecl := mod.Arena.Decl(mod.Decls[0])
	require.Equal(t, ast.DeclMacro, macroDecl.Kind)
	require.Len(t, macroDecl.Rules, 1)
	rule := macroDecl.Rules[0]
	require.Len(t, rule.Matcher, 1)
	assert.Equal(t, ast.MatcherRepetition, rule.Matcher[0].Kind)

	fn := mod.Arena.Decl(mod.Decls[1])
	body := mod.Arena.Block(fn.Body)
	let := mod.Arena.Stmt(body.Stmts[0])
	call := mod.Arena.Expr(let.Value)
	assert.Equal(t, ast.ExprMacroCall, call.Kind)
}

// Scenario F: error recovery inside a block. A malformed `let` reports
// one diagnostic, and the statement after it still parses.
func TestParser_ErrorRecoveryInBlock(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn a() { let ; let y = 1; }`)
	assert.Equal(t, 1, d.ErrorCount())
	fn := mod.Arena.Decl(mod.Decls[0])
	body := mod.Arena.Block(fn.Body)
	require.Len(t, body.Stmts, 1)
	let := mod.Arena.Stmt(body.Stmts[0])
	require.Equal(t, ast.StmtLet, let.Kind)
}

func TestParser_ForInLoop(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn f() { for i in 0..5 { print(i); } }`)
	require.False(t, d.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	body := mod.Arena.Block(fn.Body)
	require.Len(t, body.Stmts, 1)
	forStmt := mod.Arena.Stmt(body.Stmts[0])
	require.Equal(t, ast.StmtForIn, forStmt.Kind)
	iterable := mod.Arena.Expr(forStmt.Iterable)
	assert.Equal(t, ast.ExprRange, iterable.Kind)
}

func TestParser_ClassicForLoop(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn f() { for let i = 0; i < 10; i = i + 1 {} }`)
	require.False(t, d.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	body := mod.Arena.Block(fn.Body)
	require.Len(t, body.Stmts, 1)
	forStmt := mod.Arena.Stmt(body.Stmts[0])
	require.Equal(t, ast.StmtForClassic, forStmt.Kind)
	assert.NotZero(t, forStmt.Init)
	assert.NotZero(t, forStmt.Cond)
	assert.NotZero(t, forStmt.Post)
}

func TestParser_StructDeclWithBaseAndGenerics(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `struct Box<T>: Base { pub value: T }`)
	require.False(t, d.HasErrors())
	require.Len(t, mod.Decls, 1)
	decl := mod.Arena.Decl(mod.Decls[0])
	require.Equal(t, ast.DeclStruct, decl.Kind)
	assert.Len(t, decl.Generics, 1)
	assert.NotZero(t, decl.BaseType)
	require.Len(t, decl.Fields, 1)
	assert.True(t, decl.Fields[0].Pub)
}

func TestParser_EnumWithUnderlyingTypeAndVariants(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `enum Color: u8 { Red = 1, Green, Blue(i32), Custom { r: u8, g: u8 } }`)
	require.False(t, d.HasErrors())
	decl := mod.Arena.Decl(mod.Decls[0])
	require.Equal(t, ast.DeclEnum, decl.Kind)
	assert.NotZero(t, decl.BaseType)
	require.Len(t, decl.Variants, 4)
	assert.NotZero(t, decl.Variants[0].Discriminant)
	assert.Len(t, decl.Variants[2].TupleFields, 1)
	assert.Len(t, decl.Variants[3].StructFields, 2)
}

func TestParser_TraitWithSupertraitsAndImpl(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `
trait Greet: Show + Clone {
	fn hello(self) str;
}
impl Greet for Point {
	fn hello(self) str { return "hi"; }
}
`)
	require.False(t, d.HasErrors())
	require.Len(t, mod.Decls, 2)

	trait := mod.Arena.Decl(mod.Decls[0])
	require.Equal(t, ast.DeclTrait, trait.Kind)
	require.Len(t, trait.Supertraits, 2)
	require.Len(t, trait.Members, 1)

	impl := mod.Arena.Decl(mod.Decls[1])
	require.Equal(t, ast.DeclImpl, impl.Kind)
	require.NotNil(t, impl.Trait)
	require.Len(t, impl.Members, 1)
	method := mod.Arena.Decl(impl.Members[0])
	require.Len(t, method.Params, 1)
	assert.Equal(t, "self", mod.Interns.Resolve(method.Params[0].Name.Name))
}

func TestParser_NestedImplRejected(t *testing.T) {
	t.Parallel()

	_, d := parseModule(t, `
impl Point {
	impl Show for Point {}
}
`)
	assert.True(t, d.HasErrors())
}

func TestParser_ExternBlockRejectsStruct(t *testing.T) {
	t.Parallel()

	_, d := parseModule(t, `
extern "C" {
	fn puts(s: str) i32;
	struct Bad {}
}
`)
	assert.True(t, d.HasErrors())
}

func TestParser_ExternVariadic(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `extern "C" { fn printf(fmt: str, ...) i32; }`)
	require.False(t, d.HasErrors())
	extern := mod.Arena.Decl(mod.Decls[0])
	require.Len(t, extern.Members, 1)
	fn := mod.Arena.Decl(extern.Members[0])
	require.Len(t, fn.Params, 2)
	assert.True(t, fn.Params[1].Variadic)
}

func TestParser_UseDeclGroupAndGlob(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `use std.collections.{List, Map};`)
	require.False(t, d.HasErrors())
	decl := mod.Arena.Decl(mod.Decls[0])
	require.Equal(t, ast.DeclUse, decl.Kind)
	require.Len(t, decl.Item.Group, 2)

	mod2, d2 := parseModule(t, `use std.io.*;`)
	require.False(t, d2.HasErrors())
	decl2 := mod2.Arena.Decl(mod2.Decls[0])
	assert.True(t, decl2.Item.Glob)
}

func TestParser_GlobalConstAndStatic(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `
const Pi: f64 = 3;
static mut Counter: i32 = 0;
`)
	require.False(t, d.HasErrors())
	require.Len(t, mod.Decls, 2)
	c := mod.Arena.Decl(mod.Decls[0])
	assert.Equal(t, ast.DeclGlobalConst, c.Kind)
	s := mod.Arena.Decl(mod.Decls[1])
	assert.Equal(t, ast.DeclStatic, s.Kind)
	assert.True(t, s.Mut)
}

func TestParser_LocalConstStatement(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn f() { const x = 1; }`)
	require.False(t, d.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	body := mod.Arena.Block(fn.Body)
	require.Len(t, body.Stmts, 1)
	assert.Equal(t, ast.StmtConst, mod.Arena.Stmt(body.Stmts[0]).Kind)
}

func TestParser_SelfParamVariants(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `
impl Point {
	fn byVal(self) {}
	fn byRef(&self) {}
	fn byMutRef(&mut self) {}
}
`)
	require.False(t, d.HasErrors())
	impl := mod.Arena.Decl(mod.Decls[0])
	require.Len(t, impl.Members, 3)

	byVal := mod.Arena.Decl(impl.Members[0])
	require.Len(t, byVal.Params, 1)
	assert.Equal(t, ast.ExprNamedType, mod.Arena.Expr(byVal.Params[0].Type).Kind)

	byRef := mod.Arena.Decl(impl.Members[1])
	assert.Equal(t, ast.ExprPointerType, mod.Arena.Expr(byRef.Params[0].Type).Kind)

	byMutRef := mod.Arena.Decl(impl.Members[2])
	refType := mod.Arena.Expr(byMutRef.Params[0].Type)
	assert.Equal(t, ast.ExprPointerType, refType.Kind)
	assert.True(t, refType.Mut)
}

func TestParser_ParamDefaultsAndBindingCast(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn greet(name: str = "world", id: as i64) {}`)
	require.False(t, d.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	require.Len(t, fn.Params, 2)
	assert.NotZero(t, fn.Params[0].Default)
	assert.True(t, fn.Params[1].BindingCast)
}

func TestParser_DeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	src := `fn greet(name: str = "world", id: as i64) i32 { return 0; }`
	mod1, d1 := parseModule(t, src)
	mod2, d2 := parseModule(t, src)
	require.False(t, d1.HasErrors())
	require.False(t, d2.HasErrors())

	fn1 := mod1.Arena.Decl(mod1.Decls[0])
	fn2 := mod2.Arena.Decl(mod2.Decls[0])
	if diff := deep.Equal(fn1.Params, fn2.Params); diff != nil {
		t.Errorf("parsing the same source twice produced different parameters: %v", diff)
	}
}

func TestParser_TrailingCommasAccepted(t *testing.T) {
	t.Parallel()

	mod, d := parseModule(t, `fn f(a: i32, b: i32,) { let t = (1, 2,); let p = Point { x: 1, y: 2, }; }`)
	require.False(t, d.HasErrors())
	fn := mod.Arena.Decl(mod.Decls[0])
	require.Len(t, fn.Params, 2)
}
