// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/db47h/hindley/ast"
)

func v(name string) *ast.Var { return &ast.Var{Name: name} }

func num(n string) *ast.Prim { return &ast.Prim{Kind: ast.Int, Text: n} }

func call(fn string, args ...ast.Expr) *ast.App { return &ast.App{Fn: v(fn), Args: args} }

func TestTypeString(t *testing.T) {
	a := &ast.TVar{Name: "a"}
	intT := &ast.TCon{Name: "int"}
	tests := []struct {
		name string
		t    ast.Type
		want string
	}{
		{"var", a, "a"},
		{"fn", &ast.TFn{Args: []ast.Type{a}, Result: a}, "(a) => a"},
		{"fn0", &ast.TFn{Result: intT}, "() => int"},
		{"app", &ast.TApp{Target: &ast.TCon{Name: "Array"}, Args: []ast.Type{intT}}, "Array<int>"},
		{"tuple", &ast.TApp{Target: &ast.TCon{Name: ","}, Args: []ast.Type{intT, a}}, "(int, a)"},
		{"higher", &ast.TFn{
			Args:   []ast.Type{&ast.TFn{Args: []ast.Type{a}, Result: intT}},
			Result: &ast.TApp{Target: &ast.TCon{Name: "Array"}, Args: []ast.Type{a}},
		}, "((a) => int) => Array<a>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.t.String())
		})
	}
}

func TestExprString(t *testing.T) {
	fact := &ast.Lambda{
		Params: []ast.Pat{&ast.PVar{Name: "n"}},
		Body: &ast.If{
			Cond: call("<=", v("n"), num("1")),
			Yes:  num("1"),
			No:   call("*", v("n"), call("fact", call("-", v("n"), num("1")))),
		},
	}
	assert.Equal(t, "(n) => if (<=(n, 1)) 1 else *(n, fact(-(n, 1)))", ast.ExprString(fact))
	assert.Equal(t, "let fact = "+ast.ExprString(fact), ast.StmtString(&ast.Let{Pat: &ast.PVar{Name: "fact"}, Init: fact}))

	arr := &ast.Array{Items: []ast.ArrayItem{{Value: num("1")}, {Value: v("xs"), Spread: true}}}
	assert.Equal(t, "[1, ...xs]", ast.ExprString(arr))

	str := &ast.Str{Parts: []string{"a ", "$"}, Exprs: []ast.Expr{v("b")}}
	assert.Equal(t, `"a ${b}\$"`, ast.ExprString(str))

	m := &ast.Match{Target: v("p"), Cases: []*ast.Case{
		{Pat: &ast.PCon{Name: ",", Args: []ast.Pat{&ast.PVar{Name: "a"}, &ast.PAny{}}}, Body: v("a")},
		{Pat: &ast.PStr{Value: "x"}, Body: num("2")},
	}}
	assert.Equal(t, `match (p) { (a, _) => a, "x" => 2 }`, ast.ExprString(m))
	assert.Equal(t, "(1, 2)", ast.ExprString(call(",", num("1"), num("2"))))
}

func TestFreeVars(t *testing.T) {
	tests := []struct {
		name string
		e    ast.Expr
		want []string
	}{
		{"var", v("x"), []string{"x"}},
		{"lambda_bound", &ast.Lambda{Params: []ast.Pat{&ast.PVar{Name: "x"}}, Body: call("+", v("x"), v("y"))}, []string{"+", "y"}},
		{"let_recursive", &ast.Block{Stmts: []ast.Stmt{
			&ast.Let{Pat: &ast.PVar{Name: "f"}, Init: call("f", v("a"))},
			&ast.ExprStmt{Expr: call("f", v("b"), v("a"))},
		}}, []string{"a", "b"}},
		{"block_order", &ast.Block{Stmts: []ast.Stmt{
			&ast.ExprStmt{Expr: v("x")},
			&ast.Let{Pat: &ast.PVar{Name: "x"}, Init: num("1")},
			&ast.ExprStmt{Expr: v("x")},
		}}, []string{"x"}},
		{"match", &ast.Match{Target: v("t"), Cases: []*ast.Case{
			{Pat: &ast.PCon{Name: "Some", Args: []ast.Pat{&ast.PVar{Name: "y"}}}, Body: call("g", v("y"))},
		}}, []string{"t", "g"}},
		{"str", &ast.Str{Parts: []string{"", ""}, Exprs: []ast.Expr{v("s")}}, []string{"s"}},
		{"prim", num("3"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.FreeVars(tt.e))
		})
	}
}

func TestVisitor_prune(t *testing.T) {
	e := call("f", &ast.Lambda{Params: []ast.Pat{&ast.PVar{Name: "x"}}, Body: v("x")}, v("y"))
	var seen []string
	vis := &ast.Visitor{
		Expr: func(e ast.Expr) bool {
			if x, ok := e.(*ast.Var); ok {
				seen = append(seen, x.Name)
			}
			_, isLambda := e.(*ast.Lambda)
			return !isLambda
		},
	}
	vis.WalkExpr(e)
	assert.Equal(t, []string{"f", "y"}, seen)
	assert.Equal(t, []string{"x", "y"}, ast.PatVars(&ast.PCon{Name: ",", Args: []ast.Pat{&ast.PVar{Name: "x"}, &ast.PVar{Name: "y"}}}))
}
