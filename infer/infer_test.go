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

package infer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/infer"
	"github.com/db47h/hindley/internal/log"
)

func session() *infer.Session {
	return infer.NewSession(infer.Logger(log.Discard()))
}

func v(name string) *ast.Var        { return &ast.Var{Name: name} }
func num(n string) *ast.Prim        { return &ast.Prim{Kind: ast.Int, Text: n} }
func pv(name string) *ast.PVar      { return &ast.PVar{Name: name} }
func stmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

func call(fn ast.Expr, args ...ast.Expr) *ast.App { return &ast.App{Fn: fn, Args: args} }

func lambda(body ast.Expr, params ...string) *ast.Lambda {
	ps := make([]ast.Pat, len(params))
	for i, p := range params {
		ps[i] = pv(p)
	}
	return &ast.Lambda{Params: ps, Body: body}
}

func let(name string, init ast.Expr) *ast.Let { return &ast.Let{Pat: pv(name), Init: init} }

// typeCmp compares types structurally, ignoring sources.
var typeCmp = cmp.Comparer(infer.Equal)

func breaks(events []infer.Event) []string {
	var msgs []string
	for _, e := range events {
		if e.Kind == infer.StackBreak && e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func TestScenario_monomorphicLet(t *testing.T) {
	s := session()
	res, err := s.InferExpr(infer.Builtins(), &ast.Block{Stmts: []ast.Stmt{let("x", num("2"))}})
	require.NoError(t, err)
	assert.Equal(t, "int", res.Type.String())

	res, err = s.InferStmt(infer.Builtins(), let("x", num("2")))
	require.NoError(t, err)
	sc, ok := res.Scope.Lookup("x")
	require.True(t, ok)
	assert.Empty(t, sc.Vars)
	assert.Equal(t, "int", sc.String())
}

func TestScenario_polymorphicId(t *testing.T) {
	s := session()
	res, err := s.InferStmt(infer.Builtins(), let("id", lambda(v("x"), "x")))
	require.NoError(t, err)
	sc, _ := res.Scope.Lookup("id")
	assert.Equal(t, "<a>(a) => a", sc.String())

	// instances are independent
	env := res.Scope
	res, err = s.InferExpr(env, call(v(","), call(v("id"), num("1")), call(v("id"), v("true"))))
	require.NoError(t, err)
	assert.Equal(t, "(int, bool)", res.Type.String())
	assert.Empty(t, breaks(s.Events()))
}

func TestScenario_application(t *testing.T) {
	s := session()
	tv := infer.Var("T")
	env := infer.Builtins().Bind("f", infer.Mono(infer.Fn(tv, infer.Con("int"), infer.Con("bool"))))
	res, err := s.InferExpr(env, call(v("f"), num("2"), v("true")))
	require.NoError(t, err)
	if diff := cmp.Diff(s.Apply(tv), res.Type, typeCmp); diff != "" {
		t.Errorf("result type mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, breaks(s.Events()))
}

func TestScenario_softMismatch(t *testing.T) {
	s := session()
	u, err := s.Unify(infer.Con("int"), infer.Con("bool"), cst.Src{}, "int", "bool")
	require.NoError(t, err)
	assert.Empty(t, u)
	assert.Equal(t, []string{"Incompatible concrete types: int vs bool"}, breaks(s.Events()))

	// a type-incorrect program still runs to completion
	s.Reset()
	res, err := s.InferExpr(infer.Builtins(), call(v("+"), num("1"), v("true")))
	require.NoError(t, err)
	assert.Equal(t, "int", res.Type.String())
	assert.Equal(t, []string{"Incompatible concrete types: int vs bool"}, breaks(s.Events()))
}

func TestUnify_shapeMismatch(t *testing.T) {
	intT := infer.Con("int")
	tests := []struct {
		name string
		a, b ast.Type
		msg  string
	}{
		{"con_fn", intT, infer.Fn(intT, intT), "Incompatible types: int vs (int) => int"},
		{"fn_con", infer.Fn(intT, intT), intT, "Incompatible types: (int) => int vs int"},
		{"app_fn", infer.ArrayOf(intT), infer.Fn(intT), "Incompatible types: Array<int> vs () => int"},
		{"con_app", intT, infer.ArrayOf(intT), "Incompatible types: int vs Array<int>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session()
			u, err := s.Unify(tt.a, tt.b, cst.Src{}, "a", "b")
			require.NoError(t, err)
			assert.Empty(t, u)
			assert.Empty(t, s.Subst())
			assert.Equal(t, []string{tt.msg}, breaks(s.Events()))
		})
	}
}

func TestScenario_emptyLambda(t *testing.T) {
	s := session()
	_, err := s.InferExpr(infer.Builtins(), &ast.Lambda{Body: num("1")})
	require.Error(t, err)
	assert.IsType(t, &infer.Error{}, err)
	assert.Equal(t, "empty lambda", err.(*infer.Error).Msg)
}

func TestScenario_recursion(t *testing.T) {
	s := session()
	fact := let("fact", lambda(&ast.If{
		Cond: call(v("<="), v("n"), num("1")),
		Yes:  num("1"),
		No:   call(v("*"), v("n"), call(v("fact"), call(v("-"), v("n"), num("1")))),
	}, "n"))
	res, err := s.InferStmt(infer.Builtins(), fact)
	require.NoError(t, err)
	sc, _ := res.Scope.Lookup("fact")
	assert.Equal(t, "(int) => int", sc.String())
	assert.Empty(t, breaks(s.Events()))
}

func TestInfer_errors(t *testing.T) {
	tests := []struct {
		name string
		env  *infer.Tenv
		stmt ast.Stmt
		want string
	}{
		{"unbound", nil, stmt(v("nope")), "Unbound variable: nope"},
		{"occurs", nil, let("w", lambda(call(v("x"), v("x")), "x")), "Cycle detected: b occurs in (b) => d"},
		{"arity", infer.Builtins().Bind("g", infer.Mono(infer.Fn(infer.Con("int"), infer.Con("int")))),
			stmt(call(v("g"), num("1"), num("2"))), "Arity mismatch: (int) => int has 1 arguments, (int, int) => a has 2"},
		{"return", nil, &ast.Return{Value: num("1")}, "return outside of a lambda"},
		{"constructor", nil, stmt(&ast.Match{Target: num("1"), Cases: []*ast.Case{
			{Pat: &ast.PCon{Name: "Some", Args: []ast.Pat{pv("x")}}, Body: v("x")},
		}}), "Unknown constructor: Some"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.env
			if env == nil {
				env = infer.Builtins()
			}
			_, err := session().InferStmt(env, tt.stmt)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.(*infer.Error).Msg)
		})
	}
}

func TestInfer_expressions(t *testing.T) {
	env := infer.Builtins()
	tests := []struct {
		name string
		e    ast.Expr
		want string
	}{
		{"float", &ast.Prim{Kind: ast.Float, Text: "2.5"}, "float"},
		{"string", &ast.Str{Parts: []string{"a", ""}, Exprs: []ast.Expr{num("1")}}, "string"},
		{"array", &ast.Array{Items: []ast.ArrayItem{{Value: num("1")}, {Value: num("2")}}}, "Array<int>"},
		{"spread", &ast.Array{Items: []ast.ArrayItem{
			{Value: num("1")},
			{Value: &ast.Array{Items: []ast.ArrayItem{{Value: num("2")}}}, Spread: true},
		}}, "Array<int>"},
		{"empty_array", &ast.Array{}, "Array<a>"},
		{"if_no_else", &ast.If{Cond: v("true"), Yes: &ast.Block{}}, "void"},
		{"higher_order", lambda(call(v("f"), call(v("f"), v("x"))), "f", "x"), "((c) => c, c) => c"},
		{"early_return", lambda(&ast.Block{Stmts: []ast.Stmt{
			stmt(&ast.If{Cond: v("b"), Yes: &ast.Block{Stmts: []ast.Stmt{&ast.Return{Value: num("1")}}}, No: &ast.Block{}}),
			stmt(num("2")),
		}}, "b"), "(bool) => int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := session().InferExpr(env, tt.e)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Type.String())
		})
	}
}

func TestInfer_match(t *testing.T) {
	s := session()
	m := &ast.Match{
		Target: call(v(","), num("1"), v("true")),
		Cases: []*ast.Case{
			{Pat: &ast.PCon{Name: ",", Args: []ast.Pat{&ast.PAny{}, pv("b")}}, Body: v("b")},
			{Pat: &ast.PAny{}, Body: v("false")},
		},
	}
	res, err := s.InferExpr(infer.Builtins(), m)
	require.NoError(t, err)
	assert.Equal(t, "bool", res.Type.String())
	assert.Empty(t, breaks(s.Events()))

	res, err = s.InferExpr(infer.Builtins(), &ast.Match{Target: num("1")})
	require.NoError(t, err)
	assert.Equal(t, "void", res.Type.String())
}

func TestInfer_userConstructors(t *testing.T) {
	env := infer.Builtins().WithType("Option", 1).WithAlias("Opt", &infer.Alias{
		Params: []string{"t"},
		Body:   infer.App(infer.Con("Option"), infer.Var("t")),
	})
	a := infer.Var("a")
	env, err := env.WithConstructor("Some", infer.Forall([]string{"a"}, infer.Fn(infer.App(infer.Con("Opt"), a), a)))
	require.NoError(t, err)
	sc := env.Constructors["Some"]
	assert.Equal(t, "<a>(a) => Option<a>", sc.String())

	_, err = env.WithConstructor("Bad", infer.Mono(infer.Fn(infer.App(infer.Con("Option")))))
	assert.EqualError(t, err, "constructor Bad: type Option expects 1 type arguments, got 0")
	_, err = env.WithConstructor("Bad", infer.Mono(infer.Con("int")))
	assert.EqualError(t, err, "constructor Bad: not a function type: int")
	_, err = env.Resolve(infer.Con("Nope"))
	assert.EqualError(t, err, "unknown type Nope")

	m := &ast.Match{
		Target: v("o"),
		Cases:  []*ast.Case{{Pat: &ast.PCon{Name: "Some", Args: []ast.Pat{pv("x")}}, Body: call(v("+"), v("x"), num("1"))}},
	}
	res, err := session().InferExpr(env.Bind("o", infer.Mono(infer.Var("z"))), lambda(m, "o"))
	require.NoError(t, err)
	assert.Equal(t, "(Option<int>) => int", res.Type.String())

	bad := &ast.Match{Target: v("o"), Cases: []*ast.Case{{Pat: &ast.PCon{Name: "Some"}, Body: num("1")}}}
	_, err = session().InferExpr(env, lambda(bad, "o"))
	require.Error(t, err)
	assert.Equal(t, "Arity mismatch: constructor Some expects 1 arguments, got 0", err.(*infer.Error).Msg)
}

func TestInfer_for(t *testing.T) {
	loop := &ast.For{
		Init:   let("i", num("0")),
		Cond:   call(v("<"), v("i"), num("10")),
		Update: call(v("+"), v("i"), num("1")),
		Body:   &ast.Block{Stmts: []ast.Stmt{stmt(call(v("push"), v("xs"), v("i")))}},
	}
	s := session()
	env := infer.Builtins().Bind("xs", infer.Mono(infer.ArrayOf(infer.Var("E"))))
	res, err := s.InferStmt(env, loop)
	require.NoError(t, err)
	assert.Equal(t, "void", res.Type.String())
	assert.Equal(t, "int", s.Apply(infer.Var("E")).String())
	_, ok := res.Scope.Lookup("i")
	assert.False(t, ok, "loop variable escapes")
}

func TestSession_events(t *testing.T) {
	s := session()
	_, err := s.InferStmt(infer.Builtins(), let("id", lambda(v("x"), "x")))
	require.NoError(t, err)
	st := s.State()
	require.NotEmpty(t, st.Events)

	depth := 0
	for _, e := range st.Events {
		switch e.Kind {
		case infer.StackPush:
			depth++
		case infer.StackPop:
			depth--
		case infer.NewVar:
			info, ok := st.TypeVars[e.Type.(*ast.TVar).Name]
			require.True(t, ok)
			assert.Equal(t, e.Prov, info.Prov)
		}
		require.GreaterOrEqual(t, depth, 0)
	}
	assert.Equal(t, 0, depth)

	var provs []string
	for _, name := range []string{"a", "b", "c"} {
		provs = append(provs, st.TypeVars[name].Prov.String())
	}
	assert.Equal(t, []string{"pattern-variable", "pattern-variable", "lambda-return"}, provs)

	// consecutive scope events always differ
	var last *infer.Event
	for i := range st.Events {
		e := &st.Events[i]
		if e.Kind != infer.Scope {
			continue
		}
		if last != nil {
			assert.False(t, cmp.Equal(last.Scope, e.Scope, cmp.Comparer(func(a, b *infer.Scheme) bool {
				return a.String() == b.String()
			})), "duplicate scope snapshot at event %d", i)
		}
		last = e
	}
	require.NotNil(t, last)

	s.Reset()
	st = s.State()
	assert.Empty(t, st.Events)
	assert.Empty(t, st.Subst)
	assert.Empty(t, st.TypeVars)
	assert.Equal(t, "a", s.NewTypeVar(infer.ArrayItem, cst.Src{}).Name)
}

func TestSession_generalize(t *testing.T) {
	s := session()
	env := infer.NewTenv().Bind("y", infer.Mono(infer.Var("b")))
	sc := s.Generalize(env, infer.Fn(infer.Var("b"), infer.Var("a"), infer.Var("c"), infer.Var("a")), cst.Src{})
	assert.Equal(t, []string{"a", "c"}, sc.Vars)
	assert.Equal(t, "<a, c>(a, c, a) => b", sc.String())
}
