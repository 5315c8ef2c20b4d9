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
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/infer"
)

// type variable names never generated by a session
var tvars = []string{"T0", "T1", "T2", "T3", "T4", "T5"}

func randType(r *rand.Rand, depth int) ast.Type {
	n := r.Intn(5)
	if depth == 0 || n < 2 {
		if r.Intn(2) == 0 {
			return infer.Var(tvars[r.Intn(len(tvars))])
		}
		return infer.Con([]string{"int", "bool", "string"}[r.Intn(3)])
	}
	switch n {
	case 2:
		args := make([]ast.Type, r.Intn(3))
		for i := range args {
			args[i] = randType(r, depth-1)
		}
		return infer.Fn(randType(r, depth-1), args...)
	case 3:
		return infer.ArrayOf(randType(r, depth-1))
	}
	return infer.Tuple(randType(r, depth-1), randType(r, depth-1))
}

func randSubst(r *rand.Rand, keys []string) infer.Subst {
	s := make(infer.Subst)
	for _, k := range keys {
		if r.Intn(3) > 0 {
			s[k] = randType(r, 2)
		}
	}
	return s
}

func TestApply_identity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		ty := randType(r, 4)
		assert.True(t, infer.Equal(ty, infer.Apply(infer.Subst{}, ty)), "%s", ty)
	}
}

func TestComposeSubst_apply(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		s1 := randSubst(r, tvars[:3])
		s2 := randSubst(r, tvars[3:])
		ty := randType(r, 4)
		want := infer.Apply(s2, infer.Apply(s1, ty))
		got := infer.Apply(infer.ComposeSubst(s2, s1), ty)
		assert.True(t, infer.Equal(want, got), "s1=%s s2=%s t=%s: want %s, got %s", s1, s2, ty, want, got)
	}
}

func TestComposeSubst_overlap(t *testing.T) {
	assert.PanicsWithValue(t, infer.ErrSubstOverlap, func() {
		infer.ComposeSubst(infer.Subst{"a": infer.Con("int")}, infer.Subst{"a": infer.Con("bool"), "b": infer.Var("a")})
	})
}

func TestGeneralize_instantiate(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		s := session()
		env := infer.NewTenv()
		if r.Intn(2) == 0 {
			env = env.Bind("y", infer.Mono(infer.Var(tvars[r.Intn(len(tvars))])))
		}
		ty := randType(r, 4)
		sc := s.Generalize(env, ty, cst.Src{})
		inst := s.Instantiate(sc, cst.Src{})
		assert.True(t, infer.AlphaEqual(ty, inst), "%s vs %s", ty, inst)
		for _, v := range sc.Vars {
			assert.NotContains(t, infer.TypeVars(inst), v)
		}
	}
}

func TestAlphaEqual(t *testing.T) {
	a, b := infer.Var("a"), infer.Var("b")
	assert.True(t, infer.AlphaEqual(infer.Fn(a, a, b), infer.Fn(b, b, a)))
	assert.False(t, infer.AlphaEqual(infer.Fn(a, a, b), infer.Fn(a, a, a)))
	assert.False(t, infer.AlphaEqual(infer.Fn(a, a, a), infer.Fn(a, a, b)))
	assert.False(t, infer.AlphaEqual(infer.ArrayOf(a), infer.ArrayOf(infer.Con("int"))))
}

// gen builds random, mostly well-scoped programs.
//
type gen struct {
	r     *rand.Rand
	names []string
	n     int
}

var builtinFns = []string{"+", "<", "==", "&&", "!", "length", "index", "push", "concat"}

func (g *gen) fresh() string {
	g.n++
	return fmt.Sprintf("v%d", g.n)
}

func (g *gen) leaf() ast.Expr {
	switch g.r.Intn(4) {
	case 0:
		return num(fmt.Sprint(g.r.Intn(10)))
	case 1:
		return v([]string{"true", "false"}[g.r.Intn(2)])
	case 2:
		if len(g.names) > 0 {
			return v(g.names[g.r.Intn(len(g.names))])
		}
	}
	return &ast.Str{Parts: []string{"s"}}
}

func (g *gen) args(depth int) []ast.Expr {
	args := make([]ast.Expr, 1+g.r.Intn(2))
	for i := range args {
		args[i] = g.expr(depth - 1)
	}
	return args
}

func (g *gen) expr(depth int) ast.Expr {
	if depth == 0 {
		return g.leaf()
	}
	switch g.r.Intn(9) {
	case 0:
		return g.leaf()
	case 1:
		params := []string{g.fresh()}
		if g.r.Intn(2) == 0 {
			params = append(params, g.fresh())
		}
		saved := g.names
		g.names = append(g.names[:len(g.names):len(g.names)], params...)
		body := g.expr(depth - 1)
		g.names = saved
		return lambda(body, params...)
	case 2:
		return call(v(builtinFns[g.r.Intn(len(builtinFns))]), g.args(depth)...)
	case 3:
		return call(g.expr(depth-1), g.args(depth)...)
	case 4:
		return &ast.If{Cond: g.expr(depth - 1), Yes: g.expr(depth - 1), No: g.expr(depth - 1)}
	case 5:
		items := make([]ast.ArrayItem, g.r.Intn(3))
		for i := range items {
			items[i] = ast.ArrayItem{Value: g.expr(depth - 1), Spread: g.r.Intn(4) == 0}
		}
		return &ast.Array{Items: items}
	case 6:
		saved := g.names
		var stmts []ast.Stmt
		for i := g.r.Intn(3); i >= 0; i-- {
			name := g.fresh()
			g.names = append(g.names[:len(g.names):len(g.names)], name)
			stmts = append(stmts, let(name, g.expr(depth-1)))
		}
		stmts = append(stmts, stmt(g.expr(depth-1)))
		g.names = saved
		return &ast.Block{Stmts: stmts}
	case 7:
		return call(v(","), g.expr(depth-1), g.expr(depth-1))
	}
	a, b := g.fresh(), g.fresh()
	saved := g.names
	g.names = append(g.names[:len(g.names):len(g.names)], a, b)
	body := g.expr(depth - 1)
	g.names = saved
	return &ast.Match{Target: g.expr(depth - 1), Cases: []*ast.Case{
		{Pat: &ast.PCon{Name: ",", Args: []ast.Pat{pv(a), pv(b)}}, Body: body},
	}}
}

// TestInfer_substDisjoint checks that inference never composes overlapping
// substitutions and that the global substitution stays idempotent.
//
func TestInfer_substDisjoint(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	s := session()
	for i := 0; i < 1000; i++ {
		g := &gen{r: r}
		prog := let("p", g.expr(5))
		s.Reset()
		require.NotPanics(t, func() {
			_, err := s.InferStmt(infer.Builtins(), prog)
			if err != nil {
				require.IsType(t, &infer.Error{}, err)
			}
		}, "program %d: %s", i, ast.StmtString(prog))
		sub := s.Subst()
		for _, k := range sub.Keys() {
			for _, val := range sub {
				require.NotContains(t, infer.TypeVars(val), k, "program %d: substitution is not idempotent", i)
			}
		}
	}
}
