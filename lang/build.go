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

package lang

import (
	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	g "github.com/db47h/hindley/grammar"
	"github.com/db47h/hindley/infer"
)

func expr(s *g.Scope, name string) ast.Expr {
	e, _ := s.Get(name).(ast.Expr)
	return e
}

func pat(s *g.Scope, name string) ast.Pat {
	p, _ := s.Get(name).(ast.Pat)
	return p
}

func list(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

func exprs(v interface{}) []ast.Expr {
	l := list(v)
	es := make([]ast.Expr, len(l))
	for i := range l {
		es[i] = l[i].(ast.Expr)
	}
	return es
}

func pats(v interface{}) []ast.Pat {
	l := list(v)
	ps := make([]ast.Pat, len(l))
	for i := range l {
		ps[i] = l[i].(ast.Pat)
	}
	return ps
}

func buildLet(s *g.Scope, src cst.Src) ast.Stmt {
	return &ast.Let{Pat: pat(s, "pat"), Init: expr(s, "init"), Src: src}
}

func buildReturn(s *g.Scope, src cst.Src) ast.Stmt {
	return &ast.Return{Value: expr(s, "value"), Src: src}
}

func buildExprStmt(s *g.Scope, src cst.Src) ast.Stmt {
	return &ast.ExprStmt{Expr: s.Value.(ast.Expr), Src: src}
}

func buildFor(s *g.Scope, src cst.Src) ast.Stmt {
	init, _ := s.Get("init").(ast.Stmt)
	return &ast.For{Init: init, Cond: expr(s, "cond"), Update: expr(s, "update"), Body: expr(s, "body"), Src: src}
}

func buildLambda(s *g.Scope, src cst.Src) ast.Expr {
	ps, _ := s.Get("params").([]ast.Pat)
	return &ast.Lambda{Params: ps, Body: expr(s, "body"), Src: src}
}

func buildParams(s *g.Scope, _ cst.Src) []ast.Pat {
	return pats(list(s.Value)[0])
}

func buildParam(s *g.Scope, src cst.Src) []ast.Pat {
	return []ast.Pat{&ast.PVar{Name: s.Value.(*cst.Id).Text, Src: src}}
}

func buildIf(s *g.Scope, src cst.Src) ast.Expr {
	return &ast.If{Cond: expr(s, "cond"), Yes: expr(s, "yes"), No: expr(s, "no"), Src: src}
}

func buildMatch(s *g.Scope, src cst.Src) ast.Expr {
	m := &ast.Match{Target: expr(s, "target"), Src: src}
	for _, c := range list(s.Get("cases")) {
		m.Cases = append(m.Cases, c.(*ast.Case))
	}
	return m
}

func buildCase(s *g.Scope, src cst.Src) *ast.Case {
	return &ast.Case{Pat: pat(s, "pat"), Body: expr(s, "body"), Src: src}
}

// buildCond builds a ternary conditional, or returns the bare test if there
// is none.
//
func buildCond(s *g.Scope, src cst.Src) ast.Expr {
	if !s.Has("yes") {
		return expr(s, "test")
	}
	return &ast.If{Cond: expr(s, "test"), Yes: expr(s, "yes"), No: expr(s, "no"), Src: src}
}

func buildNot(s *g.Scope, src cst.Src) ast.Expr {
	op := list(s.Value)[0].(*cst.Id)
	return &ast.App{Fn: &ast.Var{Name: op.Text, Src: cst.Src{Left: op.ID}}, Args: []ast.Expr{expr(s, "x")}, Src: src}
}

func buildNeg(s *g.Scope, src cst.Src) ast.Expr {
	p := *s.Get("n").(*ast.Prim)
	p.Text = "-" + p.Text
	p.Src = src
	return &p
}

type suffix struct {
	args  []ast.Expr
	index ast.Expr
	src   cst.Src
}

func buildCall(s *g.Scope, src cst.Src) suffix {
	return suffix{args: exprs(s.Get("args")), src: src}
}

func buildIndex(s *g.Scope, src cst.Src) suffix {
	return suffix{index: expr(s, "i"), src: src}
}

// buildPostfix folds call and index suffixes left to right. Indexing is an
// application of the index builtin.
//
func buildPostfix(s *g.Scope, src cst.Src) ast.Expr {
	e := expr(s, "head")
	sfx := list(s.Get("suffixes"))
	for i, v := range sfx {
		x := v.(suffix)
		at := cst.Src{Left: src.Left, Right: x.src.Left}
		if i == len(sfx)-1 {
			at = src
		}
		if x.index != nil {
			e = &ast.App{Fn: &ast.Var{Name: "index", Src: x.src}, Args: []ast.Expr{e, x.index}, Src: at}
			continue
		}
		e = &ast.App{Fn: e, Args: x.args, Src: at}
	}
	return e
}

func buildFloat(s *g.Scope, src cst.Src) ast.Expr {
	text := s.Get("int").(*cst.Id).Text + "." + s.Get("frac").(*cst.Id).Text
	return &ast.Prim{Kind: ast.Float, Text: text, Src: src}
}

func buildPrim(k ast.PrimKind) func(*g.Scope, cst.Src) ast.Expr {
	return func(s *g.Scope, src cst.Src) ast.Expr {
		return &ast.Prim{Kind: k, Text: s.Value.(*cst.Id).Text, Src: src}
	}
}

func buildStr(s *g.Scope, src cst.Src) ast.Expr {
	tv := s.Value.(*g.TextValue)
	return &ast.Str{Parts: tv.Parts, Exprs: exprs(tv.Values), Src: src}
}

func buildVar(s *g.Scope, src cst.Src) ast.Expr {
	return &ast.Var{Name: s.Value.(*cst.Id).Text, Src: src}
}

// buildTuple returns a parenthesized expression or, for more than one item, a
// tuple built from right-nested pairs.
//
func buildTuple(s *g.Scope, src cst.Src) ast.Expr {
	items := append([]ast.Expr{expr(s, "first")}, exprs(s.Get("rest"))...)
	e := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		e = &ast.App{Fn: &ast.Var{Name: infer.TTuple, Src: src}, Args: []ast.Expr{items[i], e}, Src: src}
	}
	return e
}

func buildArray(s *g.Scope, src cst.Src) ast.Expr {
	a := &ast.Array{Src: src}
	for _, it := range list(s.Get("items")) {
		a.Items = append(a.Items, it.(ast.ArrayItem))
	}
	return a
}

func buildSpread(s *g.Scope, _ cst.Src) ast.ArrayItem {
	return ast.ArrayItem{Value: expr(s, "x"), Spread: true}
}

func buildItem(s *g.Scope, _ cst.Src) ast.ArrayItem {
	return ast.ArrayItem{Value: s.Value.(ast.Expr)}
}

func buildBlock(s *g.Scope, src cst.Src) ast.Expr {
	b := &ast.Block{Src: src}
	for _, st := range list(s.Get("stmts")) {
		b.Stmts = append(b.Stmts, st.(ast.Stmt))
	}
	return b
}

func buildPAny(_ *g.Scope, src cst.Src) ast.Pat {
	return &ast.PAny{Src: src}
}

func buildPPrim(s *g.Scope, src cst.Src) ast.Pat {
	p := s.Value.(*ast.Prim)
	return &ast.PPrim{Kind: p.Kind, Text: p.Text, Src: src}
}

func buildPStr(s *g.Scope, src cst.Src) ast.Pat {
	return &ast.PStr{Value: s.Value.(*g.TextValue).Parts[0], Src: src}
}

func buildPCon(s *g.Scope, src cst.Src) ast.Pat {
	return &ast.PCon{Name: s.Get("name").(*cst.Id).Text, Args: pats(s.Get("args")), Src: src}
}

func buildPTuple(s *g.Scope, src cst.Src) ast.Pat {
	items := append([]ast.Pat{pat(s, "first")}, pats(s.Get("rest"))...)
	p := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		p = &ast.PCon{Name: infer.TTuple, Args: []ast.Pat{items[i], p}, Src: src}
	}
	return p
}

// buildPVar binds a name. Blank atoms match anything and true and false match
// booleans.
//
func buildPVar(s *g.Scope, src cst.Src) ast.Pat {
	a := s.Value.(*cst.Id)
	switch a.Text {
	case "":
		return &ast.PAny{Src: src}
	case "true", "false":
		return &ast.PPrim{Kind: ast.Bool, Text: a.Text, Src: src}
	}
	return &ast.PVar{Name: a.Text, Src: src}
}
