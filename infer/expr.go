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

package infer

import (
	"fmt"

	"github.com/db47h/hindley/ast"
)

func exprNodes(es []ast.Expr) []ast.Node {
	ns := make([]ast.Node, len(es))
	for i, e := range es {
		ns[i] = e
	}
	return ns
}

func (s *Session) inferExpr(env *Tenv, e ast.Expr) ast.Type {
	src := e.Source()
	s.push(src, env, exprFrame(e)...)
	t := s.inferExprInner(env, e)
	s.emit(Event{Kind: Infer, Src: src, Type: s.Apply(t)})
	s.breakpoint(src, "")
	s.pop(src)
	return t
}

func exprFrame(e ast.Expr) []FrameItem {
	switch e := e.(type) {
	case *ast.Prim:
		return []FrameItem{text(e.Text)}
	case *ast.Var:
		return []FrameItem{text(e.Name)}
	case *ast.Str:
		return append([]FrameItem{kwd("string")}, holes(exprNodes(e.Exprs)...)...)
	case *ast.Array:
		f := []FrameItem{text("[")}
		for i, it := range e.Items {
			if i > 0 {
				f = append(f, text(", "))
			}
			if it.Spread {
				f = append(f, text("..."))
			}
			f = append(f, hole(it.Value))
		}
		return append(f, text("]"))
	case *ast.Lambda:
		ns := make([]ast.Node, len(e.Params))
		for i, p := range e.Params {
			ns[i] = p
		}
		f := append([]FrameItem{text("(")}, holes(ns...)...)
		return append(f, text(") =>"), hole(e.Body))
	case *ast.App:
		f := []FrameItem{hole(e.Fn), text("(")}
		f = append(f, holes(exprNodes(e.Args)...)...)
		return append(f, text(")"))
	case *ast.If:
		f := []FrameItem{kwd("if"), hole(e.Cond), hole(e.Yes)}
		if e.No != nil {
			f = append(f, kwd("else"), hole(e.No))
		}
		return f
	case *ast.Block:
		f := []FrameItem{text("{")}
		for _, st := range e.Stmts {
			f = append(f, hole(st))
		}
		return append(f, text("}"))
	case *ast.Match:
		f := []FrameItem{kwd("match"), hole(e.Target)}
		for _, c := range e.Cases {
			f = append(f, hole(c.Pat), text("=>"), hole(c.Body))
		}
		return f
	}
	return nil
}

func (s *Session) inferExprInner(env *Tenv, e ast.Expr) ast.Type {
	switch e := e.(type) {
	case *ast.Prim:
		return &ast.TCon{Name: e.Kind.String(), Src: e.Src}

	case *ast.Str:
		for _, x := range e.Exprs {
			s.inferExpr(env, x)
		}
		return &ast.TCon{Name: TString, Src: e.Src}

	case *ast.Var:
		sc, ok := env.Lookup(e.Name)
		if !ok {
			fail(e.Src, "Unbound variable: %s", e.Name)
		}
		return s.Instantiate(sc, e.Src)

	case *ast.Array:
		item := s.NewTypeVar(ArrayItem, e.Src)
		for _, it := range e.Items {
			t := s.inferExpr(env.Apply(s.subst), it.Value)
			if it.Spread {
				s.unify(t, ArrayOf(s.Apply(item)), it.Value.Source(), "spread", "array")
			} else {
				s.unify(t, s.Apply(item), it.Value.Source(), "item", "array item")
			}
		}
		return withSrc(ArrayOf(s.Apply(item)), e.Src)

	case *ast.Lambda:
		return s.inferLambda(env, e)

	case *ast.App:
		res := s.NewTypeVar(ApplyResult, e.Src)
		fn := s.inferExpr(env, e.Fn)
		args := make([]ast.Type, len(e.Args))
		for i, a := range e.Args {
			args[i] = s.inferExpr(env.Apply(s.subst), a)
		}
		s.unify(fn, withSrc(Fn(res, args...), e.Src), e.Src, "function", "call")
		return s.Apply(res)

	case *ast.If:
		cond := s.inferExpr(env, e.Cond)
		s.unify(cond, Con(TBool), e.Cond.Source(), "condition", TBool)
		yes := s.inferExpr(env.Apply(s.subst), e.Yes)
		var no ast.Type = Con(TVoid)
		if e.No != nil {
			no = s.inferExpr(env.Apply(s.subst), e.No)
		}
		s.unify(yes, no, e.Src, "then", "else")
		return s.Apply(yes)

	case *ast.Block:
		var t ast.Type = &ast.TCon{Name: TVoid, Src: e.Src}
		local := env
		for _, st := range e.Stmts {
			t, local = s.inferStmt(local, st)
		}
		return s.Apply(t)

	case *ast.Match:
		target := s.inferExpr(env, e.Target)
		var res ast.Type
		for _, c := range e.Cases {
			pt, bs := s.inferPattern(env, c.Pat)
			s.unify(pt, target, c.Pat.Source(), "pattern", "target")
			bt := s.inferExpr(env.With(bs...).Apply(s.subst), c.Body)
			if res == nil {
				res = bt
				continue
			}
			s.unify(bt, res, c.Body.Source(), "case", "match")
		}
		if res == nil {
			return &ast.TCon{Name: TVoid, Src: e.Src}
		}
		return s.Apply(res)
	}
	panic(fmt.Sprintf("infer: unexpected expression %T", e))
}

// ReturnName is the synthetic scope entry bound to the return type of the
// innermost lambda.
//
const ReturnName = "return"

func (s *Session) inferLambda(env *Tenv, e *ast.Lambda) ast.Type {
	if len(e.Params) == 0 {
		fail(e.Src, "empty lambda")
	}
	params := make([]ast.Type, len(e.Params))
	var bs []Binding
	for i, p := range e.Params {
		var pbs []Binding
		params[i], pbs = s.inferPattern(env, p)
		bs = append(bs, pbs...)
	}
	ret := s.NewTypeVar(LambdaReturn, e.Src)
	bs = append(bs, Binding{ReturnName, Mono(ret)})
	body := s.inferExpr(env.With(bs...), e.Body)
	s.unify(body, s.Apply(ret), e.Body.Source(), "body", ReturnName)
	return withSrc(Fn(s.Apply(ret), applyAll(s.subst, params)...), e.Src)
}
