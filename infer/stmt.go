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

func stmtFrame(st ast.Stmt) []FrameItem {
	switch st := st.(type) {
	case *ast.Let:
		return []FrameItem{kwd("let"), hole(st.Pat), text("="), hole(st.Init)}
	case *ast.Return:
		if st.Value == nil {
			return []FrameItem{kwd("return")}
		}
		return []FrameItem{kwd("return"), hole(st.Value)}
	case *ast.ExprStmt:
		return []FrameItem{hole(st.Expr)}
	case *ast.For:
		f := []FrameItem{kwd("for")}
		if st.Init != nil {
			f = append(f, hole(st.Init))
		}
		if st.Cond != nil {
			f = append(f, hole(st.Cond))
		}
		if st.Update != nil {
			f = append(f, hole(st.Update))
		}
		return append(f, hole(st.Body))
	}
	return nil
}

// inferStmt returns the type of st and the environment following it.
//
func (s *Session) inferStmt(env *Tenv, st ast.Stmt) (ast.Type, *Tenv) {
	src := st.Source()
	s.push(src, env, stmtFrame(st)...)
	t, next := s.inferStmtInner(env, st)
	s.emit(Event{Kind: Infer, Src: src, Type: s.Apply(t)})
	s.pop(src)
	return t, next
}

func (s *Session) inferStmtInner(env *Tenv, st ast.Stmt) (ast.Type, *Tenv) {
	switch st := st.(type) {
	case *ast.ExprStmt:
		return s.inferExpr(env, st.Expr), env

	case *ast.Let:
		pt, bs := s.inferPattern(env, st.Pat)
		// bindings are visible in their own initializer
		init := s.inferExpr(env.With(bs...), st.Init)
		s.unify(pt, init, st.Src, "binding", "value")
		_, isFn := st.Init.(*ast.Lambda)
		outer := env.Apply(s.subst)
		for i := range bs {
			t := s.Apply(bs[i].Scheme.Body)
			if isFn {
				bs[i].Scheme = s.Generalize(outer, t, st.Src)
			} else {
				bs[i].Scheme = &Scheme{Body: t, Src: st.Src}
			}
		}
		return s.Apply(pt), env.With(bs...)

	case *ast.Return:
		r, ok := env.Lookup(ReturnName)
		if !ok {
			fail(st.Src, "return outside of a lambda")
		}
		var t ast.Type = &ast.TCon{Name: TVoid, Src: st.Src}
		if st.Value != nil {
			t = s.inferExpr(env, st.Value)
		}
		s.unify(t, r.Body, st.Src, "returned value", ReturnName)
		return s.NewTypeVar(EarlyReturnSite, st.Src), env

	case *ast.For:
		local := env
		if st.Init != nil {
			_, local = s.inferStmt(env, st.Init)
		}
		if st.Cond != nil {
			cond := s.inferExpr(local, st.Cond)
			s.unify(cond, Con(TBool), st.Cond.Source(), "condition", TBool)
		}
		if st.Update != nil {
			s.inferExpr(local.Apply(s.subst), st.Update)
		}
		s.inferExpr(local.Apply(s.subst), st.Body)
		return &ast.TCon{Name: TVoid, Src: st.Src}, env
	}
	panic(fmt.Sprintf("infer: unexpected statement %T", st))
}

// inferPattern returns the type of the values matched by p and the variables
// it binds.
//
func (s *Session) inferPattern(env *Tenv, p ast.Pat) (ast.Type, []Binding) {
	switch p := p.(type) {
	case *ast.PAny:
		return s.NewTypeVar(PatternWildcard, p.Src), nil

	case *ast.PVar:
		v := s.NewTypeVar(PatternVariable, p.Src)
		return v, []Binding{{p.Name, Mono(v)}}

	case *ast.PStr:
		return &ast.TCon{Name: TString, Src: p.Src}, nil

	case *ast.PPrim:
		return &ast.TCon{Name: p.Kind.String(), Src: p.Src}, nil

	case *ast.PCon:
		sc, ok := env.Constructors[p.Name]
		if !ok {
			fail(p.Src, "Unknown constructor: %s", p.Name)
		}
		s.push(p.Src, env, kwd(p.Name))
		fn, ok := s.Instantiate(sc, p.Src).(*ast.TFn)
		if !ok {
			fail(p.Src, "constructor %s is not a function", p.Name)
		}
		if len(fn.Args) != len(p.Args) {
			fail(p.Src, "Arity mismatch: constructor %s expects %d arguments, got %d", p.Name, len(fn.Args), len(p.Args))
		}
		var bs []Binding
		for i, a := range p.Args {
			at, abs := s.inferPattern(env, a)
			s.unify(at, s.Apply(fn.Args[i]), a.Source(), "pattern", p.Name+" argument")
			bs = append(bs, abs...)
		}
		t := s.Apply(fn.Result)
		s.emit(Event{Kind: Infer, Src: p.Src, Type: t})
		s.pop(p.Src)
		return t, bs
	}
	panic(fmt.Sprintf("infer: unexpected pattern %T", p))
}
