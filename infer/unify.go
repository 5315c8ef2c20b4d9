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
	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
)

// mgu computes the most general unifier of a and b. Both types must already
// have the global substitution applied.
//
func (s *Session) mgu(a, b ast.Type, src cst.Src) Subst {
	if v, ok := a.(*ast.TVar); ok {
		return s.bind(v, b, src)
	}
	if v, ok := b.(*ast.TVar); ok {
		return s.bind(v, a, src)
	}
	switch a := a.(type) {
	case *ast.TCon:
		if b, ok := b.(*ast.TCon); ok {
			if a.Name != b.Name {
				s.breakpoint(src, "Incompatible concrete types: "+a.Name+" vs "+b.Name)
			}
			return Subst{}
		}
	case *ast.TFn:
		if b, ok := b.(*ast.TFn); ok {
			if len(a.Args) != len(b.Args) {
				fail(src, "Arity mismatch: %s has %d arguments, %s has %d", a, len(a.Args), b, len(b.Args))
			}
			return s.mguAll(s.mgu(a.Result, b.Result, src), a.Args, b.Args, src)
		}
	case *ast.TApp:
		if b, ok := b.(*ast.TApp); ok {
			if len(a.Args) != len(b.Args) {
				fail(src, "Arity mismatch: %s has %d type arguments, %s has %d", a, len(a.Args), b, len(b.Args))
			}
			return s.mguAll(s.mgu(a.Target, b.Target, src), a.Args, b.Args, src)
		}
	}
	s.breakpoint(src, "Incompatible types: "+a.String()+" vs "+b.String())
	return Subst{}
}

// mguAll unifies the pairs of as and bs left to right, each pair under the
// unifier accumulated so far.
//
func (s *Session) mguAll(u Subst, as, bs []ast.Type, src cst.Src) Subst {
	for i := range as {
		ui := s.mgu(Apply(u, as[i]), Apply(u, bs[i]), src)
		u = ComposeSubst(ui, u)
	}
	return u
}

func (s *Session) bind(v *ast.TVar, t ast.Type, src cst.Src) Subst {
	if w, ok := t.(*ast.TVar); ok && w.Name == v.Name {
		return Subst{}
	}
	if occurs(v.Name, t) {
		fail(src, "Cycle detected: %s occurs in %s", v.Name, t)
	}
	return Subst{v.Name: t}
}
