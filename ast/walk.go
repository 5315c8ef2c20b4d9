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

package ast

import "fmt"

// A Visitor walks AST nodes in depth-first order. Each callback is invoked
// before the node's children are visited; returning false skips the children.
// Nil callbacks visit everything.
//
type Visitor struct {
	Stmt func(Stmt) bool
	Expr func(Expr) bool
	Pat  func(Pat) bool
	Type func(Type) bool
}

// WalkStmt visits s and its children.
//
func (v *Visitor) WalkStmt(s Stmt) {
	if s == nil || (v.Stmt != nil && !v.Stmt(s)) {
		return
	}
	switch s := s.(type) {
	case *For:
		v.WalkStmt(s.Init)
		v.WalkExpr(s.Cond)
		v.WalkExpr(s.Update)
		v.WalkExpr(s.Body)
	case *Let:
		v.WalkPat(s.Pat)
		v.WalkExpr(s.Init)
	case *ExprStmt:
		v.WalkExpr(s.Expr)
	case *Return:
		v.WalkExpr(s.Value)
	default:
		panic(fmt.Sprintf("ast: unexpected statement %T", s))
	}
}

// WalkExpr visits e and its children.
//
func (v *Visitor) WalkExpr(e Expr) {
	if e == nil || (v.Expr != nil && !v.Expr(e)) {
		return
	}
	switch e := e.(type) {
	case *Block:
		for _, s := range e.Stmts {
			v.WalkStmt(s)
		}
	case *If:
		v.WalkExpr(e.Cond)
		v.WalkExpr(e.Yes)
		v.WalkExpr(e.No)
	case *Match:
		v.WalkExpr(e.Target)
		for _, c := range e.Cases {
			v.WalkPat(c.Pat)
			v.WalkExpr(c.Body)
		}
	case *Array:
		for _, it := range e.Items {
			v.WalkExpr(it.Value)
		}
	case *Prim, *Var:
	case *Str:
		for _, x := range e.Exprs {
			v.WalkExpr(x)
		}
	case *Lambda:
		for _, p := range e.Params {
			v.WalkPat(p)
		}
		v.WalkExpr(e.Body)
	case *App:
		v.WalkExpr(e.Fn)
		for _, a := range e.Args {
			v.WalkExpr(a)
		}
	default:
		panic(fmt.Sprintf("ast: unexpected expression %T", e))
	}
}

// WalkPat visits p and its children.
//
func (v *Visitor) WalkPat(p Pat) {
	if p == nil || (v.Pat != nil && !v.Pat(p)) {
		return
	}
	switch p := p.(type) {
	case *PCon:
		for _, a := range p.Args {
			v.WalkPat(a)
		}
	case *PAny, *PVar, *PStr, *PPrim:
	default:
		panic(fmt.Sprintf("ast: unexpected pattern %T", p))
	}
}

// WalkType visits t and its children.
//
func (v *Visitor) WalkType(t Type) {
	if t == nil || (v.Type != nil && !v.Type(t)) {
		return
	}
	switch t := t.(type) {
	case *TFn:
		for _, a := range t.Args {
			v.WalkType(a)
		}
		v.WalkType(t.Result)
	case *TApp:
		v.WalkType(t.Target)
		for _, a := range t.Args {
			v.WalkType(a)
		}
	case *TVar, *TCon:
	default:
		panic(fmt.Sprintf("ast: unexpected type %T", t))
	}
}

// PatVars returns the names bound by p, in order.
//
func PatVars(p Pat) []string {
	var names []string
	(&Visitor{Pat: func(p Pat) bool {
		if v, ok := p.(*PVar); ok {
			names = append(names, v.Name)
		}
		return true
	}}).WalkPat(p)
	return names
}

// FreeVars returns the names of the variables referenced but not bound in e,
// in order of first reference.
//
func FreeVars(e Expr) []string {
	fv := freeVars{seen: make(map[string]bool)}
	fv.expr(e, nil)
	return fv.names
}

type freeVars struct {
	names []string
	seen  map[string]bool
}

type bound map[string]bool

func (b bound) with(names ...string) bound {
	if len(names) == 0 {
		return b
	}
	nb := make(bound, len(b)+len(names))
	for k := range b {
		nb[k] = true
	}
	for _, n := range names {
		nb[n] = true
	}
	return nb
}

func (fv *freeVars) ref(name string, b bound) {
	if b[name] || fv.seen[name] {
		return
	}
	fv.seen[name] = true
	fv.names = append(fv.names, name)
}

// stmt returns the bindings in scope after s.
//
func (fv *freeVars) stmt(s Stmt, b bound) bound {
	switch s := s.(type) {
	case nil:
	case *Let:
		// let bindings are visible in their own initializer
		b = b.with(PatVars(s.Pat)...)
		fv.expr(s.Init, b)
	case *ExprStmt:
		fv.expr(s.Expr, b)
	case *Return:
		fv.expr(s.Value, b)
	case *For:
		inner := fv.stmt(s.Init, b)
		fv.expr(s.Cond, inner)
		fv.expr(s.Update, inner)
		fv.expr(s.Body, inner)
	}
	return b
}

func (fv *freeVars) expr(e Expr, b bound) {
	switch e := e.(type) {
	case nil:
	case *Var:
		fv.ref(e.Name, b)
	case *Block:
		for _, s := range e.Stmts {
			b = fv.stmt(s, b)
		}
	case *Lambda:
		var names []string
		for _, p := range e.Params {
			names = append(names, PatVars(p)...)
		}
		fv.expr(e.Body, b.with(names...))
	case *Match:
		fv.expr(e.Target, b)
		for _, c := range e.Cases {
			fv.expr(c.Body, b.with(PatVars(c.Pat)...))
		}
	default:
		(&Visitor{Expr: func(x Expr) bool {
			if x == e {
				return true
			}
			fv.expr(x, b)
			return false
		}}).WalkExpr(e)
	}
}
