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
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
)

// Type constructors.

func Con(name string) *ast.TCon { return &ast.TCon{Name: name} }

func Var(name string) *ast.TVar { return &ast.TVar{Name: name} }

func Fn(result ast.Type, args ...ast.Type) *ast.TFn {
	return &ast.TFn{Args: args, Result: result}
}

func App(target ast.Type, args ...ast.Type) *ast.TApp {
	return &ast.TApp{Target: target, Args: args}
}

// ArrayOf returns Array<t>.
//
func ArrayOf(t ast.Type) *ast.TApp { return App(Con("Array"), t) }

// Tuple returns the pair type (a, b).
//
func Tuple(a, b ast.Type) *ast.TApp { return App(Con(","), a, b) }

// Builtin type names.
//
const (
	TInt    = "int"
	TFloat  = "float"
	TBool   = "bool"
	TString = "string"
	TVoid   = "void"
	TNull   = "null"
	TArray  = "Array"
	TTuple  = ","
)

// Equal reports whether a and b are structurally equal. Sources are ignored.
//
func Equal(a, b ast.Type) bool {
	switch a := a.(type) {
	case *ast.TVar:
		b, ok := b.(*ast.TVar)
		return ok && a.Name == b.Name
	case *ast.TCon:
		b, ok := b.(*ast.TCon)
		return ok && a.Name == b.Name
	case *ast.TFn:
		b, ok := b.(*ast.TFn)
		return ok && equalTypes(a.Args, b.Args) && Equal(a.Result, b.Result)
	case *ast.TApp:
		b, ok := b.(*ast.TApp)
		return ok && Equal(a.Target, b.Target) && equalTypes(a.Args, b.Args)
	}
	return a == nil && b == nil
}

func equalTypes(a, b []ast.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// AlphaEqual reports whether a and b are equal up to a consistent renaming
// of type variables.
//
func AlphaEqual(a, b ast.Type) bool {
	return alphaEqual(a, b, make(map[string]string), make(map[string]string))
}

func alphaEqual(a, b ast.Type, ab, ba map[string]string) bool {
	switch a := a.(type) {
	case *ast.TVar:
		b, ok := b.(*ast.TVar)
		if !ok {
			return false
		}
		x, okx := ab[a.Name]
		y, oky := ba[b.Name]
		if !okx && !oky {
			ab[a.Name], ba[b.Name] = b.Name, a.Name
			return true
		}
		return x == b.Name && y == a.Name
	case *ast.TCon:
		b, ok := b.(*ast.TCon)
		return ok && a.Name == b.Name
	case *ast.TFn:
		b, ok := b.(*ast.TFn)
		if !ok || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !alphaEqual(a.Args[i], b.Args[i], ab, ba) {
				return false
			}
		}
		return alphaEqual(a.Result, b.Result, ab, ba)
	case *ast.TApp:
		b, ok := b.(*ast.TApp)
		if !ok || len(a.Args) != len(b.Args) || !alphaEqual(a.Target, b.Target, ab, ba) {
			return false
		}
		for i := range a.Args {
			if !alphaEqual(a.Args[i], b.Args[i], ab, ba) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeVars returns the free type variables of t in order of first
// appearance.
//
func TypeVars(t ast.Type) []string {
	var names []string
	seen := make(map[string]bool)
	(&ast.Visitor{Type: func(t ast.Type) bool {
		if v, ok := t.(*ast.TVar); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
		return true
	}}).WalkType(t)
	return names
}

// FreeTypeVars returns the set of free type variables of t.
//
func FreeTypeVars(t ast.Type) mapset.Set {
	s := mapset.NewThreadUnsafeSet()
	for _, n := range TypeVars(t) {
		s.Add(n)
	}
	return s
}

func occurs(name string, t ast.Type) bool {
	return FreeTypeVars(t).Contains(name)
}

// withSrc returns a shallow copy of t with its source set to src.
//
func withSrc(t ast.Type, src cst.Src) ast.Type {
	switch t := t.(type) {
	case *ast.TVar:
		c := *t
		c.Src = src
		return &c
	case *ast.TCon:
		c := *t
		c.Src = src
		return &c
	case *ast.TFn:
		c := *t
		c.Src = src
		return &c
	case *ast.TApp:
		c := *t
		c.Src = src
		return &c
	}
	return t
}

// Subst is a substitution of type variables.
//
type Subst map[string]ast.Type

// Apply applies s to t.
//
func Apply(s Subst, t ast.Type) ast.Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *ast.TVar:
		if r, ok := s[t.Name]; ok {
			return r
		}
		return t
	case *ast.TFn:
		return &ast.TFn{Args: applyAll(s, t.Args), Result: Apply(s, t.Result), Src: t.Src}
	case *ast.TApp:
		return &ast.TApp{Target: Apply(s, t.Target), Args: applyAll(s, t.Args), Src: t.Src}
	}
	return t
}

func applyAll(s Subst, ts []ast.Type) []ast.Type {
	if ts == nil {
		return nil
	}
	r := make([]ast.Type, len(ts))
	for i, t := range ts {
		r[i] = Apply(s, t)
	}
	return r
}

// ComposeSubst returns the substitution applying old then new. The key sets of
// new and old must be disjoint, otherwise ComposeSubst panics with
// ErrSubstOverlap.
//
func ComposeSubst(new, old Subst) Subst {
	r := make(Subst, len(new)+len(old))
	for k, v := range old {
		if _, ok := new[k]; ok {
			panic(ErrSubstOverlap)
		}
		r[k] = Apply(new, v)
	}
	for k, v := range new {
		r[k] = v
	}
	return r
}

// Keys returns the sorted variables bound by s.
//
func (s Subst) Keys() []string {
	ks := make([]string, 0, len(s))
	for k := range s {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func (s Subst) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k + " := " + s[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// Scheme is a type with universally quantified variables.
//
type Scheme struct {
	Vars []string
	Body ast.Type
	Src  cst.Src
}

// Mono returns a scheme with no quantified variables.
//
func Mono(t ast.Type) *Scheme {
	return &Scheme{Body: t, Src: t.Source()}
}

// Forall returns a scheme quantifying vars in body.
//
func Forall(vars []string, body ast.Type) *Scheme {
	return &Scheme{Vars: vars, Body: body, Src: body.Source()}
}

// FreeVars returns the free type variables of sc.
//
func (sc *Scheme) FreeVars() mapset.Set {
	fv := FreeTypeVars(sc.Body)
	for _, v := range sc.Vars {
		fv.Remove(v)
	}
	return fv
}

// Apply applies s to the free variables of sc.
//
func (sc *Scheme) Apply(s Subst) *Scheme {
	if len(s) == 0 {
		return sc
	}
	if len(sc.Vars) > 0 {
		ns := make(Subst, len(s))
		for k, v := range s {
			ns[k] = v
		}
		for _, v := range sc.Vars {
			delete(ns, v)
		}
		s = ns
	}
	return &Scheme{Vars: sc.Vars, Body: Apply(s, sc.Body), Src: sc.Src}
}

// String returns the scheme with quantified variables renamed a, b, ... in
// order, like "<a>(a) => a".
//
func (sc *Scheme) String() string {
	if len(sc.Vars) == 0 {
		return sc.Body.String()
	}
	free := FreeTypeVars(sc.Body)
	rn := make(Subst, len(sc.Vars))
	names := make([]string, 0, len(sc.Vars))
	for i, n := 0, 0; i < len(sc.Vars); n++ {
		name := varName(n)
		if free.Contains(name) && !contains(sc.Vars, name) {
			continue
		}
		rn[sc.Vars[i]] = Var(name)
		names = append(names, name)
		i++
	}
	return "<" + strings.Join(names, ", ") + ">" + Apply(rn, sc.Body).String()
}

// raw renders sc without renaming.
//
func (sc *Scheme) raw() string {
	if len(sc.Vars) == 0 {
		return sc.Body.String()
	}
	return "<" + strings.Join(sc.Vars, ", ") + ">" + sc.Body.String()
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
