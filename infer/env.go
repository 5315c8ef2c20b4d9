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
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/db47h/hindley/ast"
)

// Alias is a parameterized type alias.
//
type Alias struct {
	Params []string
	Body   ast.Type
}

// Tenv is a type environment. A Tenv is never modified once built: methods
// that extend it return a new Tenv sharing unmodified tables.
//
type Tenv struct {
	Scope        map[string]*Scheme
	Constructors map[string]*Scheme
	Types        map[string]int // type name to arity
	Aliases      map[string]*Alias

	locals []string // names bound after the environment was built, in order
}

// NewTenv returns an empty environment.
//
func NewTenv() *Tenv {
	return &Tenv{
		Scope:        make(map[string]*Scheme),
		Constructors: make(map[string]*Scheme),
		Types:        make(map[string]int),
		Aliases:      make(map[string]*Alias),
	}
}

func (e *Tenv) clone() *Tenv {
	c := *e
	return &c
}

func copyScope(m map[string]*Scheme, extra int) map[string]*Scheme {
	r := make(map[string]*Scheme, len(m)+extra)
	for k, v := range m {
		r[k] = v
	}
	return r
}

// Binding is a name bound to a scheme.
//
type Binding struct {
	Name   string
	Scheme *Scheme
}

// With returns e extended with the given bindings.
//
func (e *Tenv) With(bs ...Binding) *Tenv {
	if len(bs) == 0 {
		return e
	}
	c := e.clone()
	c.Scope = copyScope(e.Scope, len(bs))
	c.locals = e.locals[:len(e.locals):len(e.locals)]
	for _, b := range bs {
		c.Scope[b.Name] = b.Scheme
		c.locals = append(c.locals, b.Name)
	}
	return c
}

// Bind returns e extended with name bound to sc.
//
func (e *Tenv) Bind(name string, sc *Scheme) *Tenv {
	return e.With(Binding{name, sc})
}

// Declare returns e extended with name bound to sc, as a global name. Unlike
// Bind, declared names are not part of scope snapshots.
//
func (e *Tenv) Declare(name string, sc *Scheme) *Tenv {
	c := e.clone()
	c.Scope = copyScope(e.Scope, 1)
	c.Scope[name] = sc
	return c
}

// Lookup returns the scheme bound to name.
//
func (e *Tenv) Lookup(name string) (*Scheme, bool) {
	sc, ok := e.Scope[name]
	return sc, ok
}

// Apply returns e with s applied to every scheme in scope.
//
func (e *Tenv) Apply(s Subst) *Tenv {
	if len(s) == 0 {
		return e
	}
	c := e.clone()
	c.Scope = make(map[string]*Scheme, len(e.Scope))
	for k, v := range e.Scope {
		c.Scope[k] = v.Apply(s)
	}
	return c
}

// FreeVars returns the free type variables of all schemes in scope.
//
func (e *Tenv) FreeVars() mapset.Set {
	fv := mapset.NewThreadUnsafeSet()
	for _, sc := range e.Scope {
		fv = fv.Union(sc.FreeVars())
	}
	return fv
}

// Locals returns the names bound with Bind or With, in binding order and
// without duplicates.
//
func (e *Tenv) Locals() []string {
	seen := make(map[string]bool, len(e.locals))
	var names []string
	for i := len(e.locals) - 1; i >= 0; i-- {
		if n := e.locals[i]; !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// snapshot returns the local scope and its fingerprint.
//
func (e *Tenv) snapshot() (map[string]*Scheme, uint64) {
	names := e.Locals()
	sort.Strings(names)
	scope := make(map[string]*Scheme, len(names))
	var b strings.Builder
	for _, n := range names {
		sc := e.Scope[n]
		scope[n] = sc
		b.WriteString(n)
		b.WriteByte(':')
		b.WriteString(sc.raw())
		b.WriteByte(';')
	}
	return scope, fnv1a.HashString64(b.String())
}

// WithType returns e with a type constructor of the given arity.
//
func (e *Tenv) WithType(name string, arity int) *Tenv {
	c := e.clone()
	c.Types = make(map[string]int, len(e.Types)+1)
	for k, v := range e.Types {
		c.Types[k] = v
	}
	c.Types[name] = arity
	return c
}

// WithAlias returns e with a type alias.
//
func (e *Tenv) WithAlias(name string, a *Alias) *Tenv {
	c := e.clone()
	c.Aliases = make(map[string]*Alias, len(e.Aliases)+1)
	for k, v := range e.Aliases {
		c.Aliases[k] = v
	}
	c.Aliases[name] = a
	return c
}

// WithConstructor returns e with a value constructor. Its type is resolved
// against the aliases and types of e and must be a function type.
//
func (e *Tenv) WithConstructor(name string, sc *Scheme) (*Tenv, error) {
	body, err := e.Resolve(sc.Body)
	if err != nil {
		return nil, fmt.Errorf("constructor %s: %w", name, err)
	}
	if _, ok := body.(*ast.TFn); !ok {
		return nil, fmt.Errorf("constructor %s: not a function type: %s", name, body)
	}
	c := e.clone()
	c.Constructors = copyScope(e.Constructors, 1)
	c.Constructors[name] = &Scheme{Vars: sc.Vars, Body: body, Src: sc.Src}
	return c, nil
}

// Resolve expands aliases in t and checks that every named type exists with
// the correct arity.
//
func (e *Tenv) Resolve(t ast.Type) (ast.Type, error) {
	switch t := t.(type) {
	case *ast.TVar:
		return t, nil
	case *ast.TCon:
		if a, ok := e.Aliases[t.Name]; ok {
			if len(a.Params) != 0 {
				return nil, fmt.Errorf("alias %s expects %d type arguments", t.Name, len(a.Params))
			}
			return e.Resolve(a.Body)
		}
		if n, ok := e.Types[t.Name]; !ok {
			return nil, fmt.Errorf("unknown type %s", t.Name)
		} else if n != 0 {
			return nil, fmt.Errorf("type %s expects %d type arguments", t.Name, n)
		}
		return t, nil
	case *ast.TFn:
		args, err := e.resolveAll(t.Args)
		if err != nil {
			return nil, err
		}
		res, err := e.Resolve(t.Result)
		if err != nil {
			return nil, err
		}
		return &ast.TFn{Args: args, Result: res, Src: t.Src}, nil
	case *ast.TApp:
		args, err := e.resolveAll(t.Args)
		if err != nil {
			return nil, err
		}
		con, ok := t.Target.(*ast.TCon)
		if !ok {
			target, err := e.Resolve(t.Target)
			if err != nil {
				return nil, err
			}
			return &ast.TApp{Target: target, Args: args, Src: t.Src}, nil
		}
		if a, ok := e.Aliases[con.Name]; ok {
			if len(a.Params) != len(args) {
				return nil, fmt.Errorf("alias %s expects %d type arguments, got %d", con.Name, len(a.Params), len(args))
			}
			s := make(Subst, len(args))
			for i, p := range a.Params {
				s[p] = args[i]
			}
			return e.Resolve(Apply(s, a.Body))
		}
		if n, ok := e.Types[con.Name]; !ok {
			return nil, fmt.Errorf("unknown type %s", con.Name)
		} else if n != len(args) {
			return nil, fmt.Errorf("type %s expects %d type arguments, got %d", con.Name, n, len(args))
		}
		return &ast.TApp{Target: con, Args: args, Src: t.Src}, nil
	}
	return nil, fmt.Errorf("invalid type %v", t)
}

func (e *Tenv) resolveAll(ts []ast.Type) ([]ast.Type, error) {
	r := make([]ast.Type, len(ts))
	for i, t := range ts {
		var err error
		if r[i], err = e.Resolve(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}
