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

/*
Package infer implements Hindley-Milner type inference (Algorithm W) over the
AST built by package ast.

All mutable state lives in a Session: the fresh type variable counter, the
global substitution, the type variable provenance table and an append-only
event log recording every step of the inference. Sessions share no state and
can be used concurrently with one another, but a single Session is not safe
for concurrent use.

Type mismatches between named types are soft errors: they are recorded in the
log as a stack-break event and inference continues. Structural errors, like
unbound variables or arity mismatches, abort the run and are returned as an
*Error.

*/
package infer

import (
	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/internal/log"
)

// TypeVarInfo records where and why a type variable was created.
//
type TypeVarInfo struct {
	Prov Provenance
	Src  cst.Src
}

// GlobalState is a view of the state of a session.
//
type GlobalState struct {
	Subst    Subst
	Events   []Event
	TypeVars map[string]TypeVarInfo
}

// Result is the result of inferring a statement or expression. Scope is the
// environment after the statement.
//
type Result struct {
	Type  ast.Type
	Scope *Tenv
}

// A Session holds the state of one inference run.
//
type Session struct {
	next      int
	subst     Subst
	events    []Event
	typeVars  map[string]TypeVarInfo
	lastScope uint64
	hasScope  bool
	log       log.Logger
}

// Option configures a Session.
//
type Option func(*Session)

// Logger sets the session logger.
//
func Logger(l log.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession returns a new session.
//
func NewSession(opts ...Option) *Session {
	s := &Session{log: log.Root()}
	for _, o := range opts {
		o(s)
	}
	s.Reset()
	return s
}

// Reset discards the state of the session.
//
func (s *Session) Reset() {
	s.next = 0
	s.subst = make(Subst)
	s.events = nil
	s.typeVars = make(map[string]TypeVarInfo)
	s.lastScope, s.hasScope = 0, false
}

// State returns the current state of the session. The returned values must not
// be modified.
//
func (s *Session) State() GlobalState {
	return GlobalState{Subst: s.subst, Events: s.events, TypeVars: s.typeVars}
}

// Subst returns the current global substitution.
//
func (s *Session) Subst() Subst {
	return s.subst
}

// Events returns the event log.
//
func (s *Session) Events() []Event {
	return s.events
}

// Apply applies the global substitution to t.
//
func (s *Session) Apply(t ast.Type) ast.Type {
	return Apply(s.subst, t)
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) push(src cst.Src, env *Tenv, frame ...FrameItem) {
	s.emitScope(env)
	s.emit(Event{Kind: StackPush, Src: src, Frame: frame})
}

func (s *Session) pop(src cst.Src) {
	s.emit(Event{Kind: StackPop, Src: src})
}

func (s *Session) breakpoint(src cst.Src, msg string) {
	s.emit(Event{Kind: StackBreak, Src: src, Message: msg})
}

// emitScope emits a scope event if the applied local scope of env differs
// from the last one emitted.
//
func (s *Session) emitScope(env *Tenv) {
	if env == nil {
		return
	}
	scope, h := env.Apply(s.subst).snapshot()
	if s.hasScope && h == s.lastScope {
		return
	}
	s.lastScope, s.hasScope = h, true
	s.emit(Event{Kind: Scope, Scope: scope})
}

// NewTypeVar allocates a fresh type variable.
//
func (s *Session) NewTypeVar(prov Provenance, src cst.Src) *ast.TVar {
	v := &ast.TVar{Name: varName(s.next), Src: src}
	s.next++
	s.typeVars[v.Name] = TypeVarInfo{prov, src}
	s.emit(Event{Kind: NewVar, Src: src, Type: v, Prov: prov})
	return v
}

// Instantiate replaces the quantified variables of sc with fresh type
// variables.
//
func (s *Session) Instantiate(sc *Scheme, src cst.Src) ast.Type {
	if len(sc.Vars) == 0 {
		return sc.Body
	}
	sub := make(Subst, len(sc.Vars))
	for _, v := range sc.Vars {
		sub[v] = s.NewTypeVar(FreeInstantiation, src)
	}
	return Apply(sub, sc.Body)
}

// Generalize quantifies the variables free in t but not in env.
//
func (s *Session) Generalize(env *Tenv, t ast.Type, src cst.Src) *Scheme {
	efv := env.FreeVars()
	var vars []string
	for _, v := range TypeVars(t) {
		if !efv.Contains(v) {
			vars = append(vars, v)
		}
	}
	return &Scheme{Vars: vars, Body: t, Src: src}
}

// Unify unifies a and b under the global substitution and extends it with the
// computed unifier. Soft mismatches are recorded in the event log and do not
// fail.
//
func (s *Session) Unify(a, b ast.Type, src cst.Src, labelA, labelB string, message ...string) (u Subst, err error) {
	defer catch(&err)
	return s.unify(a, b, src, labelA, labelB, message...), nil
}

func (s *Session) unify(a, b ast.Type, src cst.Src, labelA, labelB string, message ...string) Subst {
	u := s.mgu(s.Apply(a), s.Apply(b), src)
	var msg string
	if len(message) > 0 {
		msg = message[0]
	}
	s.emit(Event{Kind: Unify, Src: src, Left: a, Right: b, LabelLeft: labelA, LabelRight: labelB, Subst: u, Message: msg})
	s.subst = ComposeSubst(u, s.subst)
	s.log.Trace("Unify", "left", a, "right", b, "unifier", u)
	s.breakpoint(src, "")
	return u
}

// InferStmt infers the type of st in env.
//
func (s *Session) InferStmt(env *Tenv, st ast.Stmt) (res Result, err error) {
	defer catch(&err)
	t, scope := s.inferStmt(env, st)
	s.log.Debug("Inferred statement", "type", s.Apply(t), "events", len(s.events), "vars", s.next)
	return Result{Type: s.Apply(t), Scope: scope.Apply(s.subst)}, nil
}

// InferExpr infers the type of e in env.
//
func (s *Session) InferExpr(env *Tenv, e ast.Expr) (res Result, err error) {
	defer catch(&err)
	t := s.inferExpr(env, e)
	s.log.Debug("Inferred expression", "type", s.Apply(t), "events", len(s.events), "vars", s.next)
	return Result{Type: s.Apply(t), Scope: env}, nil
}
