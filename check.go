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

package hindley

import (
	"errors"
	"fmt"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/infer"
	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/lang"
	"github.com/db47h/hindley/lex"
	"github.com/db47h/hindley/token"
)

// Error is an inference error with its position in the source.
//
type Error struct {
	Pos token.Position
	Err *infer.Error
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Err.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Err.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Position returns the source position of err if it is a lexing, syntax or
// inference error.
//
func Position(err error) (token.Position, bool) {
	var (
		le *lex.Error
		se *lang.Error
		ie *Error
	)
	switch {
	case errors.As(err, &le):
		return le.Pos, true
	case errors.As(err, &se):
		return se.Pos, true
	case errors.As(err, &ie):
		return ie.Pos, ie.Pos.IsValid()
	}
	return token.Position{}, false
}

// Message returns the message of err without its position.
//
func Message(err error) string {
	var (
		le *lex.Error
		se *lang.Error
		ie *Error
	)
	switch {
	case errors.As(err, &le):
		return le.Msg
	case errors.As(err, &se):
		return se.Msg
	case errors.As(err, &ie):
		return ie.Err.Msg
	}
	return err.Error()
}

// Result is the inferred type of a top-level statement.
//
type Result struct {
	Stmt  ast.Stmt
	Type  ast.Type
	Scope *infer.Tenv // environment following the statement
}

// Report is the outcome of a Check call.
//
type Report struct {
	Program *lang.Program
	Results []Result
}

// Position returns the position of the start of src.
//
func (r *Report) Position(src cst.Src) token.Position {
	if src.IsZero() {
		return token.Position{}
	}
	return r.Program.Store.Position(src.Left)
}

// An Option configures a Checker.
//
type Option func(*Checker)

// Logger sets the logger of the checker and of its inference session.
//
func Logger(l log.Logger) Option {
	return func(c *Checker) {
		c.log = l
	}
}

// Env sets the initial type environment. It defaults to infer.Builtins().
//
func Env(env *infer.Tenv) Option {
	return func(c *Checker) {
		c.env = env
	}
}

// LexOptions adds lexer options on top of the language defaults.
//
func LexOptions(opts ...lex.Option) Option {
	return func(c *Checker) {
		c.lexOpts = append(c.lexOpts, opts...)
	}
}

// Checker type checks source files in a single inference session. The
// environment left by a successful Check is the starting environment of the
// next one.
//
type Checker struct {
	log     log.Logger
	env     *infer.Tenv
	lexOpts []lex.Option
	cfg     *lex.Config
	session *infer.Session
}

// New returns a new Checker.
//
func New(opts ...Option) *Checker {
	c := &Checker{}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = log.Root()
	}
	if c.env == nil {
		c.env = infer.Builtins()
	}
	c.cfg = lang.LexConfig(append([]lex.Option{lex.Logger(c.log)}, c.lexOpts...)...)
	c.session = infer.NewSession(infer.Logger(c.log))
	return c
}

// Session returns the inference session of c.
//
func (c *Checker) Session() *infer.Session {
	return c.session
}

// Env returns the current type environment.
//
func (c *Checker) Env() *infer.Tenv {
	return c.env
}

// Check lexes, parses and type checks src. On inference errors, the returned
// report holds the results of the statements preceding the failing one.
//
func (c *Checker) Check(name, src string) (*Report, error) {
	p, err := lang.Parse(name, src, c.cfg)
	if err != nil {
		return nil, err
	}
	rep := &Report{Program: p}
	env := c.env
	for _, st := range p.Stmts {
		res, err := c.session.InferStmt(env, st)
		if err != nil {
			var ie *infer.Error
			if errors.As(err, &ie) {
				return rep, &Error{rep.Position(ie.Src), ie}
			}
			return rep, err
		}
		rep.Results = append(rep.Results, Result{st, res.Type, res.Scope})
		env = res.Scope
	}
	c.env = env
	c.log.Debug("Checked", "name", name, "statements", len(p.Stmts), "events", len(c.session.Events()))
	return rep, nil
}

// Check type checks src with a new Checker.
//
func Check(name, src string, opts ...Option) (*Report, error) {
	return New(opts...).Check(name, src)
}
