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

// Package lang implements a small JavaScript-like language on top of the
// generic lexer and grammar combinators:
//
//	let fact = (n) => n <= 1 ? 1 : n * fact(n - 1)
//	let xs = [1, ...ys]
//	for (let i = 0; i < 10; i + 1) { push(xs, i) }
//	match (p) { (a, b) => a, _ => 0 }
//
// The language is expressed entirely as a grammar.Rules table. Parse produces
// ast statements ready for type inference.
//
package lang

import (
	"fmt"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/grammar"
	"github.com/db47h/hindley/lex"
	"github.com/db47h/hindley/token"
)

// Punctuation returns the default punctuation classes of the language.
//
func Punctuation() []string {
	return []string{"=+-*/<>!&|?:%^~", "."}
}

// LexConfig returns the lexer configuration of the language, overridden by
// opts.
//
func LexConfig(opts ...lex.Option) *lex.Config {
	return lex.NewConfig(append([]lex.Option{lex.Punctuation(Punctuation()...)}, opts...)...)
}

var gr = grammar.MustNew(rules())

// Grammar returns the grammar of the language. The start rule is "program".
//
func Grammar() *grammar.Grammar {
	return gr
}

// Keywords returns the reserved words and operators of the language.
//
func Keywords() []string {
	return gr.Keywords()
}

// Error is a syntax error.
//
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Program is a parsed source file.
//
type Program struct {
	Store *cst.Store
	Stmts []ast.Stmt
	Meta  grammar.Metadata
}

// Parse lexes and parses src. If cfg is nil, LexConfig() is used.
//
func Parse(name, src string, cfg *lex.Config) (*Program, error) {
	if cfg == nil {
		cfg = LexConfig()
	}
	s, err := lex.LexString(name, src, cfg)
	if err != nil {
		return nil, err
	}
	return ParseStore(s)
}

// ParseStore parses the roots of a lexed store.
//
func ParseStore(s *cst.Store) (*Program, error) {
	// program never fails, syntax errors show up as unparsed roots
	res := gr.Parse(s, s.Roots, "program")
	p := &Program{Store: s, Meta: res.Meta}
	if len(res.Unparsed) > 0 {
		id := res.Unparsed[0]
		return p, &Error{s.Position(id), "unexpected " + s.String(id)}
	}
	for _, v := range res.Value.([]interface{}) {
		p.Stmts = append(p.Stmts, v.(ast.Stmt))
	}
	return p, nil
}
