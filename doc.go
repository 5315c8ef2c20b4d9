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
Package hindley is a type checker front end built in three stages: a grammar
agnostic lexer producing a concrete syntax tree, a parser combinator engine
matching a rule table against that tree, and a traced Hindley-Milner type
inference engine.

Lexing

The lex package groups atoms by juxtaposition. Atoms written next to each other
form a smooshed list, atoms separated by blanks form a spaced list:

	f(a, b)     (smooshed f (round a b))
	let x = 2   (spaced let x = 2)
	a.b c       (spaced (smooshed a . b) c)

Brackets open lists, a table intro character right after an opening bracket
opens a table, and double quotes open text nodes with ${} embeds. Nodes are
kept in a cst.Store and referenced by id.

Parsing

The grammar package matches windows of sibling node ids against a table of
named rules built with combinators such as Seq, Or, Star, List and Tx. Matching
attaches semantic roles to node ids in a side table. The lang package defines
a small JavaScript-like language with it.

Inference

The infer package implements Algorithm W over the ast package. An
infer.Session records every step of an inference run as events; the trace
package replays the event log at any checkpoint.

Checker ties all three together:

	c := hindley.New()
	rep, err := c.Check("input", "let id = (x) => x")
	// rep.Results[0].Scope.Lookup("id") => <a>(a) => a
*/
package hindley
