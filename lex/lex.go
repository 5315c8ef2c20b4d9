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
Package lex turns raw text into a generic concrete syntax tree stored in a
cst.Store. The lexer knows nothing about any specific grammar: it only groups
characters by class and tracks brackets.

Structure

The lexer maintains a path of open containers, the root being an implicit
round list. Brackets open and close lists (or tables when the opening bracket
is immediately followed by the table intro character). Separators split a
container into child slots. Within a slot, items written next to each other
with no whitespace are grouped in a smooshed list and items separated by
spaces are grouped in a spaced list, so that every slot holds exactly one node:

	let x = f(a, b)

lexes as

	(spaced let x = (smooshed f (round a b)))

Text

A double quote opens a Text node. "${" opens an embedded node, lexed in place
and closed by "}". Separators are not allowed in embeds.

Errors

Any bracket mismatch, unclosed container or separator inside a text embed is a
fatal *Error. The lexer never returns a partial tree.

*/
package lex

import (
	"fmt"

	"github.com/edwingeng/deque"

	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/token"
)

var openers = map[rune]cst.Kind{
	'(': cst.Round,
	'[': cst.Square,
	'{': cst.Curly,
	'<': cst.Angle,
}

var closers = map[rune]cst.Kind{
	')': cst.Round,
	']': cst.Square,
	'}': cst.Curly,
	'>': cst.Angle,
}

func closerOf(k cst.Kind) rune {
	for r, ck := range closers {
		if ck == k {
			return r
		}
	}
	return '?'
}

// embed is the frame of a "${...}" text embed.
//
type embed struct {
	text  *cst.Text
	span  int
	child string
}

// frame is an entry in the path of open containers.
//
type frame struct {
	n        interface{} // *cst.List, *cst.Table, *cst.Text or *embed
	pos      token.Pos   // opening position
	filled   bool        // the current slot holds an item
	adjacent bool        // no whitespace since the last item
}

func (f *frame) transient() (cst.Kind, bool) {
	if l, ok := f.n.(*cst.List); ok && l.Kind.Transient() {
		return l.Kind, true
	}
	return "", false
}

// last returns the item of the current slot.
//
func (f *frame) last() string {
	if !f.filled {
		return ""
	}
	switch n := f.n.(type) {
	case *cst.List:
		return n.Children[len(n.Children)-1]
	case *cst.Table:
		r := n.Rows[len(n.Rows)-1]
		return r[len(r)-1]
	case *embed:
		return n.child
	}
	return ""
}

func (f *frame) setLast(id string) {
	switch n := f.n.(type) {
	case *cst.List:
		n.Children[len(n.Children)-1] = id
	case *cst.Table:
		r := n.Rows[len(n.Rows)-1]
		r[len(r)-1] = id
	case *embed:
		n.child = id
	}
}

func (f *frame) append(id string) {
	switch n := f.n.(type) {
	case *cst.List:
		n.Children = append(n.Children, id)
	case *cst.Table:
		i := len(n.Rows) - 1
		n.Rows[i] = append(n.Rows[i], id)
	case *embed:
		n.child = id
	}
	f.filled = true
}

func (f *frame) String() string {
	switch n := f.n.(type) {
	case *cst.List:
		return string(n.Kind) + " list"
	case *cst.Table:
		return string(n.Kind) + " table"
	case *cst.Text:
		return "text"
	case *embed:
		return "text embed"
	}
	return "container"
}

// A StateFn is a state function. When a StateFn returns nil, the lexer
// transitions back to the initial state of the innermost open container.
//
type StateFn func(l *Lexer) StateFn

// A Lexer holds the internal state of the lexer while processing a given text.
//
type Lexer struct {
	rd    reader
	cfg   *Config
	store *cst.Store
	root  *cst.List
	path  deque.Deque // of *frame
	atom  *cst.Id     // in-progress atom
	done  bool
	err   error
}

// Lex builds a Node Store from the contents of f. A nil cfg selects
// NewConfig() defaults.
//
func Lex(f *token.File, cfg *Config) (*cst.Store, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	l := &Lexer{
		cfg:   cfg,
		store: cst.NewStore(f),
		root:  &cst.List{Kind: cst.Round},
		path:  deque.NewDeque(),
	}
	l.rd.init(f)
	l.path.PushBack(&frame{n: l.root, pos: 0})

	state := l.initState()
	for !l.done && l.err == nil {
		state = state(l)
		if l.rd.err != nil {
			l.err = l.rd.err
			break
		}
		if state == nil {
			state = l.initState()
		}
	}
	if l.err != nil {
		return nil, l.err
	}
	cfg.log.Debug("Lexed source", "file", f.Name(), "nodes", len(l.store.Nodes), "roots", len(l.store.Roots))
	return l.store, nil
}

// LexString is a shorthand for Lex(token.NewFile(name, src), cfg).
//
func LexString(name, src string, cfg *Config) (*cst.Store, error) {
	return Lex(token.NewFile(name, src), cfg)
}

func (l *Lexer) initState() StateFn {
	if _, ok := l.top().n.(*cst.Text); ok {
		return stateText
	}
	return stateAny
}

func (l *Lexer) errorf(p token.Pos, format string, args ...interface{}) {
	if l.err == nil {
		l.err = &Error{l.rd.f.Position(p), fmt.Sprintf(format, args...)}
	}
}

func (l *Lexer) top() *frame {
	return l.path.Back().(*frame)
}

func (l *Lexer) push(f *frame) {
	l.path.PushBack(f)
}

func (l *Lexer) pop() *frame {
	return l.path.PopBack().(*frame)
}

// popTransients closes smooshed and spaced groupings.
//
func (l *Lexer) popTransients() {
	for {
		if _, ok := l.top().transient(); !ok {
			return
		}
		l.pop()
	}
}

// add places a new item in the current slot, grouping it with the previous
// item of the slot if any.
//
func (l *Lexer) add(id string) {
	f := l.top()
	if !f.filled {
		f.append(id)
		f.adjacent = false
		return
	}
	kind := cst.Spaced
	if f.adjacent {
		kind = cst.Smooshed
	}
	if k, ok := f.transient(); ok && k == kind {
		f.append(id)
		f.adjacent = false
		return
	}
	prev := f.last()
	pp := l.store.Pos(prev)
	g := l.store.NewList(kind, pp, prev, id)
	f.setLast(g.ID)
	f.adjacent = false
	l.push(&frame{n: g, pos: pp, filled: true})
}

func stateAny(l *Lexer) StateFn {
	r := l.rd.next()
	if r == EOF {
		l.finish()
		return nil
	}
	c := l.cfg.Class(r)
	if !c.IsAtom() {
		l.atom = nil
	}
	switch c {
	case token.Space:
		l.space()
	case token.Separator:
		l.separator(r)
	case token.Quote:
		t := l.store.NewText(l.rd.pos)
		l.add(t.ID)
		l.push(&frame{n: t, pos: l.rd.pos})
		return stateText
	case token.Bracket:
		if k, ok := openers[r]; ok {
			l.open(k)
		} else {
			l.close(r)
		}
	default:
		l.atomRune(r, c)
	}
	return nil
}

func (l *Lexer) atomRune(r rune, c token.Class) {
	if a := l.atom; a != nil && a.Class == c {
		if f := l.top(); f.adjacent && f.last() == a.ID {
			a.Text += string(r)
			return
		}
	}
	a := l.store.NewId(string(r), c, l.rd.pos)
	l.add(a.ID)
	l.atom = a
	l.top().adjacent = true
}

func (l *Lexer) space() {
	// spaces never occur inside a smooshed grouping
	for {
		if k, ok := l.top().transient(); !ok || k != cst.Smooshed {
			break
		}
		l.pop()
	}
	l.top().adjacent = false
}

func (l *Lexer) separator(r rune) {
	p := l.rd.pos
	l.popTransients()
	f := l.top()
	switch n := f.n.(type) {
	case *embed:
		l.errorf(p, "separator %q inside text embed", r)
		return
	case *cst.Table:
		// tables are created with a first row
		if r == l.cfg.TableRowSep || r == '\n' {
			if len(n.Rows[len(n.Rows)-1]) > 0 {
				n.Rows = append(n.Rows, nil)
			}
		}
	case *cst.List:
		if r == '\n' {
			n.ForceMultiline = true
		}
	}
	f.filled, f.adjacent = false, false
}

func (l *Lexer) open(k cst.Kind) {
	p := l.rd.pos
	var (
		n  interface{}
		id string
	)
	if intro := l.cfg.TableIntroChar; intro != 0 && l.rd.peek() == intro {
		l.rd.next()
		t := l.store.NewTable(k, p)
		n, id = t, t.ID
	} else {
		ls := l.store.NewList(k, p)
		n, id = ls, ls.ID
	}
	l.add(id)
	l.push(&frame{n: n, pos: p})
}

func (l *Lexer) close(r rune) {
	p := l.rd.pos
	want := closers[r]
	l.popTransients()
	f := l.top()
	switch n := f.n.(type) {
	case *embed:
		if r != '}' {
			l.errorf(p, "unexpected close %q inside text embed", r)
			return
		}
		if n.child == "" {
			n.child = l.store.NewId("", token.Text, p).ID
		}
		n.text.Spans[n.span].Embed = n.child
		l.pop()
		return
	case *cst.List:
		if n == l.root {
			l.errorf(p, "unexpected close %q", r)
			return
		}
		if n.Kind != want {
			l.errorf(p, "unexpected close %q, expected %q", r, closerOf(n.Kind))
			return
		}
	case *cst.Table:
		if n.Kind != want {
			l.errorf(p, "unexpected close %q, expected %q", r, closerOf(n.Kind))
			return
		}
		if i := len(n.Rows) - 1; i >= 0 && len(n.Rows[i]) == 0 {
			n.Rows = n.Rows[:i]
		}
	}
	l.pop()
	l.top().adjacent = true
}

func (l *Lexer) finish() {
	l.popTransients()
	if f := l.top(); f.n != interface{}(l.root) {
		l.errorf(f.pos, "unclosed %s", f)
		return
	}
	l.store.Roots = l.root.Children
	l.done = true
}

func stateText(l *Lexer) StateFn {
	f := l.top()
	t := f.n.(*cst.Text)
	switch r := l.rd.next(); r {
	case EOF:
		l.errorf(f.pos, "unterminated text")
	case '"':
		l.pop()
		l.top().adjacent = true
	case '\\':
		switch e := l.rd.next(); e {
		case EOF:
			l.errorf(f.pos, "unterminated text")
		case 'n':
			appendLit(t, '\n')
		case 't':
			appendLit(t, '\t')
		default:
			appendLit(t, e)
		}
	case '$':
		if l.rd.peek() != '{' {
			appendLit(t, r)
			break
		}
		l.rd.next()
		t.Spans = append(t.Spans, cst.Span{})
		l.push(&frame{n: &embed{text: t, span: len(t.Spans) - 1}, pos: l.rd.pos})
		return stateAny
	default:
		appendLit(t, r)
	}
	return nil
}

func appendLit(t *cst.Text, r rune) {
	if n := len(t.Spans); n > 0 && !t.Spans[n-1].IsEmbed() {
		t.Spans[n-1].Text += string(r)
		return
	}
	t.Spans = append(t.Spans, cst.Span{Text: string(r)})
}
