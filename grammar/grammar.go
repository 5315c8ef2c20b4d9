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
Package grammar implements a rule algebra matched against the concrete syntax
tree built by package lex.

A grammar is a table of named rules built from Kwd, Id, Number, Text, List,
Table, Seq, Star, Opt, Or, Ref, Group, Meta and Tx. Rules match windows of
sibling node ids: the children of a List, a row of a Table, or the roots of a
Store. Tx rules build AST values from captures made by Group and RefAs.

While matching, rules tag node ids with semantic roles in a side table. The
table is returned whether the parse succeeds or not.

If the grammar declares a rule named "comment", it is tried before every rule
attempt and the nodes it consumes are skipped and tagged "comment".

*/
package grammar

import (
	"fmt"
	"sort"

	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/internal/log"
)

// CommentRule is the name of the optional comment rule.
//
const CommentRule = "comment"

// Rules is a table of named rules.
//
type Rules map[string]Rule

// Info is the metadata attached to a node id.
//
type Info struct {
	Role        string
	Placeholder string // expected role of a blank atom
}

// Metadata maps node ids to their metadata.
//
type Metadata map[string]Info

// A Grammar is a validated rule table.
//
type Grammar struct {
	rules    Rules
	keywords map[string]bool
	log      log.Logger
}

// New validates rules and returns a Grammar. It fails if any Ref names an
// undeclared rule.
//
func New(rules Rules) (*Grammar, error) {
	g := &Grammar{rules: rules, keywords: make(map[string]bool), log: log.Root()}
	seen := make(map[Rule]bool)
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g.walk(rules[name], seen); err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
	}
	return g, nil
}

// MustNew is like New but panics with a *Error if the rules are invalid.
//
func MustNew(rules Rules) *Grammar {
	g, err := New(rules)
	if err != nil {
		panic(&Error{err.Error()})
	}
	return g
}

func (g *Grammar) walk(r Rule, seen map[Rule]bool) error {
	if r == nil {
		return &Error{"nil rule"}
	}
	if k, ok := r.(*kwdRule); ok {
		g.keywords[k.text] = true
		return nil
	}
	if ref, ok := r.(*refRule); ok {
		if _, ok := g.rules[ref.name]; !ok {
			return &Error{fmt.Sprintf("undeclared rule %q", ref.name)}
		}
		return nil
	}
	p, ok := r.(parent)
	if !ok {
		return nil
	}
	if seen[r] {
		return nil
	}
	seen[r] = true
	for _, sr := range p.subRules() {
		if err := g.walk(sr, seen); err != nil {
			return err
		}
	}
	return nil
}

// SetLogger sets the logger used by Parse.
//
func (g *Grammar) SetLogger(l log.Logger) {
	g.log = l
}

// Keywords returns the sorted reserved keywords.
//
func (g *Grammar) Keywords() []string {
	ks := make([]string, 0, len(g.keywords))
	for k := range g.keywords {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Result is the result of Parse. Meta is always set. Value is nil if OK is
// false.
//
type Result struct {
	Value    interface{}
	OK       bool
	Meta     Metadata
	Hints    []string // autocomplete candidates at the cursor
	Unparsed []string // root ids not consumed by a successful match
}

// Option is a Parse option.
//
type Option func(*Context)

// Cursor requests autocomplete hints for the node with the given id.
//
func Cursor(id string) Option {
	return func(c *Context) {
		c.cursor = id
	}
}

// Parse matches the rule named start against the window of sibling ids.
//
func (g *Grammar) Parse(s *cst.Store, ids []string, start string, opts ...Option) Result {
	c := &Context{g: g, store: s, meta: make(Metadata)}
	for _, o := range opts {
		o(c)
	}
	r, ok := g.rules[start]
	if !ok {
		throw("undeclared start rule %q", start)
	}
	v, n, ok := c.Match(r, ids)
	res := Result{Meta: c.meta, Hints: c.hints}
	if ok {
		n += c.skipComments(ids[n:])
		res.Value, res.OK = v, true
		res.Unparsed = append(res.Unparsed, ids[n:]...)
		c.trailing(ids[n:])
	}
	g.log.Debug("Parsed", "start", start, "ok", ok, "tagged", len(c.meta), "unparsed", len(res.Unparsed))
	return res
}

// Context is the matching state.
//
type Context struct {
	g         *Grammar
	store     *cst.Store
	meta      Metadata
	scope     *Scope
	cursor    string
	hints     []string
	inComment bool
}

// Store returns the node store being matched.
//
func (c *Context) Store() *cst.Store {
	return c.store
}

// Match matches r against win, skipping leading comments.
//
func (c *Context) Match(r Rule, win []string) (interface{}, int, bool) {
	skip := c.skipComments(win)
	v, n, ok := r.Match(c, win[skip:])
	if !ok {
		return nil, 0, false
	}
	if n < 0 || n > len(win)-skip {
		throw("rule %T consumed %d nodes from a window of %d", r, n, len(win)-skip)
	}
	return v, skip + n, true
}

// Tag sets the semantic role of node id.
//
func (c *Context) Tag(id, role string) {
	inf := c.meta[id]
	inf.Role = role
	c.meta[id] = inf
}

func (c *Context) placeholder(id, role string) {
	inf := c.meta[id]
	inf.Placeholder = role
	if inf.Role == "" {
		inf.Role = role
	}
	c.meta[id] = inf
}

func (c *Context) hint(win []string, h string) {
	if c.cursor == "" || len(win) == 0 || win[0] != c.cursor {
		return
	}
	for _, x := range c.hints {
		if x == h {
			return
		}
	}
	c.hints = append(c.hints, h)
}

func (c *Context) trailing(ids []string) {
	ids = ids[c.skipComments(ids):]
	for _, id := range ids {
		c.Tag(id, RoleUnparsed)
	}
}

func (c *Context) skipComments(win []string) int {
	cr, ok := c.g.rules[CommentRule]
	if !ok || c.inComment {
		return 0
	}
	c.inComment = true
	defer func() { c.inComment = false }()
	pos := 0
	for pos < len(win) {
		_, n, ok := cr.Match(c, win[pos:])
		if !ok || n == 0 {
			break
		}
		for _, id := range win[pos : pos+n] {
			c.tagComment(id)
		}
		pos += n
	}
	return pos
}

func (c *Context) tagComment(id string) {
	c.Tag(id, RoleComment)
	if l, ok := c.store.Get(id).(*cst.List); ok {
		for _, ch := range l.Children {
			c.tagComment(ch)
		}
	}
}

func (c *Context) mark() int {
	if c.scope == nil {
		return 0
	}
	return c.scope.mark()
}

func (c *Context) reset(mark int) {
	if c.scope != nil {
		c.scope.reset(mark)
	}
}
