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

package grammar

import (
	"strconv"

	"github.com/db47h/hindley/cst"
)

// A Rule matches a window of sibling node ids. On success it returns the
// matched value and the number of ids consumed from the start of the window.
// A false ok is a soft failure.
//
// Custom rules must call c.Match to match sub-rules so that comments are
// skipped and consumption is checked.
//
type Rule interface {
	Match(c *Context, win []string) (value interface{}, consumed int, ok bool)
}

// parent is implemented by rules wrapping other rules.
//
type parent interface {
	subRules() []Rule
}

// Default semantic roles.
//
const (
	RoleKwd      = "kwd"
	RoleId       = "id"
	RoleComment  = "comment"
	RoleUnparsed = "unparsed"
)

// TextValue is the value of a Text rule match. Parts always holds one more
// element than Values: literal text is interleaved with embed values.
//
type TextValue struct {
	Parts  []string
	Values []interface{}
}

func atom(c *Context, win []string) *cst.Id {
	if len(win) == 0 {
		return nil
	}
	a, _ := c.store.Get(win[0]).(*cst.Id)
	return a
}

type kwdRule struct {
	text, role string
}

// Kwd matches a single Id atom with the given text and tags it with role, or
// "kwd" if role is omitted. The texts of all keywords of a grammar are
// reserved and never matched by Id.
//
func Kwd(text string, role ...string) Rule {
	r := &kwdRule{text: text, role: RoleKwd}
	if len(role) > 0 {
		r.role = role[0]
	}
	return r
}

func (r *kwdRule) Match(c *Context, win []string) (interface{}, int, bool) {
	c.hint(win, r.text)
	a := atom(c, win)
	if a == nil || a.Text != r.text {
		return nil, 0, false
	}
	c.Tag(a.ID, r.role)
	return a, 1, true
}

type idRule struct {
	role string
}

// Id matches any Id atom that is not a keyword. A blank atom is matched and
// recorded as a placeholder for role.
//
func Id(role ...string) Rule {
	r := &idRule{}
	if len(role) > 0 {
		r.role = role[0]
	}
	return r
}

func (r *idRule) Match(c *Context, win []string) (interface{}, int, bool) {
	role := r.role
	if role == "" {
		role = RoleId
	}
	c.hint(win, role)
	a := atom(c, win)
	if a == nil || c.g.keywords[a.Text] {
		return nil, 0, false
	}
	if a.Blank() {
		c.placeholder(a.ID, role)
	} else if r.role != "" {
		c.Tag(a.ID, r.role)
	}
	return a, 1, true
}

type numberRule struct {
	intOnly bool
}

// Number matches an Id atom that parses as a number. If mode is "int", only
// integers match. The value is the matched *cst.Id.
//
func Number(mode ...string) Rule {
	return &numberRule{intOnly: len(mode) > 0 && mode[0] == "int"}
}

func (r *numberRule) Match(c *Context, win []string) (interface{}, int, bool) {
	a := atom(c, win)
	if a == nil || a.Blank() {
		return nil, 0, false
	}
	if _, err := strconv.ParseInt(a.Text, 0, 64); err != nil {
		if r.intOnly {
			return nil, 0, false
		}
		if _, err = strconv.ParseFloat(a.Text, 64); err != nil {
			return nil, 0, false
		}
	}
	c.Tag(a.ID, "number")
	return a, 1, true
}

type textRule struct {
	embed Rule
}

// Text matches a Text node. Every embed is matched against embed and must
// succeed for the whole match to succeed. The value is a *TextValue.
//
func Text(embed Rule) Rule {
	return &textRule{embed}
}

func (r *textRule) subRules() []Rule { return []Rule{r.embed} }

func (r *textRule) Match(c *Context, win []string) (interface{}, int, bool) {
	if len(win) == 0 {
		return nil, 0, false
	}
	t, ok := c.store.Get(win[0]).(*cst.Text)
	if !ok {
		return nil, 0, false
	}
	tv := &TextValue{Parts: []string{""}}
	for _, sp := range t.Spans {
		if !sp.IsEmbed() {
			tv.Parts[len(tv.Parts)-1] += sp.Text
			continue
		}
		v, n, ok := c.Match(r.embed, []string{sp.Embed})
		if !ok || n != 1 {
			return nil, 0, false
		}
		tv.Values = append(tv.Values, v)
		tv.Parts = append(tv.Parts, "")
	}
	c.Tag(t.ID, "text")
	return tv, 1, true
}

type listRule struct {
	kind cst.Kind
	item Rule
}

// List matches a List node of the given kind whose children match item.
// Children left over by item are tagged "unparsed". The value is the value of
// item.
//
func List(kind cst.Kind, item Rule) Rule {
	return &listRule{kind, item}
}

func (r *listRule) subRules() []Rule { return []Rule{r.item} }

func (r *listRule) Match(c *Context, win []string) (interface{}, int, bool) {
	if len(win) == 0 {
		return nil, 0, false
	}
	l, ok := c.store.Get(win[0]).(*cst.List)
	if !ok || l.Kind != r.kind {
		return nil, 0, false
	}
	v, n, ok := c.Match(r.item, l.Children)
	if !ok {
		return nil, 0, false
	}
	c.trailing(l.Children[n:])
	return v, 1, true
}

type tableRule struct {
	kind cst.Kind
	row  Rule
}

// Table matches a Table node of the given kind, every row matching row. The
// value is a []interface{} of row values.
//
func Table(kind cst.Kind, row Rule) Rule {
	return &tableRule{kind, row}
}

func (r *tableRule) subRules() []Rule { return []Rule{r.row} }

func (r *tableRule) Match(c *Context, win []string) (interface{}, int, bool) {
	if len(win) == 0 {
		return nil, 0, false
	}
	t, ok := c.store.Get(win[0]).(*cst.Table)
	if !ok || t.Kind != r.kind {
		return nil, 0, false
	}
	rows := make([]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, n, ok := c.Match(r.row, row)
		if !ok {
			return nil, 0, false
		}
		c.trailing(row[n:])
		rows = append(rows, v)
	}
	return rows, 1, true
}

type seqRule struct {
	rules []Rule
}

// Seq matches all rules in sequence. The value is a []interface{} of the
// values of each rule.
//
func Seq(rules ...Rule) Rule {
	return &seqRule{rules}
}

func (r *seqRule) subRules() []Rule { return r.rules }

func (r *seqRule) Match(c *Context, win []string) (interface{}, int, bool) {
	mark := c.mark()
	vs := make([]interface{}, 0, len(r.rules))
	pos := 0
	for _, sr := range r.rules {
		v, n, ok := c.Match(sr, win[pos:])
		if !ok {
			c.reset(mark)
			return nil, 0, false
		}
		vs = append(vs, v)
		pos += n
	}
	return vs, pos, true
}

type starRule struct {
	rule Rule
}

// Star matches rule zero or more times, skipping blank atoms between matches.
// It stops at the first non-match and never fails. The value is a
// []interface{}.
//
func Star(rule Rule) Rule {
	return &starRule{rule}
}

func (r *starRule) subRules() []Rule { return []Rule{r.rule} }

func (r *starRule) Match(c *Context, win []string) (interface{}, int, bool) {
	var vs []interface{}
	pos := 0
	for pos < len(win) {
		if a := atom(c, win[pos:]); a != nil && a.Blank() {
			pos++
			continue
		}
		v, n, ok := c.Match(r.rule, win[pos:])
		if !ok || n == 0 {
			break
		}
		vs = append(vs, v)
		pos += n
	}
	return vs, pos, true
}

type optRule struct {
	rule Rule
}

// Opt matches rule or nothing. The value is nil if rule did not match.
//
func Opt(rule Rule) Rule {
	return &optRule{rule}
}

func (r *optRule) subRules() []Rule { return []Rule{r.rule} }

func (r *optRule) Match(c *Context, win []string) (interface{}, int, bool) {
	if v, n, ok := c.Match(r.rule, win); ok {
		return v, n, true
	}
	return nil, 0, true
}

type orRule struct {
	rules []Rule
}

// Or is ordered choice: the first matching rule wins. Metadata tagged by
// failed alternatives is kept.
//
func Or(rules ...Rule) Rule {
	return &orRule{rules}
}

func (r *orRule) subRules() []Rule { return r.rules }

func (r *orRule) Match(c *Context, win []string) (interface{}, int, bool) {
	mark := c.mark()
	for _, sr := range r.rules {
		if v, n, ok := c.Match(sr, win); ok {
			return v, n, true
		}
		c.reset(mark)
	}
	return nil, 0, false
}

type refRule struct {
	name, bind string
}

// Ref matches the grammar rule with the given name.
//
func Ref(name string) Rule {
	return &refRule{name: name}
}

// RefAs is like Ref and captures the value under bind in the active scope.
//
func RefAs(name, bind string) Rule {
	return &refRule{name: name, bind: bind}
}

func (r *refRule) Match(c *Context, win []string) (interface{}, int, bool) {
	sr, ok := c.g.rules[r.name]
	if !ok {
		throw("undeclared rule %q", r.name)
	}
	if r.bind != "" && c.scope == nil {
		throw("Ref(%q, %q) outside of a Tx scope", r.name, r.bind)
	}
	v, n, ok := c.Match(sr, win)
	if ok && r.bind != "" {
		c.scope.set(r.bind, v)
	}
	return v, n, ok
}

type groupRule struct {
	name string
	rule Rule
}

// Group matches rule and captures its value under name in the active scope.
//
func Group(name string, rule Rule) Rule {
	return &groupRule{name, rule}
}

func (r *groupRule) subRules() []Rule { return []Rule{r.rule} }

func (r *groupRule) Match(c *Context, win []string) (interface{}, int, bool) {
	if c.scope == nil {
		throw("Group(%q) outside of a Tx scope", r.name)
	}
	v, n, ok := c.Match(r.rule, win)
	if ok {
		c.scope.set(r.name, v)
	}
	return v, n, ok
}

type metaRule struct {
	rule Rule
	role string
}

// Meta matches rule and tags every consumed node with role.
//
func Meta(rule Rule, role string) Rule {
	return &metaRule{rule, role}
}

func (r *metaRule) subRules() []Rule { return []Rule{r.rule} }

func (r *metaRule) Match(c *Context, win []string) (interface{}, int, bool) {
	c.hint(win, r.role)
	v, n, ok := c.Match(r.rule, win)
	if ok {
		for _, id := range win[:n] {
			c.Tag(id, r.role)
		}
	}
	return v, n, ok
}

type txRule struct {
	rule  Rule
	build func(*Scope, cst.Src) interface{}
}

// Tx matches rule in a fresh capture scope and builds a value from the scope
// and the source range of the match.
//
func Tx[T any](rule Rule, build func(s *Scope, src cst.Src) T) Rule {
	return &txRule{rule, func(s *Scope, src cst.Src) interface{} { return build(s, src) }}
}

func (r *txRule) subRules() []Rule { return []Rule{r.rule} }

func (r *txRule) Match(c *Context, win []string) (interface{}, int, bool) {
	outer := c.scope
	s := &Scope{}
	c.scope = s
	v, n, ok := c.Match(r.rule, win)
	c.scope = outer
	if !ok {
		return nil, 0, false
	}
	s.Value = v
	var src cst.Src
	if n > 0 {
		src.Left = win[0]
		if n > 1 {
			src.Right = win[n-1]
		}
	}
	return r.build(s, src), n, true
}

type anyRule struct{}

// Any matches any single node. The value is the node id.
//
func Any() Rule {
	return anyRule{}
}

func (anyRule) Match(c *Context, win []string) (interface{}, int, bool) {
	if len(win) == 0 {
		return nil, 0, false
	}
	return win[0], 1, true
}

type endRule struct{}

// End matches the end of a window, after any trailing comments.
//
func End() Rule {
	return endRule{}
}

func (endRule) Match(c *Context, win []string) (interface{}, int, bool) {
	return nil, 0, len(win) == 0
}

type funcRule func(c *Context, win []string) (interface{}, int, bool)

// Func turns a function into a Rule.
//
func Func(f func(c *Context, win []string) (interface{}, int, bool)) Rule {
	return funcRule(f)
}

func (f funcRule) Match(c *Context, win []string) (interface{}, int, bool) {
	return f(c, win)
}
