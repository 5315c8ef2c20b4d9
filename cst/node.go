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

// Package cst implements the Node Store: a flat, id-indexed table owning every
// node of a concrete syntax tree.
//
// Nodes never embed other nodes: List children, Table rows and Text embeds are
// node ids resolved through the Store. A Store is built by the lexer and is not
// modified once parsing starts; grammar metadata lives in a side table keyed by
// the same ids.
//
package cst

import "github.com/db47h/hindley/token"

// Kind is the structural kind of a List or Table.
//
type Kind string

// List kinds. Rich kinds are opaque tags for structured content inserted by
// external editors; the lexer never produces them.
//
const (
	Round    Kind = "round"
	Square   Kind = "square"
	Curly    Kind = "curly"
	Angle    Kind = "angle"
	Smooshed Kind = "smooshed" // juxtaposed items, no whitespace in between
	Spaced   Kind = "spaced"   // items separated by spaces within a slot
)

// Rich returns the kind for a rich content tag.
//
func Rich(tag string) Kind {
	return Kind("rich:" + tag)
}

// Transient returns true for groupings created by juxtaposition rather than
// by brackets.
//
func (k Kind) Transient() bool {
	return k == Smooshed || k == Spaced
}

// Node is implemented by Id, Text, List and Table.
//
type Node interface {
	// Loc returns the node's own id.
	Loc() string
	node()
}

// Id is an atom: a run of characters of the same class.
//
type Id struct {
	ID    string
	Text  string
	Class token.Class
}

// Blank returns true for placeholder atoms.
//
func (n *Id) Blank() bool { return n.Text == "" }

// Span is one part of a Text node: either literal text or an embedded node.
//
type Span struct {
	Text  string
	Embed string // node id; empty for literal spans
}

// IsEmbed returns true if the span refers to an embedded node.
//
func (s Span) IsEmbed() bool { return s.Embed != "" }

// Text is a quoted string with optional embedded nodes.
//
type Text struct {
	ID    string
	Spans []Span
}

// List is a bracketed or juxtaposition container.
//
type List struct {
	ID             string
	Kind           Kind
	Children       []string
	ForceMultiline bool
}

// Table is a bracketed container of rows.
//
type Table struct {
	ID   string
	Kind Kind
	Rows [][]string
}

func (n *Id) Loc() string    { return n.ID }
func (n *Text) Loc() string  { return n.ID }
func (n *List) Loc() string  { return n.ID }
func (n *Table) Loc() string { return n.ID }

func (*Id) node()    {}
func (*Text) node()  {}
func (*List) node()  {}
func (*Table) node() {}

// Src identifies the node or node range consumed by a grammar rule. Right is
// empty when a single node was consumed.
//
type Src struct {
	Left  string
	Right string
}

// IsZero returns true if s carries no location.
//
func (s Src) IsZero() bool {
	return s.Left == "" && s.Right == ""
}

func (s Src) String() string {
	if s.Right == "" {
		return s.Left
	}
	return s.Left + ".." + s.Right
}
