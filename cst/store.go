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

package cst

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/db47h/hindley/token"
)

// Store owns all the nodes of a CST.
//
type Store struct {
	File  *token.File
	Nodes map[string]Node
	Roots []string
	pos   map[string]token.Pos
	last  int
}

// NewStore returns an empty store for nodes lexed from f. f may be nil for
// stores built programmatically.
//
func NewStore(f *token.File) *Store {
	return &Store{
		File:  f,
		Nodes: make(map[string]Node),
		pos:   make(map[string]token.Pos),
	}
}

// NextID returns a new, monotonically increasing node id.
//
func (s *Store) NextID() string {
	s.last++
	return strconv.Itoa(s.last)
}

// Add registers n and its source position. Adding a node twice panics.
//
func (s *Store) Add(n Node, p token.Pos) Node {
	id := n.Loc()
	if _, ok := s.Nodes[id]; ok {
		panic("node " + id + " registered twice")
	}
	s.Nodes[id] = n
	s.pos[id] = p
	return n
}

// NewId creates and registers an Id atom.
//
func (s *Store) NewId(text string, c token.Class, p token.Pos) *Id {
	n := &Id{ID: s.NextID(), Text: text, Class: c}
	s.Add(n, p)
	return n
}

// NewText creates and registers an empty Text node.
//
func (s *Store) NewText(p token.Pos) *Text {
	n := &Text{ID: s.NextID()}
	s.Add(n, p)
	return n
}

// NewList creates and registers a List.
//
func (s *Store) NewList(k Kind, p token.Pos, children ...string) *List {
	n := &List{ID: s.NextID(), Kind: k, Children: children}
	s.Add(n, p)
	return n
}

// NewTable creates and registers a Table with a single empty row.
//
func (s *Store) NewTable(k Kind, p token.Pos) *Table {
	n := &Table{ID: s.NextID(), Kind: k, Rows: [][]string{nil}}
	s.Add(n, p)
	return n
}

// Get returns the node with the given id. It panics if no such node exists.
//
func (s *Store) Get(id string) Node {
	n, ok := s.Nodes[id]
	if !ok {
		panic("unknown node id " + strconv.Quote(id))
	}
	return n
}

// Lookup returns the node with the given id, if any.
//
func (s *Store) Lookup(id string) (Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// Pos returns the source position of the node with the given id.
//
func (s *Store) Pos(id string) token.Pos {
	if p, ok := s.pos[id]; ok {
		return p
	}
	return token.NoPos
}

// Position returns the line:column position of the node with the given id.
//
func (s *Store) Position(id string) token.Position {
	if s.File == nil {
		return token.Position{}
	}
	return s.File.Position(s.Pos(id))
}

// Children returns the ids directly referenced by n, in order.
//
func (s *Store) Children(n Node) []string {
	switch n := n.(type) {
	case *List:
		return n.Children
	case *Table:
		var ids []string
		for _, r := range n.Rows {
			ids = append(ids, r...)
		}
		return ids
	case *Text:
		var ids []string
		for _, sp := range n.Spans {
			if sp.IsEmbed() {
				ids = append(ids, sp.Embed)
			}
		}
		return ids
	}
	return nil
}

// Validate checks that every referenced id exists in the store, that every
// node is referenced at most once and that every table has a row.
//
func (s *Store) Validate() error {
	seen := make(map[string]string, len(s.Nodes))
	ref := func(parent, id string) error {
		if _, ok := s.Nodes[id]; !ok {
			return fmt.Errorf("node %s references unknown node %q", parent, id)
		}
		if p, ok := seen[id]; ok {
			return fmt.Errorf("node %s referenced by both %s and %s", id, p, parent)
		}
		seen[id] = parent
		return nil
	}
	for _, id := range s.Roots {
		if err := ref("<root>", id); err != nil {
			return err
		}
	}
	ids := make([]string, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if t, ok := s.Nodes[id].(*Table); ok && len(t.Rows) == 0 {
			return fmt.Errorf("table %s: missing table row", id)
		}
		for _, c := range s.Children(s.Nodes[id]) {
			if err := ref(id, c); err != nil {
				return err
			}
		}
	}
	return nil
}
