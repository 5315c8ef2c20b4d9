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
	"strings"
)

// String returns an s-expression representation of the node with the given
// id. This should be used only for debugging purposes as the output format is
// not guaranteed to be stable.
//
//	(spaced let x = 2)
//	(smooshed f (round 2 true))
//	"a ${(spaced b + 1)}"
//	(table:curly (row a b) (row c))
//
func (s *Store) String(id string) string {
	var b strings.Builder
	s.write(&b, id)
	return b.String()
}

// RootsString returns the String of every root, one per line.
//
func (s *Store) RootsString() string {
	var b strings.Builder
	for i, id := range s.Roots {
		if i > 0 {
			b.WriteByte('\n')
		}
		s.write(&b, id)
	}
	return b.String()
}

func (s *Store) write(b *strings.Builder, id string) {
	n, ok := s.Nodes[id]
	if !ok {
		b.WriteString("<missing " + id + ">")
		return
	}
	switch n := n.(type) {
	case *Id:
		if n.Blank() {
			b.WriteString("_")
			return
		}
		b.WriteString(n.Text)
	case *Text:
		b.WriteByte('"')
		for _, sp := range n.Spans {
			if sp.IsEmbed() {
				b.WriteString("${")
				s.write(b, sp.Embed)
				b.WriteByte('}')
				continue
			}
			b.WriteString(strings.NewReplacer(`"`, `\"`, "\n", `\n`).Replace(sp.Text))
		}
		b.WriteByte('"')
	case *List:
		b.WriteString("(" + string(n.Kind))
		for _, c := range n.Children {
			b.WriteByte(' ')
			s.write(b, c)
		}
		b.WriteByte(')')
	case *Table:
		b.WriteString("(table:" + string(n.Kind))
		for _, r := range n.Rows {
			b.WriteString(" (row")
			for _, c := range r {
				b.WriteByte(' ')
				s.write(b, c)
			}
			b.WriteByte(')')
		}
		b.WriteByte(')')
	}
}
