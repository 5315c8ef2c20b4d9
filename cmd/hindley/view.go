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

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/db47h/hindley"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/diag"
	"github.com/db47h/hindley/infer"
	"github.com/db47h/hindley/token"
	"github.com/db47h/hindley/trace"
)

// holeText renders the source of a sub-derivation.
func holeText(s *cst.Store, src cst.Src) string {
	if src.IsZero() {
		return "?"
	}
	if src.Right == "" {
		return s.String(src.Left)
	}
	return s.String(src.Left) + " … " + s.String(src.Right)
}

// frameString renders a stack frame with the types of v's substitution.
func frameString(s *cst.Store, v trace.View, f trace.Frame) string {
	var b strings.Builder
	for _, it := range f.Items {
		switch it.Kind {
		case infer.ItemHole:
			b.WriteString(holeText(s, it.Src))
		case infer.ItemType:
			b.WriteString(infer.Apply(v.Subst, it.Type).String())
		default:
			b.WriteString(it.Text)
		}
	}
	return b.String()
}

func writeView(w io.Writer, f *token.File, rep *hindley.Report, v trace.View) {
	s := rep.Program.Store
	fmt.Fprintf(w, "step %d (event %d)\n", v.Step, v.Event)
	if v.Break.Message != "" {
		diag.Fprint(w, f, rep.Position(v.Break.Src), v.Break.Message)
	}

	fmt.Fprintln(w, "stack:")
	for i := len(v.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "  %s\n", frameString(s, v, v.Stack[i]))
	}

	if len(v.Subst) > 0 {
		touched := make(map[string]bool, len(v.Touched))
		for _, n := range v.Touched {
			touched[n] = true
		}
		t := tablewriter.NewWriter(w)
		t.SetHeader([]string{"", "Var", "Type"})
		t.SetAutoFormatHeaders(false)
		for _, k := range v.Subst.Keys() {
			mark := ""
			if touched[k] {
				mark = "*"
			}
			t.Append([]string{mark, k, v.Subst[k].String()})
		}
		t.Render()
	}

	if len(v.Scope) > 0 {
		names := make([]string, 0, len(v.Scope))
		for n := range v.Scope {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "scope:")
		for _, n := range names {
			fmt.Fprintf(w, "  %s: %s\n", n, v.Scope[n])
		}
	}
}

// writeSteps lists all checkpoints of st.
func writeSteps(w io.Writer, st *trace.Stepper, rep *hindley.Report) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Step", "Position", "Frame", "Message"})
	t.SetAutoFormatHeaders(false)
	for i := 0; i < st.Steps(); i++ {
		v, _ := st.View(i)
		var frame string
		if n := len(v.Stack); n > 0 {
			frame = frameString(rep.Program.Store, v, v.Stack[n-1])
		}
		pos := rep.Position(v.Break.Src)
		var ps string
		if pos.IsValid() {
			ps = fmt.Sprintf("%d:%d", pos.Line, pos.Column)
		}
		t.Append([]string{strconv.Itoa(i), ps, frame, v.Break.Message})
	}
	t.Render()
}
