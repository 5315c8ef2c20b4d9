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

package ast

import (
	"strconv"
	"strings"
)

func (t *TVar) String() string { return t.Name }
func (t *TCon) String() string { return t.Name }

func (t *TFn) String() string {
	return "(" + joinTypes(t.Args) + ") => " + t.Result.String()
}

func (t *TApp) String() string {
	if c, ok := t.Target.(*TCon); ok && c.Name == "," {
		return "(" + joinTypes(t.Args) + ")"
	}
	return t.Target.String() + "<" + joinTypes(t.Args) + ">"
}

func joinTypes(ts []Type) string {
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = t.String()
	}
	return strings.Join(ss, ", ")
}

// ExprString returns a JavaScript-like rendering of e. It is meant for
// diagnostics and does not necessarily round-trip.
//
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

// StmtString returns a JavaScript-like rendering of s.
//
func StmtString(s Stmt) string {
	var b strings.Builder
	writeStmt(&b, s)
	return b.String()
}

// PatString returns a rendering of p.
//
func PatString(p Pat) string {
	switch p := p.(type) {
	case *PAny:
		return "_"
	case *PVar:
		return p.Name
	case *PStr:
		return strconv.Quote(p.Value)
	case *PPrim:
		return p.Text
	case *PCon:
		ss := make([]string, len(p.Args))
		for i, a := range p.Args {
			ss[i] = PatString(a)
		}
		if p.Name == "," {
			return "(" + strings.Join(ss, ", ") + ")"
		}
		return p.Name + "(" + strings.Join(ss, ", ") + ")"
	}
	return "<nil>"
}

func writeStmt(b *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *Let:
		b.WriteString("let " + PatString(s.Pat) + " = ")
		writeExpr(b, s.Init)
	case *ExprStmt:
		writeExpr(b, s.Expr)
	case *Return:
		b.WriteString("return")
		if s.Value != nil {
			b.WriteByte(' ')
			writeExpr(b, s.Value)
		}
	case *For:
		b.WriteString("for (")
		if s.Init != nil {
			writeStmt(b, s.Init)
		}
		b.WriteString("; ")
		if s.Cond != nil {
			writeExpr(b, s.Cond)
		}
		b.WriteString("; ")
		if s.Update != nil {
			writeExpr(b, s.Update)
		}
		b.WriteString(") ")
		writeExpr(b, s.Body)
	default:
		b.WriteString("<nil>")
	}
}

func writeExprs(b *strings.Builder, es []Expr) {
	for i, e := range es {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e)
	}
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Var:
		b.WriteString(e.Name)
	case *Prim:
		b.WriteString(e.Text)
	case *Str:
		b.WriteByte('"')
		for i, p := range e.Parts {
			b.WriteString(strings.NewReplacer(`"`, `\"`, "\n", `\n`, "$", `\$`).Replace(p))
			if i < len(e.Exprs) {
				b.WriteString("${")
				writeExpr(b, e.Exprs[i])
				b.WriteByte('}')
			}
		}
		b.WriteByte('"')
	case *Block:
		b.WriteString("{")
		for i, s := range e.Stmts {
			if i > 0 {
				b.WriteString(";")
			}
			b.WriteByte(' ')
			writeStmt(b, s)
		}
		b.WriteString(" }")
	case *If:
		b.WriteString("if (")
		writeExpr(b, e.Cond)
		b.WriteString(") ")
		writeExpr(b, e.Yes)
		if e.No != nil {
			b.WriteString(" else ")
			writeExpr(b, e.No)
		}
	case *Match:
		b.WriteString("match (")
		writeExpr(b, e.Target)
		b.WriteString(") {")
		for i, c := range e.Cases {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(" " + PatString(c.Pat) + " => ")
			writeExpr(b, c.Body)
		}
		b.WriteString(" }")
	case *Array:
		b.WriteByte('[')
		for i, it := range e.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if it.Spread {
				b.WriteString("...")
			}
			writeExpr(b, it.Value)
		}
		b.WriteByte(']')
	case *Lambda:
		b.WriteByte('(')
		for i, p := range e.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(PatString(p))
		}
		b.WriteString(") => ")
		writeExpr(b, e.Body)
	case *App:
		if v, ok := e.Fn.(*Var); ok && v.Name == "," {
			b.WriteByte('(')
			writeExprs(b, e.Args)
			b.WriteByte(')')
			return
		}
		writeExpr(b, e.Fn)
		b.WriteByte('(')
		writeExprs(b, e.Args)
		b.WriteByte(')')
	default:
		b.WriteString("<nil>")
	}
}
