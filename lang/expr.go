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

package lang

import (
	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	g "github.com/db47h/hindley/grammar"
)

type opSpec struct {
	prec int
	ra   bool
}

// binOps lists the binary operators by precedence. All are left-associative.
//
var binOps = map[string]opSpec{
	"||": {1, false},
	"&&": {2, false},
	"==": {3, false},
	"!=": {3, false},
	"<":  {4, false},
	">":  {4, false},
	"<=": {4, false},
	">=": {4, false},
	"+":  {5, false},
	"-":  {5, false},
	"*":  {6, false},
	"/":  {6, false},
	"%":  {6, false},
}

var (
	operandRule  = g.Ref("operand")
	operatorRule = g.Ref("operator")
)

// climber folds a window of operands and binary operators into nested
// applications using a precedence climbing algorithm.
// See http://www.engr.mun.ca/~theo/Misc/exp_parsing.htm#climbing.
//
type climber struct {
	c   *g.Context
	win []string
	pos int
}

func binary(c *g.Context, win []string) (interface{}, int, bool) {
	p := &climber{c: c, win: win}
	e, ok := p.parseExpr(0)
	if !ok {
		return nil, 0, false
	}
	return e, p.pos, true
}

func (p *climber) parseExpr(pmin int) (ast.Expr, bool) {
	start := p.pos
	v, n, ok := p.c.Match(operandRule, p.win[p.pos:])
	if !ok {
		return nil, false
	}
	p.pos += n
	lhs := v.(ast.Expr)
	for {
		v, n, ok := p.c.Match(operatorRule, p.win[p.pos:])
		if !ok {
			return lhs, true
		}
		op := v.(*cst.Id)
		s := binOps[op.Text]
		if s.prec < pmin {
			return lhs, true
		}
		save := p.pos
		p.pos += n
		prec := s.prec + 1
		if s.ra {
			prec = s.prec
		}
		rhs, ok := p.parseExpr(prec)
		if !ok {
			p.pos = save
			return lhs, true
		}
		lhs = &ast.App{
			Fn:   &ast.Var{Name: op.Text, Src: cst.Src{Left: op.ID}},
			Args: []ast.Expr{lhs, rhs},
			Src:  span(p.win[start:p.pos]),
		}
	}
}

// span returns the source range covering ids.
//
func span(ids []string) cst.Src {
	var src cst.Src
	if len(ids) > 0 {
		src.Left = ids[0]
		if len(ids) > 1 {
			src.Right = ids[len(ids)-1]
		}
	}
	return src
}
