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
	"sort"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	g "github.com/db47h/hindley/grammar"
)

// Node roles set in the parse metadata, in addition to the grammar defaults.
//
const (
	RoleOp          = "op"
	RoleVar         = "var"
	RoleParam       = "param"
	RoleBinding     = "binding"
	RoleConstructor = "constructor"
	RoleCond        = "cond"
)

// whole matches rule against an entire window.
//
func whole[T any](rule g.Rule) g.Rule {
	return g.Tx(g.Seq(rule, g.End()), func(s *g.Scope, _ cst.Src) T {
		v, _ := s.Value.([]interface{})[0].(T)
		return v
	})
}

func operators() g.Rule {
	ops := make([]string, 0, len(binOps))
	for op := range binOps {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	rs := make([]g.Rule, len(ops))
	for i, op := range ops {
		rs[i] = g.Kwd(op, RoleOp)
	}
	return g.Or(rs...)
}

var slashes = g.Kwd("//", g.RoleComment)

// lineComment matches "//" and the nodes following it on the same line.
//
func lineComment(c *g.Context, win []string) (interface{}, int, bool) {
	if _, _, ok := c.Match(slashes, win); !ok {
		return nil, 0, false
	}
	s := c.Store()
	line := s.Position(win[0]).Line
	n := 1
	for n < len(win) && s.Position(win[n]).Line == line {
		n++
	}
	return nil, n, true
}

func noEmbed(*g.Context, []string) (interface{}, int, bool) {
	return nil, 0, false
}

// rules returns the grammar of the language. Rule names ending in W match a
// window of sibling nodes; all others match a single node.
//
// Alternatives that fail may leave roles behind. Every name is matched by an
// Id rule with a role so that the successful match has the last word.
//
func rules() g.Rules {
	caseW := g.Seq(g.Group("pat", g.Ref("pat")), g.Kwd("=>"), g.Group("body", g.Ref("exprW")), g.End())
	spreadW := g.Seq(g.Kwd("..."), g.Group("x", g.Ref("exprW")), g.End())

	return g.Rules{
		g.CommentRule: g.Or(
			g.Func(lineComment),
			g.List(cst.Spaced, g.Func(lineComment)),
			g.List(cst.Smooshed, g.Func(lineComment)),
		),

		"program": g.Star(g.Ref("stmt")),

		// statements
		"stmt": g.Or(
			g.List(cst.Spaced, whole[ast.Stmt](g.Ref("stmtW"))),
			g.Tx(g.Kwd("return"), buildReturn),
			g.Tx(g.Ref("expr"), buildExprStmt),
		),
		"stmtW": g.Or(g.Ref("let"), g.Ref("return"), g.Ref("for"), g.Tx(g.Ref("exprW"), buildExprStmt)),
		"let": g.Tx(g.Seq(
			g.Kwd("let"), g.Group("pat", g.Ref("pat")), g.Kwd("=", RoleOp), g.Group("init", g.Ref("exprW")),
		), buildLet),
		"return": g.Tx(g.Seq(g.Kwd("return"), g.Group("value", g.Ref("exprW"))), buildReturn),
		"for": g.Tx(g.Seq(
			g.Kwd("for"),
			g.List(cst.Round, g.Or(
				g.Seq(g.Group("init", g.Ref("stmt")), g.Group("cond", g.Ref("expr")), g.Group("update", g.Ref("expr")), g.End()),
				g.Seq(g.Group("cond", g.Ref("expr")), g.End()),
			)),
			g.Group("body", g.Ref("block")),
		), buildFor),

		// expressions
		"exprW": g.Or(g.Ref("lambda"), g.Ref("if"), g.Ref("match"), g.Ref("cond")),
		"lambda": g.Tx(g.Seq(
			g.Group("params", g.Ref("params")), g.Kwd("=>"), g.Group("body", g.Ref("exprW")),
		), buildLambda),
		"params": g.Or(
			g.List(cst.Round, g.Tx(g.Seq(g.Star(g.Ref("pat")), g.End()), buildParams)),
			g.Tx(g.Id(RoleParam), buildParam),
		),
		"if": g.Tx(g.Seq(
			g.Kwd("if"),
			g.Meta(g.List(cst.Round, g.Seq(g.Group("cond", g.Ref("exprW")), g.End())), RoleCond),
			g.Group("yes", g.Ref("expr")),
			g.Opt(g.Seq(g.Kwd("else"), g.Group("no", g.Or(g.Ref("if"), g.Ref("expr"))))),
		), buildIf),
		"match": g.Tx(g.Seq(
			g.Kwd("match"),
			g.List(cst.Round, g.Seq(g.Group("target", g.Ref("exprW")), g.End())),
			g.List(cst.Curly, g.Seq(g.Group("cases", g.Star(g.Ref("case"))), g.End())),
		), buildMatch),
		"case": g.Tx(g.Or(g.List(cst.Spaced, caseW), g.List(cst.Smooshed, caseW)), buildCase),
		"cond": g.Tx(g.Seq(
			g.Group("test", g.Ref("binary")),
			g.Opt(g.Seq(g.Kwd("?"), g.Group("yes", g.Ref("binary")), g.Kwd(":"), g.Group("no", g.Ref("exprW")))),
		), buildCond),
		"binary":   g.Func(binary),
		"operator": operators(),
		"operand":  g.Or(g.Ref("not"), g.Ref("neg"), g.Ref("postfix")),
		"not":      g.Tx(g.Seq(g.Kwd("!", RoleOp), g.Group("x", g.Ref("operand"))), buildNot),
		"neg":      g.Tx(g.Seq(g.Kwd("-", RoleOp), g.Group("n", g.Ref("number"))), buildNeg),
		"postfix": g.Tx(g.Seq(
			g.Group("head", g.Ref("primary")), g.Group("suffixes", g.Star(g.Or(g.Ref("call"), g.Ref("index")))),
		), buildPostfix),
		"call":    g.Tx(g.List(cst.Round, g.Seq(g.Group("args", g.Star(g.Ref("expr"))), g.End())), buildCall),
		"index":   g.Tx(g.List(cst.Square, g.Seq(g.Group("i", g.Ref("exprW")), g.End())), buildIndex),
		"primary": g.Or(g.Ref("float"), g.Ref("expr")),
		"float": g.Tx(g.Seq(
			g.Group("int", g.Number("int")), g.Kwd("."), g.Group("frac", g.Number()),
		), buildFloat),

		"expr": g.Or(
			g.List(cst.Spaced, whole[ast.Expr](g.Ref("exprW"))),
			g.List(cst.Smooshed, whole[ast.Expr](g.Ref("exprW"))),
			g.Ref("number"),
			g.Ref("string"),
			g.Ref("var"),
			g.Ref("paren"),
			g.Ref("array"),
			g.Ref("block"),
		),
		"number": g.Or(
			g.Tx(g.Number("int"), buildPrim(ast.Int)),
			g.Tx(g.Number(), buildPrim(ast.Float)),
		),
		"string": g.Tx(g.Text(g.Ref("expr")), buildStr),
		"var":    g.Tx(g.Id(RoleVar), buildVar),
		"paren": g.List(cst.Round, g.Tx(g.Seq(
			g.Group("first", g.Ref("expr")), g.Group("rest", g.Star(g.Ref("expr"))), g.End(),
		), buildTuple)),
		"array": g.Tx(g.List(cst.Square, g.Seq(g.Group("items", g.Star(g.Ref("item"))), g.End())), buildArray),
		"item": g.Or(
			g.Tx(g.List(cst.Smooshed, spreadW), buildSpread),
			g.Tx(g.List(cst.Spaced, spreadW), buildSpread),
			g.Tx(g.Ref("expr"), buildItem),
		),
		"block": g.Tx(g.List(cst.Curly, g.Seq(g.Group("stmts", g.Star(g.Ref("stmt"))), g.End())), buildBlock),

		// patterns
		"pat": g.Or(
			g.Tx(g.Kwd("_"), buildPAny),
			g.Tx(g.Ref("number"), buildPPrim),
			g.Tx(g.Text(g.Func(noEmbed)), buildPStr),
			g.List(cst.Smooshed, g.Tx(g.Seq(
				g.Group("name", g.Id(RoleConstructor)),
				g.List(cst.Round, g.Seq(g.Group("args", g.Star(g.Ref("pat"))), g.End())),
				g.End(),
			), buildPCon)),
			g.List(cst.Round, g.Tx(g.Seq(
				g.Group("first", g.Ref("pat")), g.Group("rest", g.Star(g.Ref("pat"))), g.End(),
			), buildPTuple)),
			g.Tx(g.Id(RoleBinding), buildPVar),
		),
	}
}
