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

package lang_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/grammar"
	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/lang"
	"github.com/db47h/hindley/lex"
)

func parse(t *testing.T, src string) *lang.Program {
	t.Helper()
	p, err := lang.Parse("", src, lang.LexConfig(lex.Logger(log.Discard())))
	require.NoError(t, err)
	return p
}

func render(p *lang.Program) string {
	ss := make([]string, len(p.Stmts))
	for i, st := range p.Stmts {
		ss[i] = ast.StmtString(st)
	}
	return strings.Join(ss, "\n")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"let", "let x = 2", "let x = 2"},
		{"lambda", "let id = (x) => x", "let id = (x) => x"},
		{"lambda_smooshed", "let id = (x)=>x", "let id = (x) => x"},
		{"lambda_bare_param", "x => x + 1", "(x) => +(x, 1)"},
		{"lambda_empty", "() => 1", "() => 1"},
		{"lambda_pairs", "((a, b), c) => a", "((a, b), c) => a"},
		{"call", "f(a, b)(c)", "f(a, b)(c)"},
		{"call_nested", "f(g(1), [x])", "f(g(1), [x])"},
		{"precedence", "1 + 2 * 3", "+(1, *(2, 3))"},
		{"precedence_left", "1 * 2 + 3", "+(*(1, 2), 3)"},
		{"left_assoc", "a - b - c", "-(-(a, b), c)"},
		{"logic", "a || b && c == d", "||(a, &&(b, ==(c, d)))"},
		{"parens", "(a + b) * c", "*(+(a, b), c)"},
		{"ternary", "c ? 1 : 2", "if (c) 1 else 2"},
		{"ternary_nested", "a ? 1 : b ? 2 : 3", "if (a) 1 else if (b) 2 else 3"},
		{"float", "let f = 2.5", "let f = 2.5"},
		{"negative", "let n = -1", "let n = -1"},
		{"not", "!x", "!(x)"},
		{"not_call", "!f(x)", "!(f(x))"},
		{"array", "[1, ...ys]", "[1, ...ys]"},
		{"array_empty", "let xs = []", "let xs = []"},
		{"index", "xs[0]", "index(xs, 0)"},
		{"tuple", "(1, true, x)", "(1, (true, x))"},
		{"string", `"n = ${n + 1}"`, `"n = ${+(n, 1)}"`},
		{"if_else", "if (a) {1} else {2}", "if (a) { 1 } else { 2 }"},
		{"else_if", "if (a) {1} else if (b) {2} else {3}", "if (a) { 1 } else if (b) { 2 } else { 3 }"},
		{"if_only", "if (a) {1}", "if (a) { 1 }"},
		{"match", "match (p) { (a, b) => a, _ => 0 }", "match (p) { (a, b) => a, _ => 0 }"},
		{"match_literals", `match (s) { "x" => 1, 2 => 2, true => 3, Some(y) => y }`,
			`match (s) { "x" => 1, 2 => 2, true => 3, Some(y) => y }`},
		{"for", "for (let i = 0; i < 10; i + 1) { push(xs, i) }", "for (let i = 0; <(i, 10); +(i, 1)) { push(xs, i) }"},
		{"while", "for (i < 3) {}", "for (; <(i, 3); ) { }"},
		{"return", "return", "return"},
		{"return_value", "return x", "return x"},
		{"block", "{let x = 2\nx}", "{ let x = 2; x }"},
		{"multiline", "let fact = (n) => {\n  if (n <= 1) {\n    return 1\n  }\n  return n * fact(n - 1)\n}",
			"let fact = (n) => { if (<=(n, 1)) { return 1 }; return *(n, fact(-(n, 1))) }"},
		{"statements", "let a = 1\nlet b = a; b", "let a = 1\nlet b = a\nb"},
		{"comments", "// leading\nlet x = 1 // trailing\n//\nx // done", "let x = 1\nx"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(parse(t, tt.input)))
		})
	}
}

func TestParse_errors(t *testing.T) {
	cfg := lang.LexConfig(lex.Logger(log.Discard()))
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tail", "let x = 2 3", "t:1:1: unexpected (spaced let x = 2 3)"},
		{"keyword", "let\nlet = 3", "t:1:1: unexpected let"},
		{"second", "x\ny +", "t:2:1: unexpected (spaced y +)"},
		{"lex", "(a", "t:1:1: unclosed round list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lang.Parse("t", tt.input, cfg)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
	_, err := lang.Parse("t", "let = 3", cfg)
	assert.IsType(t, &lang.Error{}, err)
}

func TestParse_meta(t *testing.T) {
	p := parse(t, "let t = (a, fact(b)) // pair")
	l := p.Store.Get(p.Store.Roots[0]).(*cst.List)
	require.Len(t, l.Children, 6)
	role := func(id string) string { return p.Meta[id].Role }

	assert.Equal(t, grammar.RoleKwd, role(l.Children[0]))
	assert.Equal(t, lang.RoleBinding, role(l.Children[1]))
	assert.Equal(t, lang.RoleOp, role(l.Children[2]))
	assert.Equal(t, grammar.RoleComment, role(l.Children[4]))
	assert.Equal(t, grammar.RoleComment, role(l.Children[5]))

	// the failed lambda attempt tagged a as a parameter binding, the
	// successful match wins
	tuple := p.Store.Get(l.Children[3]).(*cst.List)
	assert.Equal(t, lang.RoleVar, role(tuple.Children[0]))
	call := p.Store.Get(tuple.Children[1]).(*cst.List)
	assert.Equal(t, lang.RoleVar, role(call.Children[0]))
}

func TestParse_metaCond(t *testing.T) {
	p := parse(t, "if (c) 1 else 2")
	l := p.Store.Get(p.Store.Roots[0]).(*cst.List)
	require.Len(t, l.Children, 5)
	cond := l.Children[1]
	assert.Equal(t, lang.RoleCond, p.Meta[cond].Role)
	// atoms inside the condition keep their own role
	assert.Equal(t, lang.RoleVar, p.Meta[p.Store.Get(cond).(*cst.List).Children[0]].Role)
}

func TestParse_sources(t *testing.T) {
	p := parse(t, "let y = f(1) + 2")
	require.Len(t, p.Stmts, 1)
	let := p.Stmts[0].(*ast.Let)
	l := p.Store.Get(p.Store.Roots[0]).(*cst.List)
	assert.Equal(t, l.Children[0], let.Src.Left)
	assert.Equal(t, l.Children[5], let.Src.Right)

	sum := let.Init.(*ast.App)
	assert.Equal(t, cst.Src{Left: l.Children[3], Right: l.Children[5]}, sum.Src)
	assert.Equal(t, cst.Src{Left: l.Children[4]}, sum.Fn.Source())
	assert.Equal(t, "1:9", p.Store.Position(sum.Src.Left).String())
}

func TestKeywords(t *testing.T) {
	kws := lang.Keywords()
	for _, k := range []string{"let", "return", "for", "if", "else", "match", "=>", "...", "+", "||"} {
		assert.Contains(t, kws, k)
	}
	assert.NotContains(t, kws, "true")
}
