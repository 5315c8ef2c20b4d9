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

package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/lex"
	"github.com/db47h/hindley/token"
)

func testConfig() *lex.Config {
	return lex.NewConfig(lex.Punctuation("=+-*/<>!&|?:%", "."), lex.Logger(log.Discard()))
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single", "x", "x"},
		{"spaced", "let x = 2", "(spaced let x = 2)"},
		{"smooshed_punct", "x+=1", "(smooshed x += 1)"},
		{"call", "f(a, b)", "(smooshed f (round a b))"},
		{"call_chain", "f(a)(b)", "(smooshed f (round a) (round b))"},
		{"mixed", "a.b c", "(spaced (smooshed a . b) c)"},
		{"mixed_tail", "a b.c", "(spaced a (smooshed b . c))"},
		{"roots", "a b\nc;d", "(spaced a b)\nc\nd"},
		{"nested", "[(a b), {c}]", "(square (round (spaced a b)) (curly c))"},
		{"empty_list", "()", "(round)"},
		{"text", `"a ${b} c"`, `"a ${b} c"`},
		{"text_embed_expr", `"${x + 1}"`, `"${(spaced x + 1)}"`},
		{"text_empty_embed", `"${}"`, `"${_}"`},
		{"text_escapes", `"a\"b\$c\\"`, `"a\"b$c\"`},
		{"text_dollar", `"$a"`, `"$a"`},
		{"text_smooshed", `f"x"`, `(smooshed f "x")`},
		{"table", "{: a, b; c}", "(table:curly (row a b) (row c))"},
		{"table_newlines", "[:\n a, b\n c, d\n]", "(table:square (row a b) (row c d))"},
		{"unicode", "déjà vu", "(spaced déjà vu)"},
		{"bom", "\uFEFFx", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := lex.LexString("", tt.input, testConfig())
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.RootsString())
			assert.NoError(t, s.Validate())
		})
	}
}

func TestLex_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mismatch", "(a]", "1:3: unexpected close ']', expected ')'"},
		{"unclosed", "(a", "1:1: unclosed round list"},
		{"unclosed_nested", "a\n [b", "2:2: unclosed square list"},
		{"stray_close", ")", "1:1: unexpected close ')'"},
		{"embed_separator", `"${a, b}"`, "1:5: separator ',' inside text embed"},
		{"embed_close", `"${a)}"`, "1:5: unexpected close ')' inside text embed"},
		{"unterminated", `x "abc`, "1:3: unterminated text"},
		{"unclosed_embed", `"${a`, "1:3: unclosed text embed"},
		{"nul", "a\x00", "1:2: invalid NUL character"},
		{"utf8", "a\xffb", "1:2: invalid UTF-8 encoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := lex.LexString("", tt.input, testConfig())
			require.Error(t, err)
			assert.Nil(t, s)
			assert.IsType(t, &lex.Error{}, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestLex_forceMultiline(t *testing.T) {
	s, err := lex.LexString("", "(a\nb)", testConfig())
	require.NoError(t, err)
	require.Len(t, s.Roots, 1)
	l := s.Get(s.Roots[0]).(*cst.List)
	assert.True(t, l.ForceMultiline)
	assert.Len(t, l.Children, 2)

	s, err = lex.LexString("", "(a, b)", testConfig())
	require.NoError(t, err)
	assert.False(t, s.Get(s.Roots[0]).(*cst.List).ForceMultiline)
}

func TestLex_positions(t *testing.T) {
	// a newline at the root separates statements
	s, err := lex.LexString("test", "let\n  x", testConfig())
	require.NoError(t, err)
	require.Len(t, s.Roots, 2)
	assert.Equal(t, "test:1:1", s.Position(s.Roots[0]).String())
	assert.Equal(t, "test:2:3", s.Position(s.Roots[1]).String())

	s, err = lex.LexString("test", "(let\n  x)", testConfig())
	require.NoError(t, err)
	require.Len(t, s.Roots, 1)
	assert.Equal(t, "test:1:1", s.Position(s.Roots[0]).String())
	l := s.Get(s.Roots[0]).(*cst.List)
	require.Len(t, l.Children, 2)
	assert.Equal(t, "test:1:2", s.Position(l.Children[0]).String())
	assert.Equal(t, "test:2:3", s.Position(l.Children[1]).String())
}

func TestLex_atoms(t *testing.T) {
	s, err := lex.LexString("", "a<=b", testConfig())
	require.NoError(t, err)
	l := s.Get(s.Roots[0]).(*cst.List)
	require.Equal(t, cst.Smooshed, l.Kind)
	want := []struct {
		text  string
		class token.Class
	}{
		{"a", token.Text},
		{"<=", token.Punct(1)},
		{"b", token.Text},
	}
	require.Len(t, l.Children, len(want))
	for i, w := range want {
		id := s.Get(l.Children[i]).(*cst.Id)
		assert.Equal(t, w.text, id.Text)
		assert.Equal(t, w.class, id.Class)
	}
}

func TestLex_xml(t *testing.T) {
	cfg := lex.NewConfig(lex.XML(true), lex.Logger(log.Discard()))
	s, err := lex.LexString("", "<a b>", cfg)
	require.NoError(t, err)
	assert.Equal(t, "(angle (spaced a b))", s.RootsString())

	s, err = lex.LexString("", "a<b", testConfig())
	require.NoError(t, err)
	assert.Equal(t, "(smooshed a < b)", s.RootsString())
}

func TestLex_noTables(t *testing.T) {
	cfg := lex.NewConfig(lex.Punctuation(":"), lex.Tables(',', ';', 0), lex.Logger(log.Discard()))
	s, err := lex.LexString("", "{:a}", cfg)
	require.NoError(t, err)
	assert.Equal(t, "(curly (smooshed : a))", s.RootsString())
}
