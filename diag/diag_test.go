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

package diag_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/db47h/hindley/diag"
	"github.com/db47h/hindley/token"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		s string
		w int
	}{
		{"", 0},
		{"abc", 3},
		{"déjà", 4},
		{"世界", 4},
		{"＃〄", 4},
		{"a\x00b", 2},
		{"\tx", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.w, diag.Width(tt.s), "%q", tt.s)
	}
}

func TestSnippet(t *testing.T) {
	f := token.NewFile("t", "let x = 世界 + 1\n\tx y\n")
	f.AddLine(token.Pos(strings.IndexByte(f.Source(), '\n') + 1))

	tests := []struct {
		name string
		pos  token.Position
		want string
	}{
		{"wide", token.Position{Filename: "t", Line: 1, Column: 16},
			"t:1:16: oops\n\tlet x = 世界 + 1\n\t" + strings.Repeat(" ", 13) + "^\n"},
		{"first", token.Position{Filename: "t", Line: 1, Column: 1},
			"t:1:1: oops\n\tlet x = 世界 + 1\n\t^\n"},
		{"tab", token.Position{Filename: "t", Line: 2, Column: 4},
			"t:2:4: oops\n\t\tx y\n\t\t  ^\n"},
		{"eol", token.Position{Filename: "t", Line: 2, Column: 42},
			"t:2:42: oops\n\t\tx y\n\t\t   ^\n"},
		{"unknown line", token.Position{Filename: "t", Line: 7, Column: 1},
			"t:7:1: oops\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diag.Snippet(f, tt.pos, "oops"))
		})
	}
	assert.Equal(t, "t:1:1: oops\n", diag.Snippet(nil, token.Position{Filename: "t", Line: 1, Column: 1}, "oops"))
}

func TestFprint_noColor(t *testing.T) {
	defer func(b bool) { color.NoColor = b }(color.NoColor)
	color.NoColor = true

	f := token.NewFile("t", "1 + true")
	pos := token.Position{Filename: "t", Line: 1, Column: 5}
	var b bytes.Buffer
	diag.Fprint(&b, f, pos, "Incompatible concrete types: int vs bool")
	assert.Equal(t, diag.Snippet(f, pos, "Incompatible concrete types: int vs bool"), b.String())
}

func ExampleSnippet() {
	f := token.NewFile("input", "＃〄 - Hello 世界 1<")
	fmt.Print(diag.Snippet(f, token.Position{Filename: "input", Line: 1, Column: 23}, "digit"))
	// Output:
	// input:1:23: digit
	// 	＃〄 - Hello 世界 1<
	// 	                  ^
}
