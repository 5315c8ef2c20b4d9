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

// Package diag formats source diagnostics: a message followed by the
// offending source line and a caret under the reported column.
//
package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"github.com/db47h/hindley/token"
)

var caret = color.New(color.FgRed, color.Bold)

// Width computes the width in text cells of s, supposing rendering with a
// UTF-8 locale and a monospaced font. Tabs count as one cell.
//
func Width(s string) int {
	w := 0
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n
		if r == '\t' {
			w++
			continue
		}
		if !unicode.IsGraphic(r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			// EastAsianAmbiguous depends on the user locale. 2 if CJK.
			w++
		}
	}
	return w
}

// Snippet returns msg prefixed with pos, followed by the source line at pos
// and a caret under its column. If the line is not known to f, only the
// message is returned.
//
func Snippet(f *token.File, pos token.Position, msg string) string {
	var b strings.Builder
	write(&b, f, pos, msg, false)
	return b.String()
}

// Fprint writes the snippet for msg at pos to w. The caret is colored unless
// color output is disabled by the color package.
//
func Fprint(w io.Writer, f *token.File, pos token.Position, msg string) {
	write(w, f, pos, msg, !color.NoColor)
}

func write(w io.Writer, f *token.File, pos token.Position, msg string, colored bool) {
	fmt.Fprintf(w, "%v: %s\n", pos, msg)
	if f == nil || !pos.IsValid() {
		return
	}
	l, err := f.Line(pos.Line)
	if err != nil {
		return
	}
	b := pos.Column - 1 // byte index
	if b < 0 {
		b = 0
	} else if b > len(l) {
		b = len(l)
	}
	pad := padding(l[:b])
	fmt.Fprintf(w, "\t%s\n", l)
	if colored {
		fmt.Fprintf(w, "\t%s%s\n", pad, caret.Sprint("^"))
		return
	}
	fmt.Fprintf(w, "\t%s^\n", pad)
}

// padding returns blanks spanning the width of s. Tabs are kept as is.
//
func padding(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(strings.Repeat(" ", Width(string(r))))
	}
	return b.String()
}
