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

package lex

import (
	"fmt"
	"unicode/utf8"

	"github.com/db47h/hindley/token"
)

// EOF is the return value from Next() when EOF is reached.
//
const EOF rune = -1

// Error is a fatal lexing error. The lexer never produces partial results.
//
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// reader reads runes from a token.File, tracking line offsets.
//
type reader struct {
	f   *token.File
	src string
	r   int       // read offset
	cur rune      // last rune returned by next
	pos token.Pos // offset of cur
	err error
}

func (rd *reader) init(f *token.File) {
	rd.f = f
	rd.src = f.Source()
	rd.cur = utf8.RuneSelf
	rd.pos = token.NoPos
	// BOM only allowed as first rune in the file
	const BOM = "\uFEFF"
	if len(rd.src) >= len(BOM) && rd.src[:len(BOM)] == BOM {
		rd.r = len(BOM)
	}
}

// next returns the next rune in the input stream. If the end of the input
// has been reached it will return EOF. Invalid UTF-8 and NUL bytes are
// reported by setting rd.err and returning EOF.
//
func (rd *reader) next() rune {
	rd.pos = token.Pos(rd.r)
	if rd.r >= len(rd.src) {
		rd.cur = EOF
		return EOF
	}
	// Common case: ASCII
	if b := rd.src[rd.r]; b < utf8.RuneSelf {
		rd.r++
		if b == 0 {
			rd.errorf("invalid NUL character")
			rd.cur = EOF
			return EOF
		}
		if b == '\n' {
			rd.f.AddLine(token.Pos(rd.r))
		}
		rd.cur = rune(b)
		return rd.cur
	}
	r, w := utf8.DecodeRuneInString(rd.src[rd.r:])
	if r == utf8.RuneError && w == 1 {
		rd.errorf("invalid UTF-8 encoding")
		rd.cur = EOF
		return EOF
	}
	rd.r += w
	rd.cur = r
	return r
}

// peek returns the next rune without consuming it.
//
func (rd *reader) peek() rune {
	if rd.r >= len(rd.src) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(rd.src[rd.r:])
	return r
}

func (rd *reader) errorf(format string, args ...interface{}) {
	if rd.err == nil {
		rd.err = &Error{rd.f.Position(rd.pos), fmt.Sprintf(format, args...)}
	}
}
