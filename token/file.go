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

package token

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLine is returned when a line number is out of range.
//
var ErrLine = errors.New("invalid line number")

// Pos represents a byte offset within a File.
//
type Pos int

// NoPos is the zero-information position.
//
const NoPos Pos = -1

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// Position describes an arbitrary source position including the file, line, and column location.
//
type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

// IsValid reports whether the position carries a line number.
//
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A File represents an in-memory source file. It handles file offset to
// line/column conversion.
//
type File struct {
	name  string
	src   string
	lines []Pos // 0-based line/Pos information
}

// NewFile returns a new File for the given source text. Line offsets are
// added by the lexer as it encounters newlines.
//
func NewFile(name, src string) *File {
	return &File{
		name:  name,
		src:   src,
		lines: []Pos{0}, // auto-add line 1 at pos 0
	}
}

// Name returns the file name.
//
func (f *File) Name() string {
	return f.name
}

// Source returns the file contents.
//
func (f *File) Source() string {
	return f.src
}

// Lines returns the number of known lines.
//
func (f *File) Lines() int {
	return len(f.lines)
}

// AddLine adds a new line starting at offset pos.
//
// The current implementation will only accept a new line if pos is greater
// than the position of the previous line. Offsets already known are ignored so
// that a lexer may safely back up over a newline.
//
func (f *File) AddLine(pos Pos) {
	l := len(f.lines)
	if f.lines[l-1] >= pos {
		// line already known
		return
	}
	f.lines = append(f.lines, pos)
}

// Position returns the 1-based line and column for a given pos.
//
func (f *File) Position(pos Pos) Position {
	if !pos.IsValid() {
		return Position{Filename: f.name}
	}
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	return Position{f.name, int(pos), i, int(pos - f.lines[i-1] + 1)}
}

// LinePos return the file offset of the given line.
//
func (f *File) LinePos(line int) Pos {
	if line < 1 || line > len(f.lines) {
		return NoPos
	}
	return f.lines[line-1]
}

// Line returns the text of the given 1-based line, without its terminating
// newline.
//
func (f *File) Line(line int) (string, error) {
	lp := f.LinePos(line)
	if !lp.IsValid() || int(lp) > len(f.src) {
		return "", ErrLine
	}
	s := f.src[lp:]
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r"), nil
}
