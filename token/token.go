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

// Package token defines the source file abstraction and character classes
// shared by the lexer and the diagnostics renderer.
//
package token

import "strconv"

// Class is the lexical class of a single character.
//
// Classes >= Text are atom classes: adjacent characters of the same atom class
// form a single Id atom. Text is class 0 and Punct(n) is class n.
//
type Class int

// Character classes.
//
const (
	Space     Class = -4 // blank, not a separator
	Separator Class = -3 // ends a child slot
	Quote     Class = -2 // opens or closes a Text node
	Bracket   Class = -1 // opens or closes a container
	Text      Class = 0  // anything else
)

// Punct returns the class for the n-th (1-based) punctuation class.
//
func Punct(n int) Class {
	if n < 1 {
		panic("invalid punctuation class " + strconv.Itoa(n))
	}
	return Class(n)
}

// IsAtom returns true if characters of class c form Id atoms.
//
func (c Class) IsAtom() bool {
	return c >= Text
}

func (c Class) String() string {
	switch c {
	case Space:
		return "space"
	case Separator:
		return "separator"
	case Quote:
		return "quote"
	case Bracket:
		return "bracket"
	case Text:
		return "text"
	default:
		return "punct(" + strconv.Itoa(int(c)) + ")"
	}
}
