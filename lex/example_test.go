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
	"fmt"

	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/lex"
)

func ExampleLex() {
	cfg := lex.NewConfig(lex.Punctuation("=+-*/<>!&|?:%", "."), lex.Logger(log.Discard()))
	s, err := lex.LexString("example", "let x = f(2, \"n=${n}\")\nx.y", cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s.RootsString())

	_, err = lex.LexString("example", "let x = (2", cfg)
	fmt.Println(err)

	// Output:
	// (spaced let x = (smooshed f (round 2 "n=${n}")))
	// (smooshed x . y)
	// example:1:9: unclosed round list
}
