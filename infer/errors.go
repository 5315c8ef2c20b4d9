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

package infer

import (
	"errors"
	"fmt"

	"github.com/db47h/hindley/cst"
)

// Error is a fatal inference error: unbound variables, arity mismatches,
// occurs check failures, empty lambdas, return statements outside of a
// lambda and unknown constructors or types.
//
type Error struct {
	Src cst.Src
	Msg string
}

func (e *Error) Error() string {
	if e.Src.IsZero() {
		return e.Msg
	}
	return e.Src.String() + ": " + e.Msg
}

// ErrSubstOverlap is the panic value of ComposeSubst when both substitutions
// bind the same variable. It is never recovered.
//
var ErrSubstOverlap = errors.New("infer: composing substitutions with overlapping keys")

func fail(src cst.Src, format string, args ...interface{}) {
	panic(&Error{src, fmt.Sprintf(format, args...)})
}

// catch recovers *Error panics into err.
//
func catch(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(*Error); ok {
			*err = e
			return
		}
		panic(r)
	}
}
