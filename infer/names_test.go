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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_varName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "a"}, {1, "b"}, {25, "z"}, {26, "aa"}, {27, "ab"}, {51, "az"}, {52, "ba"}, {701, "zz"}, {702, "aaa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, varName(tt.n), "varName(%d)", tt.n)
	}
}

func TestTenv_snapshot(t *testing.T) {
	env := Builtins()
	s0, h0 := env.snapshot()
	assert.Empty(t, s0)

	e1 := env.Bind("x", Mono(Con(TInt)))
	s1, h1 := e1.snapshot()
	assert.Len(t, s1, 1)
	assert.NotEqual(t, h0, h1)

	// same bindings, built differently
	e2 := env.Bind("y", Mono(Var("q"))).Bind("x", Mono(Con(TInt))).Apply(Subst{"q": Con(TBool)})
	e3 := env.Bind("x", Mono(Con(TInt))).Bind("y", Mono(Con(TBool)))
	_, h2 := e2.snapshot()
	_, h3 := e3.snapshot()
	assert.Equal(t, h3, h2)
	assert.Equal(t, []string{"y", "x"}, e2.Locals())
}
