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

import "github.com/db47h/hindley/ast"

// Builtins returns the builtin environment: the literals true, false and
// null, arithmetic, comparison and logical operators, array functions and the
// tuple constructor ",".
//
func Builtins() *Tenv {
	var (
		a     = Var("a")
		b     = Var("b")
		intT  = Con(TInt)
		boolT = Con(TBool)
		arr   = ArrayOf(a)
	)
	env := NewTenv()
	for name, arity := range map[string]int{
		TInt: 0, TFloat: 0, TBool: 0, TString: 0, TVoid: 0, TNull: 0,
		TArray: 1, TTuple: 2,
	} {
		env = env.WithType(name, arity)
	}

	decl := func(name string, vars []string, t ast.Type) {
		env = env.Declare(name, &Scheme{Vars: vars, Body: t})
	}
	decl("true", nil, boolT)
	decl("false", nil, boolT)
	decl("null", nil, Con(TNull))
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		decl(op, nil, Fn(intT, intT, intT))
	}
	for _, op := range []string{"<", ">", "<=", ">="} {
		decl(op, nil, Fn(boolT, intT, intT))
	}
	for _, op := range []string{"==", "!="} {
		decl(op, []string{"a"}, Fn(boolT, a, a))
	}
	for _, op := range []string{"&&", "||"} {
		decl(op, nil, Fn(boolT, boolT, boolT))
	}
	decl("!", nil, Fn(boolT, boolT))
	decl("length", []string{"a"}, Fn(intT, arr))
	decl("index", []string{"a"}, Fn(a, arr, intT))
	decl("push", []string{"a"}, Fn(arr, arr, a))
	decl("unshift", []string{"a"}, Fn(arr, arr, a))
	decl("concat", []string{"a"}, Fn(arr, arr, arr))

	tuple := &Scheme{Vars: []string{"a", "b"}, Body: Fn(Tuple(a, b), a, b)}
	decl(TTuple, tuple.Vars, tuple.Body)
	env, err := env.WithConstructor(TTuple, tuple)
	if err != nil {
		panic(err)
	}
	return env
}
