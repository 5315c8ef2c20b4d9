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

// Package ast declares the types used to represent the abstract syntax tree
// of programs built by grammar semantic actions.
//
// Every node carries the cst.Src of the nodes it was built from. Nodes are
// immutable once built.
//
package ast

import "github.com/db47h/hindley/cst"

// Node is implemented by all AST nodes.
//
type Node interface {
	Source() cst.Src
}

// Stmt is one of *For, *Let, *ExprStmt or *Return.
//
type Stmt interface {
	Node
	stmt()
}

// Expr is one of *Block, *If, *Match, *Array, *Prim, *Var, *Str, *Lambda or
// *App.
//
type Expr interface {
	Node
	expr()
}

// Pat is one of *PAny, *PVar, *PCon, *PStr or *PPrim.
//
type Pat interface {
	Node
	pat()
}

// Type is one of *TVar, *TFn, *TApp or *TCon.
//
type Type interface {
	Node
	typ()
	String() string
}

// Statements.
type (
	// For is a C-style loop. Init, Cond and Update may be nil.
	For struct {
		Init   Stmt
		Cond   Expr
		Update Expr
		Body   Expr
		Src    cst.Src
	}

	Let struct {
		Pat  Pat
		Init Expr
		Src  cst.Src
	}

	ExprStmt struct {
		Expr Expr
		Src  cst.Src
	}

	Return struct {
		Value Expr
		Src   cst.Src
	}
)

// PrimKind is the kind of a primitive literal.
//
type PrimKind int

// Primitive kinds.
//
const (
	Int PrimKind = iota
	Float
	Bool
)

func (k PrimKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	}
	return "invalid"
}

// Expressions.
type (
	Block struct {
		Stmts []Stmt
		Src   cst.Src
	}

	// If is a conditional. No is nil if there is no else branch.
	If struct {
		Cond Expr
		Yes  Expr
		No   Expr
		Src  cst.Src
	}

	Match struct {
		Target Expr
		Cases  []*Case
		Src    cst.Src
	}

	Array struct {
		Items []ArrayItem
		Src   cst.Src
	}

	Prim struct {
		Kind PrimKind
		Text string
		Src  cst.Src
	}

	Var struct {
		Name string
		Src  cst.Src
	}

	// Str is a string template. Parts has one more element than Exprs.
	Str struct {
		Parts []string
		Exprs []Expr
		Src   cst.Src
	}

	Lambda struct {
		Params []Pat
		Body   Expr
		Src    cst.Src
	}

	App struct {
		Fn   Expr
		Args []Expr
		Src  cst.Src
	}
)

// Case is a match case.
//
type Case struct {
	Pat  Pat
	Body Expr
	Src  cst.Src
}

// ArrayItem is an element of an array literal. Spread items are arrays whose
// elements are inlined.
//
type ArrayItem struct {
	Value  Expr
	Spread bool
}

// Patterns.
type (
	PAny struct {
		Src cst.Src
	}

	PVar struct {
		Name string
		Src  cst.Src
	}

	// PCon matches values built by the named constructor.
	PCon struct {
		Name string
		Args []Pat
		Src  cst.Src
	}

	PStr struct {
		Value string
		Src   cst.Src
	}

	PPrim struct {
		Kind PrimKind
		Text string
		Src  cst.Src
	}
)

// Types.
type (
	TVar struct {
		Name string
		Src  cst.Src
	}

	TFn struct {
		Args   []Type
		Result Type
		Src    cst.Src
	}

	// TApp is a type constructor applied to arguments, like Array<int>.
	TApp struct {
		Target Type
		Args   []Type
		Src    cst.Src
	}

	TCon struct {
		Name string
		Src  cst.Src
	}
)

func (n *For) Source() cst.Src      { return n.Src }
func (n *Let) Source() cst.Src      { return n.Src }
func (n *ExprStmt) Source() cst.Src { return n.Src }
func (n *Return) Source() cst.Src   { return n.Src }
func (n *Block) Source() cst.Src    { return n.Src }
func (n *If) Source() cst.Src       { return n.Src }
func (n *Match) Source() cst.Src    { return n.Src }
func (n *Array) Source() cst.Src    { return n.Src }
func (n *Prim) Source() cst.Src     { return n.Src }
func (n *Var) Source() cst.Src      { return n.Src }
func (n *Str) Source() cst.Src      { return n.Src }
func (n *Lambda) Source() cst.Src   { return n.Src }
func (n *App) Source() cst.Src      { return n.Src }
func (n *Case) Source() cst.Src     { return n.Src }
func (n *PAny) Source() cst.Src     { return n.Src }
func (n *PVar) Source() cst.Src     { return n.Src }
func (n *PCon) Source() cst.Src     { return n.Src }
func (n *PStr) Source() cst.Src     { return n.Src }
func (n *PPrim) Source() cst.Src    { return n.Src }
func (n *TVar) Source() cst.Src     { return n.Src }
func (n *TFn) Source() cst.Src      { return n.Src }
func (n *TApp) Source() cst.Src     { return n.Src }
func (n *TCon) Source() cst.Src     { return n.Src }

func (*For) stmt()      {}
func (*Let) stmt()      {}
func (*ExprStmt) stmt() {}
func (*Return) stmt()   {}

func (*Block) expr()  {}
func (*If) expr()     {}
func (*Match) expr()  {}
func (*Array) expr()  {}
func (*Prim) expr()   {}
func (*Var) expr()    {}
func (*Str) expr()    {}
func (*Lambda) expr() {}
func (*App) expr()    {}

func (*PAny) pat()  {}
func (*PVar) pat()  {}
func (*PCon) pat()  {}
func (*PStr) pat()  {}
func (*PPrim) pat() {}

func (*TVar) typ() {}
func (*TFn) typ()  {}
func (*TApp) typ() {}
func (*TCon) typ() {}
