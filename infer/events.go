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
	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
)

// EventKind is the kind of a trace event.
//
type EventKind int

// Event kinds.
//
const (
	StackPush EventKind = iota
	StackPop
	StackBreak
	Unify
	Infer
	NewVar
	Scope
)

func (k EventKind) String() string {
	switch k {
	case StackPush:
		return "stack-push"
	case StackPop:
		return "stack-pop"
	case StackBreak:
		return "stack-break"
	case Unify:
		return "unify"
	case Infer:
		return "infer"
	case NewVar:
		return "new-var"
	case Scope:
		return "scope"
	}
	return "unknown"
}

// Provenance records why a type variable was created.
//
type Provenance int

// Type variable provenances.
//
const (
	ArrayItem Provenance = iota
	FreeInstantiation
	PatternVariable
	LambdaReturn
	ApplyResult
	PatternWildcard
	EarlyReturnSite
)

var provNames = [...]string{
	ArrayItem:         "array-item",
	FreeInstantiation: "free-instantiation",
	PatternVariable:   "pattern-variable",
	LambdaReturn:      "lambda-return",
	ApplyResult:       "apply-result",
	PatternWildcard:   "pattern-wildcard",
	EarlyReturnSite:   "early-return-site",
}

func (p Provenance) String() string {
	if p >= 0 && int(p) < len(provNames) {
		return provNames[p]
	}
	return "unknown"
}

// ItemKind is the kind of a stack frame item.
//
type ItemKind int

// Stack frame item kinds.
//
const (
	ItemText ItemKind = iota // literal text
	ItemKwd                  // keyword token
	ItemHole                 // sub-derivation, identified by its Src
	ItemType                 // resolved type
)

// FrameItem is one element of a display stack frame.
//
type FrameItem struct {
	Kind ItemKind
	Text string
	Src  cst.Src
	Type ast.Type
}

func text(s string) FrameItem       { return FrameItem{Kind: ItemText, Text: s} }
func kwd(s string) FrameItem        { return FrameItem{Kind: ItemKwd, Text: s} }
func hole(n ast.Node) FrameItem     { return FrameItem{Kind: ItemHole, Src: n.Source()} }
func typeItem(t ast.Type) FrameItem { return FrameItem{Kind: ItemType, Type: t} }

func holes(ns ...ast.Node) (r []FrameItem) {
	for i, n := range ns {
		if i > 0 {
			r = append(r, text(", "))
		}
		r = append(r, hole(n))
	}
	return r
}

// Event is a trace event. Which fields are set depends on Kind:
//
//	StackPush   Src, Frame
//	StackPop    Src
//	StackBreak  Src, Message
//	Unify       Src, Left, Right, LabelLeft, LabelRight, Subst, Message
//	Infer       Src, Type
//	NewVar      Src, Type, Prov
//	Scope       Scope
//
type Event struct {
	Kind    EventKind
	Src     cst.Src
	Frame   []FrameItem
	Message string

	Left, Right           ast.Type
	LabelLeft, LabelRight string
	Subst                 Subst

	Type ast.Type
	Prov Provenance

	Scope map[string]*Scheme
}
