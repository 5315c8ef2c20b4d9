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

// Package trace reconstructs the state of an inference run at any checkpoint
// of its event log.
//
// A checkpoint is a stack-break event. Replay is a pure function of the log
// and the checkpoint index; Stepper adds caching for interactive use.
//
package trace

import (
	"github.com/google/go-cmp/cmp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/infer"
)

// Frame is an entry of the reconstructed inference stack.
//
type Frame struct {
	Src   cst.Src
	Items []infer.FrameItem
}

// View is the state of an inference run at a checkpoint.
//
type View struct {
	Step    int // checkpoint index
	Event   int // index of the checkpoint in the log
	Stack   []Frame
	Subst   infer.Subst
	Scope   map[string]*infer.Scheme // current local scope, substitution applied
	Touched []string                 // variables bound by the most recent unification
	Break   infer.Event
}

// view has the fields of View but not its Equal method, which cmp would
// otherwise call back.
type view View

// Equal reports whether v and o describe the same state.
//
func (v View) Equal(o View) bool {
	return cmp.Equal(view(v), view(o),
		cmp.Comparer(func(a, b ast.Type) bool { return infer.Equal(a, b) }),
		cmp.Comparer(func(a, b *infer.Scheme) bool { return a.String() == b.String() }),
	)
}

// Steps returns the number of checkpoints in events.
//
func Steps(events []infer.Event) int {
	n := 0
	for i := range events {
		if events[i].Kind == infer.StackBreak {
			n++
		}
	}
	return n
}

// Replay returns the view at checkpoint step. It returns false if there is no
// such checkpoint.
//
func Replay(events []infer.Event, step int) (View, bool) {
	if step < 0 {
		return View{}, false
	}
	var (
		stack []Frame
		sub   = infer.Subst{}
		scope map[string]*infer.Scheme
		last  *infer.Event
		n     = 0
	)
	for i := range events {
		e := &events[i]
		switch e.Kind {
		case infer.StackPush:
			stack = append(stack, Frame{e.Src, e.Frame})
		case infer.StackPop:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case infer.Unify:
			sub = infer.ComposeSubst(e.Subst, sub)
			last = e
		case infer.Scope:
			scope = e.Scope
		case infer.StackBreak:
			if n < step {
				n++
				continue
			}
			v := View{
				Step:  step,
				Event: i,
				Stack: append([]Frame(nil), stack...),
				Subst: sub,
				Scope: make(map[string]*infer.Scheme, len(scope)),
				Break: *e,
			}
			for k, sc := range scope {
				v.Scope[k] = sc.Apply(sub)
			}
			if last != nil {
				v.Touched = last.Subst.Keys()
			}
			return v, true
		}
	}
	return View{}, false
}

// Stepper caches replayed views.
//
type Stepper struct {
	events []infer.Event
	steps  int
	cache  *lru.Cache
}

// NewStepper returns a Stepper over events caching up to size views.
//
func NewStepper(events []infer.Event, size int) (*Stepper, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Stepper{events: events, steps: Steps(events), cache: c}, nil
}

// Steps returns the number of checkpoints.
//
func (s *Stepper) Steps() int {
	return s.steps
}

// View returns the view at checkpoint step.
//
func (s *Stepper) View(step int) (View, bool) {
	if v, ok := s.cache.Get(step); ok {
		return v.(View), true
	}
	v, ok := Replay(s.events, step)
	if ok {
		s.cache.Add(step, v)
	}
	return v, ok
}

// Last returns the view at the last checkpoint.
//
func (s *Stepper) Last() (View, bool) {
	return s.View(s.steps - 1)
}
