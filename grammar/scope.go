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

package grammar

// Scope is a capture scope, opened by Tx. Captures are ordered and a later
// capture shadows an earlier one with the same name.
//
type Scope struct {
	names []string
	vals  []interface{}

	// Value is the value of the rule wrapped by the Tx owning the scope.
	Value interface{}
}

func (s *Scope) set(name string, v interface{}) {
	s.names = append(s.names, name)
	s.vals = append(s.vals, v)
}

func (s *Scope) mark() int {
	return len(s.names)
}

func (s *Scope) reset(mark int) {
	for i := mark; i < len(s.vals); i++ {
		s.vals[i] = nil
	}
	s.names, s.vals = s.names[:mark], s.vals[:mark]
}

// Lookup returns the value captured under name.
//
func (s *Scope) Lookup(name string) (interface{}, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return s.vals[i], true
		}
	}
	return nil, false
}

// Get returns the value captured under name or nil.
//
func (s *Scope) Get(name string) interface{} {
	v, _ := s.Lookup(name)
	return v
}

// Has returns true if a value was captured under name.
//
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Names returns the capture names in capture order.
//
func (s *Scope) Names() []string {
	return append([]string(nil), s.names...)
}
