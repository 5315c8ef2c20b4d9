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

package lex

import (
	"strings"

	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/token"
)

// Config holds the character classification used by the lexer.
//
type Config struct {
	PunctuationClasses []string // each string lists the characters of one punctuation class
	SpaceChars         string
	SeparatorChars     string
	TableColSep        rune
	TableRowSep        rune
	TableIntroChar     rune
	XMLEnabled         bool // '<' and '>' delimit angle lists

	log     log.Logger
	classes map[rune]token.Class
}

// An Option configures a Config.
//
type Option func(*Config)

// Punctuation sets the punctuation classes. The characters of classes[i]
// belong to class token.Punct(i+1). Characters not listed in any class, and
// not otherwise special, are of class token.Text.
//
func Punctuation(classes ...string) Option {
	return func(c *Config) {
		c.PunctuationClasses = classes
	}
}

// Spaces sets the blank characters.
//
func Spaces(s string) Option {
	return func(c *Config) {
		c.SpaceChars = s
	}
}

// Separators sets the characters separating child slots.
//
func Separators(s string) Option {
	return func(c *Config) {
		c.SeparatorChars = s
	}
}

// Tables sets the table column and row separators and the character that,
// immediately following an opening bracket, opens a table instead of a list.
//
func Tables(colSep, rowSep, intro rune) Option {
	return func(c *Config) {
		c.TableColSep = colSep
		c.TableRowSep = rowSep
		c.TableIntroChar = intro
	}
}

// XML enables or disables angle bracket lists.
//
func XML(enabled bool) Option {
	return func(c *Config) {
		c.XMLEnabled = enabled
	}
}

// Logger sets the logger used to report lexing statistics.
//
func Logger(l log.Logger) Option {
	return func(c *Config) {
		c.log = l
	}
}

// NewConfig returns a configuration with the following defaults, overridden by
// opts:
//
//	spaces:      " \t\r"
//	separators:  ",;\n"
//	tables:      col ',', row ';', intro ':'
//	punctuation: none
//
func NewConfig(opts ...Option) *Config {
	c := &Config{
		SpaceChars:     " \t\r",
		SeparatorChars: ",;\n",
		TableColSep:    ',',
		TableRowSep:    ';',
		TableIntroChar: ':',
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = log.Root()
	}
	c.build()
	return c
}

func (c *Config) build() {
	m := make(map[rune]token.Class)
	for i, s := range c.PunctuationClasses {
		for _, r := range s {
			m[r] = token.Punct(i + 1)
		}
	}
	for _, r := range c.SpaceChars {
		m[r] = token.Space
	}
	seps := c.SeparatorChars
	for _, r := range []rune{c.TableColSep, c.TableRowSep} {
		if r != 0 && !strings.ContainsRune(seps, r) {
			seps += string(r)
		}
	}
	for _, r := range seps {
		m[r] = token.Separator
	}
	if _, ok := m['\n']; !ok {
		m['\n'] = token.Space
	}
	m['"'] = token.Quote
	for r := range openers {
		m[r] = token.Bracket
	}
	for r := range closers {
		m[r] = token.Bracket
	}
	if !c.XMLEnabled {
		delete(m, '<')
		delete(m, '>')
		for _, r := range "<>" {
			for i, s := range c.PunctuationClasses {
				if strings.ContainsRune(s, r) {
					m[r] = token.Punct(i + 1)
				}
			}
		}
	}
	c.classes = m
}

// Class returns the class of r.
//
func (c *Config) Class(r rune) token.Class {
	if c.classes == nil {
		c.build()
	}
	if cl, ok := c.classes[r]; ok {
		return cl
	}
	return token.Text
}
