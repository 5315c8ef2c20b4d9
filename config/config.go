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

// Package config loads the TOML configuration file of the hindley command.
//
// Keys are the Go field names:
//
//	[Lexer]
//	Punctuation = ["=+-*/<>!&|?:%^~", "."]
//	TableIntro = ":"
//
//	[Trace]
//	CacheSize = 128
//
//	[Log]
//	Verbosity = 4
//
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode/utf8"

	"github.com/naoina/toml"

	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/lang"
	"github.com/db47h/hindley/lex"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Lexer holds the character classes of the lexer. Separators and table
// characters are single-character strings; an empty TableIntro disables
// tables.
//
type Lexer struct {
	Punctuation []string
	Spaces      string
	Separators  string
	TableColSep string
	TableRowSep string
	TableIntro  string
	XML         bool
}

// Trace configures the trace stepper.
//
type Trace struct {
	CacheSize int // number of replayed views kept in memory
}

// Log configures the root logger.
//
type Log struct {
	Verbosity int // 0 = crit .. 5 = trace
	NoColor   bool
}

// Config is the top-level configuration.
//
type Config struct {
	Lexer Lexer
	Trace Trace
	Log   Log
}

// Default returns the default configuration. Its lexer settings are those of
// the lang package.
//
func Default() *Config {
	return &Config{
		Lexer: Lexer{
			Punctuation: lang.Punctuation(),
			Spaces:      " \t\r",
			Separators:  ",;\n",
			TableColSep: ",",
			TableRowSep: ";",
			TableIntro:  ":",
		},
		Trace: Trace{CacheSize: 128},
		Log:   Log{Verbosity: int(log.LvlInfo)},
	}
}

// Load reads the file at path over the defaults.
//
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	if err != nil {
		return nil, err
	}
	if _, err = cfg.Lexer.Options(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Trace.CacheSize <= 0 {
		return nil, fmt.Errorf("%s: Trace.CacheSize must be positive", path)
	}
	return cfg, nil
}

// Marshal returns the TOML encoding of c.
//
func (c *Config) Marshal() ([]byte, error) {
	return tomlSettings.Marshal(c)
}

func char(field, s string, empty bool) (rune, error) {
	if s == "" && empty {
		return 0, nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) {
		return 0, fmt.Errorf("Lexer.%s: expected a single character, got %q", field, s)
	}
	return r, nil
}

// Options returns the lexer options for l.
//
func (l *Lexer) Options() ([]lex.Option, error) {
	col, err := char("TableColSep", l.TableColSep, false)
	if err != nil {
		return nil, err
	}
	row, err := char("TableRowSep", l.TableRowSep, false)
	if err != nil {
		return nil, err
	}
	intro, err := char("TableIntro", l.TableIntro, true)
	if err != nil {
		return nil, err
	}
	return []lex.Option{
		lex.Punctuation(l.Punctuation...),
		lex.Spaces(l.Spaces),
		lex.Separators(l.Separators),
		lex.Tables(col, row, intro),
		lex.XML(l.XML),
	}, nil
}

// Handler returns a log handler honoring l.
//
func (l *Log) Handler() log.Handler {
	h := log.StderrHandler()
	if l.NoColor {
		h = log.StreamHandler(os.Stderr, false)
	}
	return log.LvlFilterHandler(log.LvlFromInt(l.Verbosity), h)
}
