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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/db47h/hindley"
	"github.com/db47h/hindley/lang"
	"github.com/db47h/hindley/lex"
)

const (
	historyFile = ".hindley_history"
	promptMain  = "> "
	promptCont  = ". "
)

var replCommand = cli.Command{
	Action: repl,
	Name:   "repl",
	Usage:  "Start an interactive type checking session",
	Description: `
Each input is type checked in the environment left by the previous ones.
Commands:
	:env     print the bindings of the session
	:reset   start a new session
	:quit    exit`,
}

// completer completes the last word of line with language keywords and
// names in the environment of c.
func completer(c **hindley.Checker) liner.Completer {
	return func(line string) []string {
		i := strings.LastIndexAny(line, " \t(,[{") + 1
		prefix, word := line[:i], line[i:]
		if word == "" {
			return nil
		}
		words := lang.Keywords()
		for n := range (*c).Env().Scope {
			words = append(words, n)
		}
		var r []string
		for _, w := range words {
			if strings.HasPrefix(w, word) {
				r = append(r, prefix+w)
			}
		}
		sort.Strings(r)
		return r
	}
}

// incomplete reports whether err means that more input is needed.
func incomplete(err error) bool {
	var le *lex.Error
	return errors.As(err, &le) && strings.HasPrefix(le.Msg, "unclosed")
}

// readInput reads lines until they form a lexically complete input.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C aborts the current input.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if _, err := lex.LexString("repl", src, lang.LexConfig(lexOptions()...)); !incomplete(err) {
			return src, true
		}
	}
}

func repl(ctx *cli.Context) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	c := checker("repl")
	ln.SetCompleter(completer(&c))
	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Println()
			break
		}
		cmd := strings.TrimSpace(src)
		if cmd == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		switch cmd {
		case ":quit":
			return saveHistory(ln, histPath)
		case ":reset":
			c = checker("repl")
			continue
		case ":env":
			env := c.Env()
			for _, n := range env.Locals() {
				sc, _ := env.Lookup(n)
				fmt.Printf("%s: %s\n", n, sc)
			}
			continue
		}
		if strings.HasPrefix(cmd, ":") {
			fmt.Printf("unknown command %s\n", cmd)
			continue
		}
		// events of previous inputs are not reported again
		from := len(c.Session().Events())
		rep, err := c.Check("repl", src)
		if rep != nil {
			writeResults(os.Stdout, rep.Results)
			writeBreaks(os.Stdout, "repl", src, c.Session().Events()[from:], rep)
		}
		if err != nil {
			report(os.Stdout, "repl", src, err)
		}
	}
	return saveHistory(ln, histPath)
}

func saveHistory(ln *liner.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		// history is best effort
		return nil
	}
	defer f.Close()
	_, _ = ln.WriteHistory(f)
	return nil
}
