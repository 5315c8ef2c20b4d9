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
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/db47h/hindley"
	"github.com/db47h/hindley/ast"
	"github.com/db47h/hindley/cst"
	"github.com/db47h/hindley/diag"
	"github.com/db47h/hindley/grammar"
	"github.com/db47h/hindley/infer"
	"github.com/db47h/hindley/lang"
	"github.com/db47h/hindley/lex"
	"github.com/db47h/hindley/trace"
)

var (
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "Dump the node store",
	}
	metaFlag = cli.BoolFlag{
		Name:  "meta",
		Usage: "Print the node metadata table",
	}
	stepFlag = cli.IntFlag{
		Name:  "step",
		Usage: "Checkpoint to display, negative values count from the end",
		Value: -1,
	}
	allFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "List all checkpoints",
	}

	lexCommand = cli.Command{
		Action:    lexFile,
		Name:      "lex",
		Usage:     "Print the concrete syntax tree of a file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{dumpFlag},
	}
	parseCommand = cli.Command{
		Action:    parseFile,
		Name:      "parse",
		Usage:     "Print the syntax tree of a file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{metaFlag},
	}
	inferCommand = cli.Command{
		Action:    inferFiles,
		Name:      "infer",
		Usage:     "Type check files",
		ArgsUsage: "<file>...",
		Description: `
The infer command type checks each file in a separate session and prints the
type of every top-level binding. Files are checked concurrently.`,
	}
	traceCommand = cli.Command{
		Action:    traceFile,
		Name:      "trace",
		Usage:     "Replay the inference trace of a file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{stepFlag, allFlag},
	}
	dumpConfigCommand = cli.Command{
		Action: dumpConfig,
		Name:   "dumpconfig",
		Usage:  "Show configuration values",
	}
)

func lexFile(ctx *cli.Context) error {
	name, src, err := oneFile(ctx)
	if err != nil {
		return err
	}
	s, err := lex.LexString(name, src, lang.LexConfig(lexOptions()...))
	if err != nil {
		report(os.Stderr, name, src, err)
		return cli.NewExitError("", 1)
	}
	if ctx.Bool(dumpFlag.Name) {
		c := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
		c.Fdump(os.Stdout, s.Nodes)
		return nil
	}
	for _, id := range s.Roots {
		fmt.Println(s.String(id))
	}
	return nil
}

func parseFile(ctx *cli.Context) error {
	name, src, err := oneFile(ctx)
	if err != nil {
		return err
	}
	p, err := lang.Parse(name, src, lang.LexConfig(lexOptions()...))
	if err != nil {
		report(os.Stderr, name, src, err)
		return cli.NewExitError("", 1)
	}
	for _, st := range p.Stmts {
		fmt.Println(ast.StmtString(st))
	}
	if ctx.Bool(metaFlag.Name) {
		writeMeta(os.Stdout, p.Store, p.Meta)
	}
	return nil
}

// writeMeta renders the metadata of the atoms of s, in source order.
func writeMeta(w io.Writer, s *cst.Store, m grammar.Metadata) {
	ids := make([]string, 0, len(m))
	for id := range m {
		if _, ok := s.Get(id).(*cst.Id); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return s.Pos(ids[i]) < s.Pos(ids[j]) })

	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Position", "Atom", "Role", "Placeholder"})
	t.SetAutoFormatHeaders(false)
	for _, id := range ids {
		pos := s.Position(id)
		t.Append([]string{
			fmt.Sprintf("%d:%d", pos.Line, pos.Column),
			s.String(id),
			m[id].Role,
			m[id].Placeholder,
		})
	}
	t.Render()
}

// writeResults prints the bindings introduced by each result, or its type
// for expression statements.
func writeResults(w io.Writer, rs []hindley.Result) {
	for _, r := range rs {
		l, ok := r.Stmt.(*ast.Let)
		if !ok {
			fmt.Fprintf(w, "%s: %s\n", ast.StmtString(r.Stmt), r.Type)
			continue
		}
		for _, n := range ast.PatVars(l.Pat) {
			if sc, ok := r.Scope.Lookup(n); ok {
				fmt.Fprintf(w, "%s: %s\n", n, sc)
			}
		}
	}
}

// writeBreaks reports the soft errors recorded in events.
func writeBreaks(w io.Writer, name, src string, events []infer.Event, rep *hindley.Report) {
	f := sourceFile(name, src)
	for _, e := range events {
		if e.Kind == infer.StackBreak && e.Message != "" {
			diag.Fprint(w, f, rep.Position(e.Src), e.Message)
		}
	}
}

func inferFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("infer: no files")
	}
	files := ctx.Args()
	out := make([]bytes.Buffer, len(files))
	var g errgroup.Group
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			w := &out[i]
			src, err := readSource(name)
			if err != nil {
				fmt.Fprintln(w, err)
				return err
			}
			c := checker(name)
			rep, err := c.Check(name, src)
			if rep != nil {
				writeResults(w, rep.Results)
				writeBreaks(w, name, src, c.Session().Events(), rep)
			}
			if err != nil {
				report(w, name, src, err)
				return fmt.Errorf("%s: type check failed", name)
			}
			return nil
		})
	}
	err := g.Wait()
	for i := range out {
		if len(files) > 1 {
			fmt.Printf("== %s\n", files[i])
		}
		_, _ = out[i].WriteTo(os.Stdout)
	}
	return err
}

func traceFile(ctx *cli.Context) error {
	name, src, err := oneFile(ctx)
	if err != nil {
		return err
	}
	c := checker(name)
	rep, err := c.Check(name, src)
	if rep == nil {
		report(os.Stderr, name, src, err)
		return cli.NewExitError("", 1)
	}
	if err != nil {
		report(os.Stderr, name, src, err)
	}
	st, err := trace.NewStepper(c.Session().Events(), cfg.Trace.CacheSize)
	if err != nil {
		return err
	}
	if ctx.Bool(allFlag.Name) {
		writeSteps(os.Stdout, st, rep)
		return nil
	}
	step := ctx.Int(stepFlag.Name)
	if step < 0 {
		step += st.Steps()
	}
	v, ok := st.View(step)
	if !ok {
		return fmt.Errorf("trace: step %d out of range [0, %d)", ctx.Int(stepFlag.Name), st.Steps())
	}
	writeView(os.Stdout, sourceFile(name, src), rep, v)
	return nil
}

func dumpConfig(ctx *cli.Context) error {
	b, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}
