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

// Command hindley lexes, parses and type checks programs of the lang
// language, and replays inference traces.
//
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	"github.com/db47h/hindley"
	"github.com/db47h/hindley/config"
	"github.com/db47h/hindley/diag"
	"github.com/db47h/hindley/internal/log"
	"github.com/db47h/hindley/lex"
	"github.com/db47h/hindley/token"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: int(log.LvlInfo),
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
)

var app = newApp()

func newApp() *cli.App {
	a := cli.NewApp()
	a.Name = "hindley"
	a.Usage = "traced Hindley-Milner type checker"
	a.Version = "0.1.0"
	a.Flags = []cli.Flag{configFileFlag, verbosityFlag, noColorFlag}
	a.Commands = []cli.Command{
		lexCommand,
		parseCommand,
		inferCommand,
		traceCommand,
		replCommand,
		dumpConfigCommand,
	}
	a.Before = setup
	return a
}

func main() {
	if err := app.Run(os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

// cfg is the configuration loaded by setup.
var cfg = config.Default()

func setup(ctx *cli.Context) error {
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		c, err := config.Load(file)
		if err != nil {
			return err
		}
		cfg = c
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Log.NoColor = true
	}
	if cfg.Log.NoColor {
		color.NoColor = true
	}
	log.Root().SetHandler(cfg.Log.Handler())
	return nil
}

func lexOptions() []lex.Option {
	opts, err := cfg.Lexer.Options()
	if err != nil {
		// validated by config.Load
		panic(err)
	}
	return opts
}

func checker(name string) *hindley.Checker {
	return hindley.New(
		hindley.Logger(log.Root().New("file", name)),
		hindley.LexOptions(lexOptions()...),
	)
}

// readSource reads the file at path, or stdin if path is "-".
func readSource(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = ioutil.ReadAll(os.Stdin)
	} else {
		b, err = ioutil.ReadFile(path)
	}
	return string(b), err
}

// sourceFile returns a token.File for src with all its lines known.
func sourceFile(name, src string) *token.File {
	f := token.NewFile(name, src)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			f.AddLine(token.Pos(i + 1))
		}
	}
	return f
}

// report writes err to w, with a source snippet when err carries a position.
func report(w io.Writer, name, src string, err error) {
	if pos, ok := hindley.Position(err); ok {
		diag.Fprint(w, sourceFile(name, src), pos, hindley.Message(err))
		return
	}
	fmt.Fprintln(w, err)
}

// oneFile returns the single file argument of ctx and its contents.
func oneFile(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() != 1 {
		return "", "", fmt.Errorf("%s: expected exactly one file argument", ctx.Command.Name)
	}
	name := ctx.Args().First()
	src, err := readSource(name)
	return name, src, err
}
