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

// Package log is a small leveled key/value logger.
//
// Messages are logged with a list of alternating keys and values:
//
//	log.Debug("unify", "left", a, "right", b)
//
// Records go through a Handler. The root logger writes records up to LvlInfo
// to stderr in terminal format.
//
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Lvl is a log level.
//
type Lvl int

// Log levels, from most to least severe.
//
const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var lvlNames = [...]string{"CRIT", "EROR", "WARN", "INFO", "DBUG", "TRCE"}

func (l Lvl) String() string {
	if l < 0 || int(l) >= len(lvlNames) {
		return "BAD(" + strconv.Itoa(int(l)) + ")"
	}
	return lvlNames[l]
}

// LvlFromInt converts a verbosity (0 = crit .. 5 = trace) to a Lvl, clamping
// out of range values.
//
func LvlFromInt(v int) Lvl {
	switch {
	case v < int(LvlCrit):
		return LvlCrit
	case v > int(LvlTrace):
		return LvlTrace
	}
	return Lvl(v)
}

// A Record is a single log event.
//
type Record struct {
	Time time.Time
	Lvl  Lvl
	Msg  string
	Ctx  []interface{}
	Call stack.Call
}

// A Handler writes records somewhere.
//
type Handler interface {
	Log(r *Record) error
}

// FuncHandler returns a Handler that calls fn.
//
func FuncHandler(fn func(r *Record) error) Handler {
	return funcHandler(fn)
}

type funcHandler func(r *Record) error

func (h funcHandler) Log(r *Record) error { return h(r) }

// DiscardHandler drops all records.
//
func DiscardHandler() Handler {
	return FuncHandler(func(*Record) error { return nil })
}

// LvlFilterHandler forwards records with a level up to max to h.
//
func LvlFilterHandler(max Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl > max {
			return nil
		}
		return h.Log(r)
	})
}

// StreamHandler writes records to w in terminal format. Writes are
// serialized.
//
func StreamHandler(w io.Writer, useColor bool) Handler {
	var mu sync.Mutex
	return FuncHandler(func(r *Record) error {
		b := formatTerminal(r, useColor)
		mu.Lock()
		defer mu.Unlock()
		_, err := w.Write(b)
		return err
	})
}

// StderrHandler returns a StreamHandler to stderr, with colors enabled if
// stderr is a terminal.
//
func StderrHandler() Handler {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
	if useColor {
		return StreamHandler(colorable.NewColorableStderr(), true)
	}
	return StreamHandler(os.Stderr, false)
}

var lvlColors = [...]color.Attribute{
	LvlCrit:  color.FgMagenta,
	LvlError: color.FgRed,
	LvlWarn:  color.FgYellow,
	LvlInfo:  color.FgGreen,
	LvlDebug: color.FgCyan,
	LvlTrace: color.FgBlue,
}

func formatTerminal(r *Record, useColor bool) []byte {
	var b bytes.Buffer
	lvl := r.Lvl.String()
	if useColor && r.Lvl >= 0 && int(r.Lvl) < len(lvlColors) {
		c := color.New(lvlColors[r.Lvl])
		c.EnableColor()
		lvl = c.Sprint(lvl)
	}
	fmt.Fprintf(&b, "%s[%s] %-30s", lvl, r.Time.Format("01-02|15:04:05.000"), r.Msg)
	for i := 0; i < len(r.Ctx); i += 2 {
		k, v := r.Ctx[i], interface{}(nil)
		if i+1 < len(r.Ctx) {
			v = r.Ctx[i+1]
		}
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%v=%s", k, formatValue(v))
	}
	fmt.Fprintf(&b, " caller=%v\n", r.Call)
	return b.Bytes()
}

func formatValue(v interface{}) string {
	var s string
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		s = v
	case error:
		s = v.Error()
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprintf("%+v", v)
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return strconv.Quote(s)
		}
	}
	return s
}

// Logger writes key/value pairs to a Handler.
//
type Logger interface {
	// New returns a child logger with ctx prepended to every record.
	New(ctx ...interface{}) Logger
	// SetHandler replaces the handler shared by the logger, its parent and
	// its children.
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type swapHandler struct {
	mu sync.RWMutex
	h  Handler
}

func (s *swapHandler) Log(r *Record) error {
	s.mu.RLock()
	h := s.h
	s.mu.RUnlock()
	return h.Log(r)
}

func (s *swapHandler) set(h Handler) {
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}) {
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  append(append(make([]interface{}, 0, len(l.ctx)+len(ctx)), l.ctx...), ctx...),
		Call: stack.Caller(2),
	}
	_ = l.h.Log(r)
}

func (l *logger) New(ctx ...interface{}) Logger {
	return &logger{ctx: append(append([]interface{}(nil), l.ctx...), ctx...), h: l.h}
}

func (l *logger) SetHandler(h Handler) { l.h.set(h) }

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(msg, LvlCrit, ctx) }

var root = &logger{h: &swapHandler{h: LvlFilterHandler(LvlInfo, StderrHandler())}}

// Root returns the root logger.
//
func Root() Logger {
	return root
}

// New returns a child of the root logger.
//
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

// NewWithHandler returns a logger, unrelated to the root logger, writing to h.
//
func NewWithHandler(h Handler, ctx ...interface{}) Logger {
	return &logger{ctx: ctx, h: &swapHandler{h: h}}
}

// Discard returns a logger that drops everything.
//
func Discard() Logger {
	return NewWithHandler(DiscardHandler())
}

// Convenience functions writing to the root logger.

func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx) }
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx) }
func Info(msg string, ctx ...interface{})  { root.write(msg, LvlInfo, ctx) }
func Warn(msg string, ctx ...interface{})  { root.write(msg, LvlWarn, ctx) }
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx) }
func Crit(msg string, ctx ...interface{})  { root.write(msg, LvlCrit, ctx) }
