// Package trace is the driver's logging seam. A Connection owns one Tracer;
// the nil tracer keeps the hot path free of formatting work.
package trace

import (
	"fmt"
	"io"
	"time"
)

type Tracer interface {
	Close() error
	Print(vs ...interface{})
	Printf(f string, s ...interface{})
}

type traceWriter struct {
	w      io.WriteCloser
	prefix string
}

// NewTraceWriter returns a Tracer that timestamps every line. prefix is
// written after the timestamp on each line; pass the connection id so
// interleaved sessions stay distinguishable.
func NewTraceWriter(w io.WriteCloser, prefix string) *traceWriter {
	return &traceWriter{w: w, prefix: prefix}
}

func (t *traceWriter) Close() (err error) {
	if t.w != nil {
		err = t.w.Close()
	}
	return
}

func (t traceWriter) Print(vs ...interface{}) {
	if t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "%s %s: ", time.Now().Format("2006-01-02T15:04:05.0000"), t.prefix)
	for _, v := range vs {
		fmt.Fprintf(t.w, "%v", v)
	}
	t.w.Write([]byte{'\n'})
}

func (t traceWriter) Printf(f string, s ...interface{}) {
	if t.w != nil {
		t.Print(fmt.Sprintf(f, s...))
	}
}

type nilTracer struct{}

func NilTracer() *nilTracer                         { return &nilTracer{} }
func (nilTracer) Close() error                      { return nil }
func (nilTracer) Print(vs ...interface{})           {}
func (nilTracer) Printf(f string, s ...interface{}) {}
