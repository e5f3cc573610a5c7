package enclog

import (
	"bytes"
	"io"

	"github.com/urso/logdispatch/backend/structlog"

	"github.com/elastic/go-structform"
	"github.com/elastic/go-structform/gotype"
)

type Output interface {
	io.Writer

	Begin()
	End()
}

// encoder buffers a record until it is complete. Records failing to encode
// never reach the Output.
type encoder struct {
	out     Output
	factory EncodingFactory
	visitor structform.Visitor
	buf     bytes.Buffer
}

type EncodingFactory func(out io.Writer) structform.Visitor

type writerOutput struct {
	io.Writer
	delim string
}

func New(out Output, enc EncodingFactory, fields []structlog.Field, opts ...gotype.FoldOption) (*structlog.Logger, error) {
	return structlog.New(&encoder{out: out, factory: enc}, fields, opts...)
}

func (e *encoder) Begin() {
	e.buf.Reset()
	e.out.Begin()
}

func (e *encoder) End() {
	defer e.buf.Reset()
	e.out.Write(e.buf.Bytes())
	e.out.End()
}

func (e *encoder) Reset() {
	e.buf.Reset()
	e.visitor = e.factory(&e.buf)
}

func (e *encoder) Visitor() structform.Visitor {
	if e.visitor == nil {
		e.Reset()
	}
	return e.visitor
}

// Writer creates an Output writing encoded records to out. delim is written
// after each record.
func Writer(out io.Writer, delim string) Output {
	return &writerOutput{
		Writer: out,
		delim:  delim,
	}
}

func (o *writerOutput) Begin() {}

func (o *writerOutput) End() {
	io.WriteString(o.Writer, o.delim)
}
