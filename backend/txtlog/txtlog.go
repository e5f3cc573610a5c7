package txtlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime/debug"
	"sync"

	structform "github.com/elastic/go-structform"
	"github.com/elastic/go-structform/gotype"
	"github.com/elastic/go-structform/json"
	"github.com/pkg/errors"

	"github.com/urso/logdispatch/backend"
)

// Output receives one formatted line per log call.
type Output interface {
	Write(lvl backend.Level, msg []byte)
}

type writerOutput struct {
	out    io.Writer
	errOut io.Writer
}

// Logger writes lines of the form "<Level>: <payload>". The payload is the
// JSON array of all arguments passed to the log call.
type Logger struct {
	mux sync.Mutex
	out Output
	buf bytes.Buffer

	visitor structform.Visitor
	types   *gotype.Iterator
	opts    []gotype.FoldOption
}

var _ backend.Backend = (*Logger)(nil)

// Writer creates an Output printing trace, debug and info messages to out.
// Warnings, errors and fatal messages are printed to errOut.
func Writer(out, errOut io.Writer) Output {
	return &writerOutput{out: out, errOut: errOut}
}

// Console creates a Logger printing to stdout and stderr.
func Console() *Logger {
	return New(Writer(os.Stdout, os.Stderr))
}

func New(out Output, opts ...gotype.FoldOption) *Logger {
	l := &Logger{out: out, opts: opts}
	l.reset()
	return l
}

func (l *Logger) Trace(args ...interface{}) { l.log(backend.Trace, args) }
func (l *Logger) Debug(args ...interface{}) { l.log(backend.Debug, args) }
func (l *Logger) Info(args ...interface{})  { l.log(backend.Info, args) }
func (l *Logger) Warn(args ...interface{})  { l.log(backend.Warn, args) }
func (l *Logger) Error(args ...interface{}) { l.log(backend.Error, args) }
func (l *Logger) Fatal(args ...interface{}) { l.log(backend.Fatal, args) }

func (l *Logger) log(lvl backend.Level, args []interface{}) {
	l.mux.Lock()
	defer l.mux.Unlock()

	defer l.buf.Reset()

	l.buf.WriteString(tag(lvl))
	l.buf.WriteString(": ")
	if err := l.serialize(args); err != nil {
		// drop the message, the encoder might be in an undefined state
		l.reset()
		return
	}
	l.buf.WriteRune('\n')

	if lvl == backend.Trace {
		l.buf.Write(debug.Stack())
	}

	l.out.Write(lvl, l.buf.Bytes())
}

func (l *Logger) serialize(args []interface{}) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Errorf("failed to serialize payload: %v", v)
		}
	}()

	payload, err := normalize(args)
	if err != nil {
		return err
	}
	return l.types.Fold(payload)
}

func (l *Logger) reset() {
	l.visitor = json.NewVisitor(&l.buf)
	l.types, _ = gotype.NewIterator(l.visitor, l.opts...)
}

// normalize copies args, replacing errors and fmt.Stringer values with their
// string representation. Values that can not be serialized are rejected.
func normalize(args []interface{}) ([]interface{}, error) {
	payload := make([]interface{}, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
			payload[i] = nil
		case error:
			payload[i] = v.Error()
		case fmt.Stringer:
			payload[i] = v.String()
		default:
			switch reflect.TypeOf(v).Kind() {
			case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
				return nil, errors.Errorf("can not serialize argument %v of type %T", i, v)
			}
			payload[i] = v
		}
	}
	return payload, nil
}

func tag(lvl backend.Level) string {
	switch lvl {
	case backend.Trace:
		return "Trace"
	case backend.Debug:
		return "Debug"
	case backend.Info:
		return "Info"
	case backend.Warn:
		return "Warn"
	case backend.Error:
		return "Error"
	case backend.Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("<%v>", lvl)
	}
}

func (wo *writerOutput) Write(lvl backend.Level, msg []byte) {
	out := wo.out
	if lvl >= backend.Warn {
		out = wo.errOut
	}

	out.Write(msg)

	// flush if output is buffered
	switch f := out.(type) {
	case interface{ Flush() error }:
		f.Flush()

	case interface{ Flush() bool }:
		f.Flush()

	case interface{ Flush() }:
		f.Flush()
	}
}
