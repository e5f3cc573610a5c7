package structlog

import (
	"sync"
	"time"

	structform "github.com/elastic/go-structform"
	"github.com/elastic/go-structform/gotype"

	"github.com/urso/logdispatch/backend"
)

// Logger writes one structured record per log call to its Output:
//
//	{"log.level": "info", <fields...>, "message": [args...]}
type Logger struct {
	out      Output
	fields   []Field
	types    *gotype.Iterator
	typeOpts []gotype.FoldOption
	unfolder structform.Visitor
	mux      sync.Mutex
}

type Output interface {
	Visitor() structform.Visitor
	Reset()

	Begin()
	End()
}

// Field adds a key to every record. Fn is evaluated per log call.
type Field struct {
	Key string
	Fn  func() interface{}
}

var _ backend.Backend = (*Logger)(nil)

func New(out Output, fields []Field, opts ...gotype.FoldOption) (*Logger, error) {
	unfolder := out.Visitor()
	types, err := gotype.NewIterator(unfolder, opts...)
	if err != nil {
		return nil, err
	}

	return &Logger{
		out:      out,
		fields:   fields,
		types:    types,
		typeOpts: opts,
		unfolder: unfolder,
	}, nil
}

// Static creates a field with a constant value.
func Static(key string, value interface{}) Field {
	return Field{Key: key, Fn: func() interface{} { return value }}
}

// DynTimestamp adds the current time, formatted using layout, as @timestamp.
func DynTimestamp(layout string) Field {
	return Field{Key: "@timestamp", Fn: func() interface{} {
		return time.Now().Format(layout)
	}}
}

func (l *Logger) reset() {
	l.out.Reset()
	unfolder := l.out.Visitor()
	l.unfolder = unfolder
	l.types, _ = gotype.NewIterator(unfolder, l.typeOpts...)
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

	l.out.Begin()
	if err := l.process(lvl, args); err != nil {
		l.reset()
		return
	}
	l.out.End()
}

func (l *Logger) process(lvl backend.Level, args []interface{}) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errFoldPanic
		}
	}()

	v := l.unfolder
	if err := v.OnObjectStart(-1, structform.AnyType); err != nil {
		return err
	}

	if err := v.OnKey("log.level"); err != nil {
		return err
	}
	if err := v.OnString(lvl.String()); err != nil {
		return err
	}

	for _, field := range l.fields {
		if err := v.OnKey(field.Key); err != nil {
			return err
		}
		if err := l.types.Fold(field.Fn()); err != nil {
			return err
		}
	}

	if err := v.OnKey("message"); err != nil {
		return err
	}
	if err := l.onPayload(args); err != nil {
		return err
	}

	return v.OnObjectFinished()
}

func (l *Logger) onPayload(args []interface{}) error {
	for _, arg := range args {
		if err := checkFoldable(arg); err != nil {
			return err
		}
	}

	v := l.unfolder
	if err := v.OnArrayStart(len(args), structform.AnyType); err != nil {
		return err
	}

	for _, arg := range args {
		var err error
		switch val := arg.(type) {
		case error:
			err = v.OnString(val.Error())
		default:
			err = l.types.Fold(arg)
		}
		if err != nil {
			return err
		}
	}

	return v.OnArrayFinished()
}
