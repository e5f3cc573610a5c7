package structlog

import (
	"reflect"

	"github.com/pkg/errors"
)

var errFoldPanic = errors.New("encoder panicked while folding the log record")

// checkFoldable rejects values the encoders can not represent, before any
// part of the value is written.
func checkFoldable(v interface{}) error {
	if v == nil {
		return nil
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return errors.Errorf("can not encode value of type %T", v)
	}
	return nil
}
