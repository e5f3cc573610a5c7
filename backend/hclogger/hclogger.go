// Package hclogger forwards log calls to a hclog.Logger.
//
// A leading string argument is used as the message. All other arguments are
// attached to the entry under the "args" key. The hclog.Logger should be
// configured with hclog.Trace, such that the backend does not filter.
package hclogger

import (
	"github.com/hashicorp/go-hclog"

	"github.com/urso/logdispatch/backend"
)

type Backend struct {
	log hclog.Logger
}

var _ backend.Backend = (*Backend)(nil)

func New(log hclog.Logger) *Backend {
	return &Backend{log: log}
}

func (b *Backend) Trace(args ...interface{}) { b.emit(hclog.Trace, args) }
func (b *Backend) Debug(args ...interface{}) { b.emit(hclog.Debug, args) }
func (b *Backend) Info(args ...interface{})  { b.emit(hclog.Info, args) }
func (b *Backend) Warn(args ...interface{})  { b.emit(hclog.Warn, args) }
func (b *Backend) Error(args ...interface{}) { b.emit(hclog.Error, args) }

// Fatal logs at hclog.Error. The entry is marked with fatal=true.
func (b *Backend) Fatal(args ...interface{}) {
	b.emit(hclog.Error, args, "fatal", true)
}

func (b *Backend) emit(lvl hclog.Level, args []interface{}, extra ...interface{}) {
	var msg string
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			msg = s
			args = args[1:]
		}
	}

	kv := extra
	if len(args) > 0 {
		kv = append(kv, "args", args)
	}
	b.log.Log(lvl, msg, kv...)
}
