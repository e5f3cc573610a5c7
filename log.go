// Package logdispatch routes leveled log calls to pluggable backends.
//
// A Logger keeps one backend and one minimum level per named context. Exactly
// one context is active at a time. Calls like Info or Error check the active
// context's level and forward the unchanged arguments to the backend
// registered for the active context. Missing backends or thresholds silently
// drop the message.
package logdispatch

import (
	"errors"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/urso/logdispatch/backend"
	"github.com/urso/logdispatch/backend/txtlog"
)

// DefaultContext is the context active on a new Logger.
const DefaultContext = "default"

type Logger struct {
	mu      sync.RWMutex
	context string
	levels  map[string]Level
	loggers map[string]backend.Backend

	diag hclog.Logger
}

type Option func(*Logger)

type Level = backend.Level

const (
	All   Level = backend.All
	Trace Level = backend.Trace
	Debug Level = backend.Debug
	Info  Level = backend.Info
	Warn  Level = backend.Warn
	Error Level = backend.Error
	Fatal Level = backend.Fatal
	Off   Level = backend.Off
)

var (
	// ErrInvalidContext is returned if an empty context name is passed.
	ErrInvalidContext = errors.New("context must not be empty")

	// ErrNilBackend is returned if SetLogger is called without a backend.
	ErrNilBackend = errors.New("backend must not be nil")
)

// WithDiagnostics sets the logger used to report misuse, like unknown level
// names. Diagnostics go to stderr by default.
func WithDiagnostics(log hclog.Logger) Option {
	return func(l *Logger) {
		if log != nil {
			l.diag = log
		}
	}
}

// WithContextName sets the initially active context.
func WithContextName(name string) Option {
	return func(l *Logger) {
		if name != "" {
			l.context = name
		}
	}
}

// New creates a Logger without any backends. The level table starts with a
// single entry: the initial context (DefaultContext unless WithContextName is
// given) is set to All.
func New(opts ...Option) *Logger {
	l := &Logger{
		context: DefaultContext,
		levels:  map[string]Level{},
		loggers: map[string]backend.Backend{},
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.diag == nil {
		l.diag = hclog.New(&hclog.LoggerOptions{
			Name:   "logdispatch",
			Level:  hclog.Warn,
			Output: os.Stderr,
		})
	}

	l.levels[l.context] = All
	return l
}

// NewDefault creates a Logger with the console backend registered for
// DefaultContext.
func NewDefault(opts ...Option) *Logger {
	l := New(opts...)
	l.SetLogger(DefaultContext, txtlog.Console())
	return l
}

func (l *Logger) SetContext(name string) error {
	if name == "" {
		return ErrInvalidContext
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.context = name
	return nil
}

func (l *Logger) CurrentContext() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.context
}

// SetLogger registers b for the given context, replacing any backend
// registered before. A context without a level gets All.
func (l *Logger) SetLogger(name string, b backend.Backend) error {
	if name == "" {
		return ErrInvalidContext
	}
	if b == nil {
		return ErrNilBackend
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loggers[name] = b
	if _, exists := l.levels[name]; !exists {
		l.levels[name] = All
	}
	return nil
}

// RemoveLogger unregisters the backend of a context. The context's level is
// kept, so it applies again if a new backend gets registered.
func (l *Logger) RemoveLogger(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.loggers, name)
}

func (l *Logger) GetLogger(name string) backend.Backend {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loggers[name]
}

// HasContext reports whether a backend is registered for the context.
func (l *Logger) HasContext(name string) bool {
	return l.GetLogger(name) != nil
}

// SetLogLevel sets the level of the active context by name. Unknown names are
// reported to the diagnostics logger and false is returned.
func (l *Logger) SetLogLevel(name string) bool {
	lvl, ok := backend.ParseLevel(name)
	if !ok {
		l.diag.Warn("setLogLevel - unknown log level", "level", name)
		return false
	}
	return l.SetLevel(lvl)
}

func (l *Logger) SetLevel(lvl Level) bool {
	if !lvl.Valid() {
		l.diag.Warn("setLevel - unknown log level", "level", uint8(lvl))
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels[l.context] = lvl
	return true
}

// LogLevel returns the level of the active context. ok is false if the
// active context has no level.
func (l *Logger) LogLevel() (lvl Level, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	lvl, ok = l.levels[l.context]
	return lvl, ok
}

func (l *Logger) IsLevelEnabled(name string) bool {
	lvl, ok := backend.ParseLevel(name)
	if !ok {
		l.diag.Warn("isLevelEnabled - unknown log level", "level", name)
		return false
	}
	return l.IsEnabled(lvl)
}

func (l *Logger) IsEnabled(lvl Level) bool {
	threshold, ok := l.LogLevel()
	return ok && threshold.Enables(lvl)
}

func (l *Logger) Trace(args ...interface{}) { l.log(Trace, args) }
func (l *Logger) Debug(args ...interface{}) { l.log(Debug, args) }
func (l *Logger) Info(args ...interface{})  { l.log(Info, args) }
func (l *Logger) Warn(args ...interface{})  { l.log(Warn, args) }
func (l *Logger) Error(args ...interface{}) { l.log(Error, args) }
func (l *Logger) Fatal(args ...interface{}) { l.log(Fatal, args) }

// Post dispatches args at the level given by name. Unknown names are reported
// to the diagnostics logger and false is returned.
func (l *Logger) Post(name string, args ...interface{}) bool {
	lvl, ok := backend.ParseLevel(name)
	if !ok {
		l.diag.Warn("post - unknown log level", "level", name)
		return false
	}

	l.log(lvl, args)
	return true
}

func (l *Logger) log(lvl Level, args []interface{}) {
	b := l.active(lvl)
	if b == nil {
		return
	}

	// the lock is not held, backends are allowed to call back into l.
	backend.Call(b, lvl, args...)
}

// active returns the backend of the active context if lvl passes the
// context's threshold.
func (l *Logger) active(lvl Level) backend.Backend {
	l.mu.RLock()
	defer l.mu.RUnlock()

	threshold, ok := l.levels[l.context]
	if !ok || !threshold.Enables(lvl) {
		return nil
	}
	return l.loggers[l.context]
}
