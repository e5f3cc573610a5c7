package backend

// Backend is the collaborator performing the actual output. A Backend does no
// filtering of its own, every call is expected to produce output.
type Backend interface {
	Trace(args ...interface{})
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
}

type Level uint8

const (
	All Level = iota
	Trace
	Debug
	Info
	Warn
	Error
	Fatal
	Off
)

var levelNames = [...]string{
	All:   "all",
	Trace: "trace",
	Debug: "debug",
	Info:  "info",
	Warn:  "warn",
	Error: "error",
	Fatal: "fatal",
	Off:   "off",
}

// Nop implements Backend by dropping all messages. Embed Nop in types that
// only want to handle a subset of the levels.
type Nop struct{}

type funcBackend func(Level, []interface{})

var _ Backend = Nop{}
var _ Backend = funcBackend(nil)

// Levels returns all levels ordered from most verbose to most quiet.
func Levels() []Level {
	return []Level{All, Trace, Debug, Info, Warn, Error, Fatal, Off}
}

// ParseLevel looks up a level by its exact, lowercase name.
func ParseLevel(name string) (Level, bool) {
	for i, n := range levelNames {
		if n == name {
			return Level(i), true
		}
	}
	return 0, false
}

func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "unknown"
}

func (l Level) Valid() bool {
	return l <= Off
}

// Enables reports whether a threshold of l lets messages at lvl pass.
func (l Level) Enables(lvl Level) bool {
	return l <= lvl
}

// Call forwards args to the method of b matching lvl. It returns false if lvl
// has no matching method (All, Off, or unknown levels).
func Call(b Backend, lvl Level, args ...interface{}) bool {
	switch lvl {
	case Trace:
		b.Trace(args...)
	case Debug:
		b.Debug(args...)
	case Info:
		b.Info(args...)
	case Warn:
		b.Warn(args...)
	case Error:
		b.Error(args...)
	case Fatal:
		b.Fatal(args...)
	default:
		return false
	}
	return true
}

// Func creates a Backend that reports every call to fn.
func Func(fn func(lvl Level, args []interface{})) Backend {
	return funcBackend(fn)
}

func (Nop) Trace(...interface{}) {}
func (Nop) Debug(...interface{}) {}
func (Nop) Info(...interface{})  {}
func (Nop) Warn(...interface{})  {}
func (Nop) Error(...interface{}) {}
func (Nop) Fatal(...interface{}) {}

func (fn funcBackend) Trace(args ...interface{}) { fn(Trace, args) }
func (fn funcBackend) Debug(args ...interface{}) { fn(Debug, args) }
func (fn funcBackend) Info(args ...interface{})  { fn(Info, args) }
func (fn funcBackend) Warn(args ...interface{})  { fn(Warn, args) }
func (fn funcBackend) Error(args ...interface{}) { fn(Error, args) }
func (fn funcBackend) Fatal(args ...interface{}) { fn(Fatal, args) }
