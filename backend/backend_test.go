package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]struct {
		name  string
		level Level
		ok    bool
	}{
		"all":       {name: "all", level: All, ok: true},
		"trace":     {name: "trace", level: Trace, ok: true},
		"debug":     {name: "debug", level: Debug, ok: true},
		"info":      {name: "info", level: Info, ok: true},
		"warn":      {name: "warn", level: Warn, ok: true},
		"error":     {name: "error", level: Error, ok: true},
		"fatal":     {name: "fatal", level: Fatal, ok: true},
		"off":       {name: "off", level: Off, ok: true},
		"uppercase": {name: "INFO", ok: false},
		"unknown":   {name: "bogus", ok: false},
		"empty":     {name: "", ok: false},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			lvl, ok := ParseLevel(test.name)
			require.Equal(t, test.ok, ok)
			if ok {
				assert.Equal(t, test.level, lvl)
				assert.Equal(t, test.name, lvl.String())
			}
		})
	}
}

func TestLevelOrder(t *testing.T) {
	levels := Levels()
	require.Len(t, levels, 8)
	for i, lvl := range levels {
		assert.Equal(t, Level(i), lvl)
		assert.True(t, lvl.Valid())
	}

	assert.False(t, Level(8).Valid())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestLevelEnables(t *testing.T) {
	for _, threshold := range Levels() {
		for _, lvl := range Levels() {
			assert.Equal(t, threshold <= lvl, threshold.Enables(lvl),
				"threshold=%v level=%v", threshold, lvl)
		}
	}
}

func TestCall(t *testing.T) {
	type call struct {
		lvl  Level
		args []interface{}
	}

	var calls []call
	b := Func(func(lvl Level, args []interface{}) {
		calls = append(calls, call{lvl, args})
	})

	for _, lvl := range []Level{Trace, Debug, Info, Warn, Error, Fatal} {
		require.True(t, Call(b, lvl, lvl.String(), 1))
	}
	require.False(t, Call(b, All, "x"))
	require.False(t, Call(b, Off, "x"))
	require.False(t, Call(b, Level(99), "x"))

	require.Len(t, calls, 6)
	for i, c := range calls {
		lvl := Level(i + 1)
		assert.Equal(t, lvl, c.lvl)
		assert.Equal(t, []interface{}{lvl.String(), 1}, c.args)
	}
}

func TestNopPartialBackend(t *testing.T) {
	var got []interface{}
	b := &errorsOnly{fn: func(args []interface{}) { got = args }}

	for _, lvl := range []Level{Trace, Debug, Info, Warn, Fatal} {
		Call(b, lvl, "dropped")
	}
	assert.Nil(t, got)

	Call(b, Error, "kept")
	assert.Equal(t, []interface{}{"kept"}, got)
}

type errorsOnly struct {
	Nop
	fn func([]interface{})
}

func (e *errorsOnly) Error(args ...interface{}) { e.fn(args) }
