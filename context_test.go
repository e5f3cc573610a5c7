package logdispatch

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInContext(t *testing.T) {
	t.Run("from nil context return empty logger", func(t *testing.T) {
		var ctx context.Context
		log := FromContext(ctx)
		require.NotNil(t, log)
		assert.False(t, log.HasContext(DefaultContext))
	})

	t.Run("from empty context return empty logger", func(t *testing.T) {
		log := FromContext(context.Background())
		require.NotNil(t, log)
		assert.False(t, log.HasContext(DefaultContext))
		assert.NotPanics(t, func() { log.Error("dropped") })
	})

	t.Run("context with a logger return that logger", func(t *testing.T) {
		log := New(WithDiagnostics(hclog.NewNullLogger()))
		ctx := WithContext(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("changes to the fallback logger are not shared", func(t *testing.T) {
		rec := &recorder{}

		fallback := FromContext(context.Background())
		require.NoError(t, fallback.SetLogger(DefaultContext, rec.backend()))
		require.NoError(t, fallback.SetLogger("other", rec.backend()))
		require.NoError(t, fallback.SetContext("other"))
		require.True(t, fallback.SetLogLevel("off"))

		for _, ctx := range []context.Context{nil, context.Background()} {
			log := FromContext(ctx)
			assert.NotSame(t, fallback, log)
			assert.Equal(t, DefaultContext, log.CurrentContext())
			assert.False(t, log.HasContext(DefaultContext))
			assert.False(t, log.HasContext("other"))

			lvl, ok := log.LogLevel()
			require.True(t, ok)
			assert.Equal(t, All, lvl)

			log.Info("x")
		}
		assert.Empty(t, rec.calls)
	})
}
