package logdispatch

import (
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/urso/logdispatch/backend"
	"github.com/urso/logdispatch/backend/txtlog"
)

func BenchmarkDispatch(b *testing.B) {
	messages := []string{
		makeASCIIMessage(5),
		makeASCIIMessage(100),
		makeASCIIMessage(1000),
	}

	backends := map[string]backend.Backend{
		"nop":  backend.Nop{},
		"text": txtlog.New(txtlog.Writer(io.Discard, io.Discard)),
	}

	for _, msg := range messages {
		msg := msg
		b.Run(fmt.Sprintf("msg=%v", len(msg)), func(b *testing.B) {
			for name, be := range backends {
				b.Run(name, func(b *testing.B) {
					logger := New(WithDiagnostics(hclog.NewNullLogger()))
					logger.SetLogger(DefaultContext, be)

					b.Run("enabled", func(b *testing.B) {
						logger.SetLevel(All)
						for i := 0; i < b.N; i++ {
							logger.Info(msg)
						}
					})

					b.Run("disabled", func(b *testing.B) {
						logger.SetLevel(Off)
						for i := 0; i < b.N; i++ {
							logger.Info(msg)
						}
					})

					b.Run("post", func(b *testing.B) {
						logger.SetLevel(All)
						for i := 0; i < b.N; i++ {
							logger.Post("info", msg)
						}
					})
				})
			}
		})
	}
}

func makeASCIIMessage(len int) string {
	gen := rngASCIIString(rngIntConst(len))
	return gen(rand.New(rand.NewSource(0)))
}

func rngIntConst(i int) func(*rand.Rand) int {
	return func(_ *rand.Rand) int { return i }
}

func rngASCIIString(len func(*rand.Rand) int) func(*rand.Rand) string {
	return func(rng *rand.Rand) string {
		L := len(rng)
		buf := make([]byte, L)
		for i := range buf {
			buf[i] = byte(rng.Intn('Z'-'0') + '0')
		}
		return string(buf)
	}
}
