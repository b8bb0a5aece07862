package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTGIKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := TGIKey(0x6534284A, 0x1, 0x2)
		b := TGIKey(0x6534284A, 0x1, 0x2)
		assert.Equal(t, a, b)
	})

	t.Run("distinguishes fields", func(t *testing.T) {
		base := TGIKey(1, 2, 3)
		assert.NotEqual(t, base, TGIKey(9, 2, 3))
		assert.NotEqual(t, base, TGIKey(1, 9, 3))
		assert.NotEqual(t, base, TGIKey(1, 2, 9))
	})

	t.Run("zero triple is stable", func(t *testing.T) {
		assert.Equal(t, TGIKey(0, 0, 0), TGIKey(0, 0, 0))
	})
}

func BenchmarkTGIKey(b *testing.B) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	typeID, group, instance := r.Uint32(), r.Uint32(), r.Uint32()
	b.ResetTimer()
	for b.Loop() {
		TGIKey(typeID, group, instance)
	}
}
