package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestB2SRoundTrip(t *testing.T) {
	assert.Equal(t, "SYST:ERR?", B2S([]byte("SYST:ERR?")))
	assert.Equal(t, []byte("SYST:ERR?"), S2B("SYST:ERR?"))
	assert.Equal(t, "", B2S(nil))
}

func TestLockFreeCircularBuffer(t *testing.T) {
	cb := NewLockFreeCircularBuffer[int](4)
	assert.Nil(t, cb.GetAll())

	for i := 1; i <= 6; i++ {
		cb.Add(i)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, cb.GetAll())
}

func BenchmarkStringToBytes(b *testing.B) {
	str := "test string for benchmark"

	b.Run("Native", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = []byte(str)
		}
	})

	b.Run("ZeroCopy", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = S2B(str)
		}
	})
}
