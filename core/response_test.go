package core

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, value any) string {
	t.Helper()
	w := NewResponseWriter(0)
	require.NoError(t, w.WriteResponse(value))
	return string(w.Bytes())
}

func TestWriteResponseScalars(t *testing.T) {
	assert.Equal(t, "1", respond(t, true))
	assert.Equal(t, "0", respond(t, false))
	assert.Equal(t, "966", respond(t, int64(966)))
	assert.Equal(t, "-42", respond(t, int16(-42)))
	assert.Equal(t, "255", respond(t, uint8(255)))
	assert.Equal(t, "\"hello world\"", respond(t, "hello world"))
	assert.Equal(t, "1999.0", respond(t, Characters("1999.0")))
	assert.Equal(t, "", respond(t, nil))
	assert.Equal(t, "-113,\"Undefined header\"", respond(t, ErrUndefinedHeader))
}

func TestWriteResponseFloats(t *testing.T) {
	assert.Equal(t, "5.5", respond(t, 5.5))
	assert.Equal(t, "-0.25", respond(t, float32(-0.25)))
	assert.Equal(t, "9.91E+37", respond(t, math.NaN()))
	assert.Equal(t, "9.9E+37", respond(t, math.Inf(1)))
	assert.Equal(t, "-9.9E+37", respond(t, math.Inf(-1)))
}

func TestWriteResponseBlocks(t *testing.T) {
	assert.Equal(t, "#13abc", respond(t, []byte("abc")))
	assert.Equal(t, "#10", respond(t, []byte{}))
	assert.Equal(t, "#210"+strings.Repeat("x", 10), respond(t, []byte(strings.Repeat("x", 10))))
}

func TestWriteResponseLists(t *testing.T) {
	assert.Equal(t, "1,2,3", respond(t, []int{1, 2, 3}))
	assert.Equal(t, "\"a\",\"b\"", respond(t, []string{"a", "b"}))
	assert.Equal(t, "1,0", respond(t, []bool{true, false}))
	assert.Equal(t, "-113,\"Undefined header\",0", respond(t, []any{ErrUndefinedHeader, 0}))
}

func TestWriteResponseBounded(t *testing.T) {
	w := NewResponseWriter(4)
	require.NoError(t, w.WriteResponse(int32(1234)))
	assert.Equal(t, ErrTooMuchData, w.WriteResponse(int32(5)))

	w.Reset()
	assert.Equal(t, 0, w.Len())
	require.NoError(t, w.WriteResponse(int32(5678)))
	assert.Equal(t, "5678", string(w.Bytes()))
}

func TestWriteTerminator(t *testing.T) {
	w := NewResponseWriter(0)
	require.NoError(t, w.WriteResponse(Characters("OK")))
	require.NoError(t, w.WriteTerminator())
	assert.Equal(t, "OK\n", string(w.Bytes()))
}
