package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorQueueFIFO(t *testing.T) {
	q := NewStaticErrorQueue(4)
	assert.Equal(t, 0, q.Count())

	q.Push(ErrUndefinedHeader)
	q.Push(ErrDataOutOfRange)
	assert.Equal(t, 2, q.Count())

	err, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, ErrUndefinedHeader, err)
	err, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, ErrDataOutOfRange, err)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestErrorQueueOverflow(t *testing.T) {
	q := NewStaticErrorQueue(2)
	q.Push(ErrUndefinedHeader)
	q.Push(ErrSyntaxError)
	// The queue is full: the newest entry is replaced, the oldest stays.
	q.Push(ErrDataOutOfRange)
	assert.Equal(t, 2, q.Count())

	err, _ := q.Pop()
	assert.Equal(t, ErrUndefinedHeader, err)
	err, _ = q.Pop()
	assert.Equal(t, ErrQueueOverflow, err)
}

func TestErrorQueueWrapAround(t *testing.T) {
	q := NewStaticErrorQueue(2)
	q.Push(ErrUndefinedHeader)
	q.Pop()
	q.Push(ErrSyntaxError)
	q.Push(ErrDataOutOfRange)

	err, _ := q.Pop()
	assert.Equal(t, ErrSyntaxError, err)
	err, _ = q.Pop()
	assert.Equal(t, ErrDataOutOfRange, err)
}

func TestErrorQueueClear(t *testing.T) {
	q := NewStaticErrorQueue(2)
	q.Push(ErrUndefinedHeader)
	q.Clear()
	assert.Equal(t, 0, q.Count())
	_, ok := q.Pop()
	assert.False(t, ok)
}
