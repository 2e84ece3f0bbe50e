package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, _ = bb.Write([]byte(" world"))
	require.Equal(t, []byte("hello world"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		require.Equal(t, 100, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		_, _ = bb.Write([]byte("abc"))
		bb.Grow(20)
		require.Equal(t, 3+StreamBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("abc"), bb.Bytes())
	})

	t.Run("large requirement", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(StreamBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), StreamBufferDefaultSize*3)
	})
}

func TestByteBuffer_WriteConcatenates(t *testing.T) {
	bb := NewByteBuffer(2)
	for _, part := range [][]byte{{0x78, 0x9c}, {0x63}, nil, {0x00, 0x01}} {
		n, err := bb.Write(part)
		require.NoError(t, err)
		require.Equal(t, len(part), n)
	}

	require.Equal(t, []byte{0x78, 0x9c, 0x63, 0x00, 0x01}, bb.Bytes())
	require.Equal(t, 5, bb.Len())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("reuse resets data", func(t *testing.T) {
		p := NewByteBufferPool(16, 0)
		bb := p.Get()
		_, _ = bb.Write([]byte("stale"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("max threshold discards", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		bb := NewByteBuffer(64)
		p.Put(bb)
		require.Equal(t, 16, cap(p.Get().B))
	})

	t.Run("nil put", func(t *testing.T) {
		p := NewByteBufferPool(16, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})
}

func TestStreamBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			bb := GetStreamBuffer()
			defer PutStreamBuffer(bb)

			payload := bytes.Repeat([]byte{byte(id)}, 100)
			_, _ = bb.Write(payload)
			assert.Equal(t, payload, bb.Bytes())
		}(i)
	}
	wg.Wait()
}
