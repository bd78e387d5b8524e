package bytestream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorBasics(t *testing.T) {
	c := New([]byte("GET / HTTP/1.1\r\n"))
	require.Equal(t, 16, c.Available())
	require.False(t, c.IsEOS())
	require.Equal(t, byte('G'), c.Peek())

	c.Mark()
	assert.Equal(t, byte('G'), c.Next())
	assert.Equal(t, byte('E'), c.Next())
	assert.Equal(t, byte('T'), c.Next())
	assert.Equal(t, "GET", string(c.Slice()))
	assert.Equal(t, byte('T'), c.Byte())

	c.Replay()
	assert.Equal(t, byte('T'), c.Peek())
	assert.Equal(t, 3, c.Index())
}

func TestCursorJumpAndRewind(t *testing.T) {
	c := New([]byte("HTTP/1.1 200 OK"))
	c.Jump(4)
	assert.Equal(t, byte('P'), c.Byte())
	assert.Equal(t, 4, c.Index())

	c.RewindTo(0)
	assert.Equal(t, 0, c.Index())
}

func TestCursorStartsWith(t *testing.T) {
	c := New([]byte("HTTP/1.1 "))
	assert.True(t, c.StartsWith([]byte("HTTP/1.1 ")))
	assert.False(t, c.StartsWith([]byte("HTTP/2.0 ")))
	assert.False(t, c.StartsWith([]byte("HTTP/1.1 EXTRA")))
}

func TestCursorSliceIgnore(t *testing.T) {
	c := New([]byte("value\r"))
	c.Mark()
	for !c.IsEOS() {
		c.Next()
	}
	assert.Equal(t, "value", string(c.SliceIgnore()))
	assert.Equal(t, "value\r", string(c.Slice()))
}

func TestCursorRebind(t *testing.T) {
	c := New([]byte("abc"))
	c.Next()
	c.Mark()
	c.Rebind([]byte("xyz"))
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.MarkIndex())
	assert.Equal(t, byte('x'), c.Peek())
}

func TestCursorIndexByte(t *testing.T) {
	c := New([]byte("abc:def"))
	assert.Equal(t, 3, c.IndexByte(':'))
	assert.Equal(t, -1, c.IndexByte('z'))
	c.Jump(4)
	assert.Equal(t, -1, c.IndexByte(':'))
}
