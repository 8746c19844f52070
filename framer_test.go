package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkSocket is a minimal Socket that replays a fixed sequence of reads,
// one chunk per Receive call, then reports ErrWouldBlock.
type chunkSocket struct {
	chunks [][]byte
	i      int
}

func (c *chunkSocket) Send(p []byte) (int, error) { return len(p), nil }

func (c *chunkSocket) Receive(p []byte) (int, error) {
	if c.i >= len(c.chunks) {
		return 0, ErrWouldBlock
	}
	n := copy(p, c.chunks[c.i])
	c.i++
	return n, nil
}

func (c *chunkSocket) Alive() bool     { return true }
func (c *chunkSocket) Shutdown() error { return nil }

func TestFramer_SplitAcrossChunks(t *testing.T) {
	sock := &chunkSocket{chunks: [][]byte{
		[]byte("PING :abc\r\nPRIV"),
		[]byte("MSG #x :hi\r\n"),
	}}
	f := &framer{}

	lines, read, err := f.poll(sock)
	require.NoError(t, err)
	assert.True(t, read)
	require.Len(t, lines, 1)
	assert.Equal(t, "PING :abc", string(lines[0]))

	lines, read, err = f.poll(sock)
	require.NoError(t, err)
	assert.True(t, read)
	require.Len(t, lines, 1)
	assert.Equal(t, "PRIVMSG #x :hi", string(lines[0]))
}

func TestFramer_WouldBlockYieldsNoLines(t *testing.T) {
	sock := &chunkSocket{}
	f := &framer{}
	lines, read, err := f.poll(sock)
	require.NoError(t, err)
	assert.False(t, read)
	assert.Nil(t, lines)
}

func TestFramer_MultipleLinesOneChunk(t *testing.T) {
	sock := &chunkSocket{chunks: [][]byte{[]byte("A\r\nB\r\nC\r\n")}}
	f := &framer{}
	lines, read, err := f.poll(sock)
	require.NoError(t, err)
	assert.True(t, read)
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{string(lines[0]), string(lines[1]), string(lines[2])})
}

func TestFramer_PartialChunkStillCountsAsRead(t *testing.T) {
	sock := &chunkSocket{chunks: [][]byte{[]byte("PRIV")}}
	f := &framer{}
	lines, read, err := f.poll(sock)
	require.NoError(t, err)
	assert.True(t, read)
	assert.Nil(t, lines)
	assert.Equal(t, "PRIV", string(f.carry))
}

func TestFramer_Reset(t *testing.T) {
	f := &framer{carry: []byte("partial")}
	f.reset()
	assert.Nil(t, f.carry)
}

func TestFramer_OverflowCarryReadsNothing(t *testing.T) {
	sock := &chunkSocket{chunks: [][]byte{[]byte("should not be read")}}
	carry := make([]byte, maxLineBytes)
	f := &framer{carry: carry}

	lines, read, err := f.poll(sock)
	require.NoError(t, err)
	assert.False(t, read)
	assert.Nil(t, lines)
	assert.Equal(t, 0, sock.i) // Receive was never called
	assert.Equal(t, carry, f.carry)
}
