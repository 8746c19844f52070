package irc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPrivmsg_ShortMessage(t *testing.T) {
	lines := splitPrivmsg(CmdPrivmsg, "#x", "hello")
	require.Len(t, lines, 1)
	assert.Equal(t, "PRIVMSG #x :hello", lines[0])
}

func TestSplitPrivmsg_LongMessage(t *testing.T) {
	payload := strings.Repeat("A", 500)
	lines := splitPrivmsg(CmdPrivmsg, "#x", payload)
	require.Len(t, lines, 2)

	var rebuilt strings.Builder
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), lineBudget)
		idx := strings.Index(line, " :")
		require.GreaterOrEqual(t, idx, 0)
		rebuilt.WriteString(line[idx+2:])
	}
	assert.Equal(t, payload, rebuilt.String())
}

func TestSplitCTCP_NoMessage(t *testing.T) {
	lines := splitCTCP(CmdPrivmsg, "#x", "VERSION", "")
	require.Len(t, lines, 1)
	assert.Equal(t, "PRIVMSG #x :\x01VERSION\x01", lines[0])
}

func TestSplitCTCP_WithMessage(t *testing.T) {
	lines := splitCTCP(CmdNotice, "bob", "PING", "12345")
	require.Len(t, lines, 1)
	assert.Equal(t, "NOTICE bob :\x01PING 12345\x01", lines[0])
}

func TestSplitCTCP_LongMessage(t *testing.T) {
	message := strings.Repeat("B", 500)
	lines := splitCTCP(CmdPrivmsg, "#x", "ACTION", message)
	require.Greater(t, len(lines), 1)

	var rebuilt strings.Builder
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), lineBudget)
		require.True(t, strings.HasPrefix(line, "PRIVMSG #x :\x01"))
		require.True(t, strings.HasSuffix(line, "\x01"))
		inner := strings.TrimSuffix(strings.TrimPrefix(line, "PRIVMSG #x :\x01"), "\x01")
		rebuilt.WriteString(inner)
	}
	assert.Equal(t, "ACTION "+message, rebuilt.String())
}
