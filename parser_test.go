package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Basic(t *testing.T) {
	m, err := ParseLine(":nick!user@host PRIVMSG #chan :hello world")
	require.NoError(t, err)
	assert.Equal(t, "nick", m.Prefix.Nick)
	assert.Equal(t, "user", m.Prefix.User)
	assert.Equal(t, "host", m.Prefix.Host)
	assert.Equal(t, CmdPrivmsg, m.Command)
	assert.Equal(t, []string{"#chan", "hello world"}, m.Args)
}

func TestParseLine_NoPrefix(t *testing.T) {
	m, err := ParseLine("PING :12345")
	require.NoError(t, err)
	assert.Equal(t, Prefix{}, m.Prefix)
	assert.Equal(t, CmdPing, m.Command)
	assert.Equal(t, []string{"12345"}, m.Args)
}

func TestParseLine_ColonFallback(t *testing.T) {
	// malformed server omits the space before ':'
	m, err := ParseLine("PRIVMSG #chan:hello there")
	require.NoError(t, err)
	assert.Equal(t, []string{"#chan", "hello there"}, m.Args)
}

func TestParseLine_Tags(t *testing.T) {
	m, err := ParseLine("@id=123;time=now :nick!u@h PRIVMSG #x :hi")
	require.NoError(t, err)
	v, ok := m.Tags.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "123", v)
	_, ok = m.Tags.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "nick", m.Prefix.Nick)
}

func TestParseLine_MalformedTags(t *testing.T) {
	_, err := ParseLine("@noclosingcolon PRIVMSG #x hi")
	require.Error(t, err)
	var ie *Error
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindProtocolError, ie.Kind)
}

func TestParsePrefix_BareServer(t *testing.T) {
	p := ParsePrefix("irc.server.net")
	assert.Equal(t, "irc.server.net", p.Nick)
	assert.Equal(t, "", p.User)
	assert.Equal(t, "", p.Host)
	assert.True(t, p.IsServer())
}

func TestPrefixRoundTrip(t *testing.T) {
	u := FromPrefix("nick!user@host")
	assert.Equal(t, "nick!user@host", u.String())
}

func TestMessage_IsNumeric(t *testing.T) {
	m := &Message{Command: "001"}
	assert.True(t, m.IsNumeric())
	m2 := &Message{Command: "PING"}
	assert.False(t, m2.IsNumeric())
}
