package irc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	irc "github.com/michael-fadely/libdirc"
	"github.com/michael-fadely/libdirc/irctest"
)

func connectedEngine(t *testing.T) (*irc.Engine, *irctest.Server) {
	t.Helper()
	sock := irctest.NewServer()
	e := irc.New("Neko", "neko", "Neko")
	require.NoError(t, e.Connect(sock, ""))
	return e, sock
}

func TestEngine_PingAnswer(t *testing.T) {
	e, sock := connectedEngine(t)
	sock.WriteString("PING :12345")
	assert.True(t, e.Poll())
	assert.Contains(t, sock.Sent(), "PONG :12345\r\n")
}

func TestEngine_SelfJoinCreatesChannel(t *testing.T) {
	e, sock := connectedEngine(t)

	var joined string
	e.Events().On(irc.EvSuccessfulJoin, func(ev *irc.Event) { joined = ev.Channel })

	sock.WriteString(":Neko!u@h JOIN #test")
	require.True(t, e.Poll())

	assert.Equal(t, "#test", joined)
	c, ok := e.GetUser("Neko")
	require.True(t, ok)
	assert.Contains(t, c.Channels(), "#test")
}

func TestEngine_NamesPrefixStrippingAndWhoIssued(t *testing.T) {
	e, sock := connectedEngine(t)

	var nameListChannel string
	var nameListNicks []string
	e.Events().On(irc.EvNameList, func(ev *irc.Event) {
		nameListChannel = ev.Channel
		nameListNicks = ev.Args
	})

	sock.WriteString(":Neko!u@h JOIN #x")
	require.True(t, e.Poll())

	sock.WriteString(":server 353 Neko = #x :@alice +bob carol")
	sock.WriteString(":server 366 Neko #x :End of NAMES list")
	require.True(t, e.Poll())

	alice, ok := e.GetUser("alice")
	require.True(t, ok)
	assert.Contains(t, alice.Channels(), "#x")

	assert.Equal(t, "#x", nameListChannel)
	assert.Equal(t, []string{"alice", "bob", "carol"}, nameListNicks)

	sent := sock.Sent()
	assert.Contains(t, sent, "WHO #x\r\n")
}

func TestEngine_005PrefixThenCustomNames(t *testing.T) {
	e, sock := connectedEngine(t)
	sock.WriteString(":s 005 Neko PREFIX=(ohv)@%+ :are supported by this server")
	require.True(t, e.Poll())

	sock.WriteString(":Neko!u@h JOIN #x")
	sock.WriteString(":server 353 Neko = #x :%bob")
	require.True(t, e.Poll())

	c, ok := e.GetChannel("#x")
	require.True(t, ok)
	bob, ok := e.GetUser("bob")
	require.True(t, ok)
	assert.Equal(t, byte('%'), c.Mode(bob.Nick()))
}

func TestEngine_NickRenameCarriesMode(t *testing.T) {
	e, sock := connectedEngine(t)

	sock.WriteString(":Neko!u@h JOIN #x")
	sock.WriteString(":alice!u@h JOIN #x")
	sock.WriteString(":s MODE #x +o alice")
	require.True(t, e.Poll())

	sock.WriteString(":alice!u@h NICK bob")
	require.True(t, e.Poll())

	_, ok := e.GetUser("alice")
	assert.False(t, ok)
	bob, ok := e.GetUser("bob")
	require.True(t, ok)
	assert.Contains(t, bob.Channels(), "#x")

	c, ok := e.GetChannel("#x")
	require.True(t, ok)
	assert.Equal(t, byte('@'), c.Mode("bob"))
	assert.Equal(t, byte(0), c.Mode("alice"))
}

func TestEngine_JoinTooSoon(t *testing.T) {
	e, sock := connectedEngine(t)

	var channel string
	var seconds int
	e.Events().On(irc.EvJoinTooSoon, func(ev *irc.Event) {
		channel = ev.Channel
		seconds = ev.Seconds
	})

	sock.WriteString(":s 495 Neko #test :You must wait 5 seconds after being kicked to rejoin (+J)")
	require.True(t, e.Poll())

	assert.Equal(t, "#test", channel)
	assert.Equal(t, 5, seconds)
}

func TestEngine_QuitIsIdempotent(t *testing.T) {
	e, _ := connectedEngine(t)
	require.NoError(t, e.Quit("bye"))
	require.NoError(t, e.Quit("bye again"))
	assert.False(t, e.Poll())
}
