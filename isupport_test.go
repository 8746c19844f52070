package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISupport_Prefix(t *testing.T) {
	n := defaultNetworkInfo()
	err := n.applyISupportToken("PREFIX=(ohv)@%+")
	require.NoError(t, err)
	assert.Equal(t, []byte("ohv"), n.ChannelUserModes)
	assert.Equal(t, []byte("@%+"), n.ChannelUserPrefixes)
}

func TestISupport_PrefixMismatchedLengthFails(t *testing.T) {
	n := defaultNetworkInfo()
	err := n.applyISupportToken("PREFIX=(ov)@")
	require.Error(t, err)
}

func TestISupport_EmptyPrefixSilentlyIgnored(t *testing.T) {
	n := defaultNetworkInfo()
	before := n.ChannelUserModes
	err := n.applyISupportToken("PREFIX=")
	require.NoError(t, err)
	assert.Equal(t, before, n.ChannelUserModes)
}

func TestISupport_ChanModes(t *testing.T) {
	n := defaultNetworkInfo()
	err := n.applyISupportToken("CHANMODES=beI,k,l,psitnm")
	require.NoError(t, err)
	assert.Equal(t, "beI", n.ChanModesA)
	assert.Equal(t, "k", n.ChanModesB)
	assert.Equal(t, "l", n.ChanModesC)
	assert.Equal(t, "psitnm", n.ChanModesD)
}

func TestISupport_ChanModesMalformedFails(t *testing.T) {
	n := defaultNetworkInfo()
	err := n.applyISupportToken("CHANMODES=a,b")
	require.Error(t, err)
}

func TestISupport_NickLen(t *testing.T) {
	n := defaultNetworkInfo()
	require.NoError(t, n.applyISupportToken("NICKLEN=30"))
	assert.Equal(t, 30, n.MaxNickLength)
}

func TestISupport_UnknownKeyIgnored(t *testing.T) {
	n := defaultNetworkInfo()
	require.NoError(t, n.applyISupportToken("SOMETHINGELSE=blah"))
}
