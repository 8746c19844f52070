package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_AddRemoveUserLockstep(t *testing.T) {
	c := newChannel("#x")
	u := newUser("alice", &fakeClock{})

	c.addUser(u)
	assert.NotNil(t, c.findMember("alice"))
	assert.Contains(t, u.Channels(), "#x")

	c.removeUser(u)
	assert.Nil(t, c.findMember("alice"))
	assert.NotContains(t, u.Channels(), "#x")
}

func TestChannel_SetModeReplacesPrefix(t *testing.T) {
	c := newChannel("#x")
	u := newUser("alice", &fakeClock{})
	c.addUser(u)

	c.setMode("alice", '+')
	assert.Equal(t, byte('+'), c.Mode("alice"))

	c.setMode("alice", '@')
	assert.Equal(t, byte('@'), c.Mode("alice"))
}

func TestChannel_RenameUserCarriesMode(t *testing.T) {
	c := newChannel("#x")
	u := newUser("alice", &fakeClock{})
	c.addUser(u)
	c.setMode("alice", '@')

	c.renameUser("alice", "bob")
	assert.Equal(t, byte(0), c.Mode("alice"))
	assert.Equal(t, byte('@'), c.Mode("bob"))
}

func TestChannel_MembersCopyIsIndependent(t *testing.T) {
	c := newChannel("#x")
	c.addUser(newUser("alice", &fakeClock{}))
	members := c.Members()
	require.Len(t, members, 1)
	members[0] = nil
	assert.NotNil(t, c.Members()[0])
}
