package irc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func TestUser_IdleTracking(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	u := newUser("alice", clock)

	assert.False(t, u.IsIdle(clock.Now(), 10*time.Second))

	clock.advance(30 * time.Second)
	assert.True(t, u.IsIdle(clock.Now(), 10*time.Second))
	assert.Equal(t, 30*time.Second, u.IdleTime(clock.Now()))

	u.touch()
	assert.False(t, u.IsIdle(clock.Now(), 10*time.Second))
}

func TestUser_PatchIdentity(t *testing.T) {
	u := newUser("alice", &fakeClock{})
	u.patchIdentity(Prefix{Nick: "alice", User: "a", Host: "h1"})
	assert.Equal(t, "a", u.User())
	assert.Equal(t, "h1", u.Host())

	// existing fields are never overwritten
	u.patchIdentity(Prefix{Nick: "alice", User: "other", Host: "h2"})
	assert.Equal(t, "a", u.User())
	assert.Equal(t, "h1", u.Host())
}

func TestUser_ChannelMembership(t *testing.T) {
	u := newUser("alice", &fakeClock{})
	u.addChannel("#x")
	u.addChannel("#X") // case-insensitive, should not duplicate
	assert.Equal(t, []string{"#x"}, u.Channels())

	u.removeChannel("#X")
	assert.Empty(t, u.Channels())
}
