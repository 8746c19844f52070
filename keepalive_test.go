package irc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeepAlive_PingThenDisconnect(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	k := newKeepAlive(clock)

	assert.Equal(t, keepAliveNone, k.check())

	clock.advance(keepAliveThreshold)
	assert.Equal(t, keepAlivePing, k.check())
	assert.Equal(t, stateAwaitingPong, k.state)

	clock.advance(keepAliveThreshold - time.Second)
	assert.Equal(t, keepAliveNone, k.check())

	clock.advance(time.Second)
	assert.Equal(t, keepAliveDisconnect, k.check())
	assert.Equal(t, stateDead, k.state)
}

func TestKeepAlive_TouchResetsState(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	k := newKeepAlive(clock)

	clock.advance(keepAliveThreshold)
	k.check() // -> AwaitingPong

	k.touch()
	assert.Equal(t, stateAlive, k.state)
	assert.Equal(t, keepAliveNone, k.check())
}

func TestKeepAlive_TouchOutboundLeavesStateAlone(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	k := newKeepAlive(clock)

	clock.advance(keepAliveThreshold)
	assert.Equal(t, keepAlivePing, k.check()) // -> AwaitingPong, sends PING

	// sending the PING probe itself must not clear AwaitingPong.
	k.touchOutbound()
	assert.Equal(t, stateAwaitingPong, k.state)

	clock.advance(2 * keepAliveThreshold)
	assert.Equal(t, keepAliveDisconnect, k.check())
}
