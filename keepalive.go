package irc

import "time"

// keepAliveThreshold is how long the connection can go without inbound
// traffic before the engine probes it with a PING, and again before it
// gives up and disconnects outright (spec §4.8).
const keepAliveThreshold = 30 * time.Second

// connState is the keep-alive FSM's state: Alive while traffic is
// flowing, AwaitingPong once a probe has been sent, Dead once the probe
// itself has gone unanswered for another threshold period.
type connState int

const (
	stateAlive connState = iota
	stateAwaitingPong
	stateDead
)

// keepAlive tracks inbound/outbound traffic recency and drives the
// Alive -> AwaitingPong -> Dead transition spec §4.8 describes. It owns no
// socket; Engine.poll calls check on every tick and acts on the result.
type keepAlive struct {
	state       connState
	lastNetTime time.Time
	timingOut   bool
	clock       Clock
}

func newKeepAlive(clock Clock) *keepAlive {
	if clock == nil {
		clock = realClock{}
	}
	return &keepAlive{state: stateAlive, lastNetTime: clock.Now(), clock: clock}
}

// touch records inbound traffic, refreshing the idle clock and clearing
// any in-flight probe — any line received at all is evidence the link is
// alive (spec §4.8, "any inbound traffic clears timingOut").
func (k *keepAlive) touch() {
	k.lastNetTime = k.clock.Now()
	k.timingOut = false
	k.state = stateAlive
}

// touchOutbound records an outbound send. lastNetTime is updated (spec
// §4.8: "updated on every ... outbound send"), but timingOut and state are
// left alone — sending the PING probe itself must not clear the very
// AwaitingPong state it just set, or a dead peer would never time out.
func (k *keepAlive) touchOutbound() {
	k.lastNetTime = k.clock.Now()
}

// keepAliveAction is what Engine.poll should do as a result of a
// keepAlive.check call.
type keepAliveAction int

const (
	keepAliveNone keepAliveAction = iota
	keepAlivePing
	keepAliveDisconnect
)

// check inspects elapsed idle time and returns the action poll should
// take. A full threshold of silence after the probe was sent tears the
// connection down; the first threshold only asks for a PONG.
func (k *keepAlive) check() keepAliveAction {
	idle := k.clock.Now().Sub(k.lastNetTime)
	switch k.state {
	case stateAlive:
		if idle >= keepAliveThreshold {
			k.state = stateAwaitingPong
			k.timingOut = true
			k.lastNetTime = k.clock.Now() // the probe is itself an outbound send
			return keepAlivePing
		}
	case stateAwaitingPong:
		if idle >= keepAliveThreshold {
			k.state = stateDead
			return keepAliveDisconnect
		}
	}
	return keepAliveNone
}
