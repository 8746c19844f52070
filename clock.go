package irc

import "time"

// Clock is the monotonic-time collaborator spec §1 calls for. Both the
// keep-alive FSM and per-User idle bookkeeping take a Clock instead of
// calling time.Now() directly so tests can advance time deterministically.
type Clock interface {
	Now() time.Time
}

// realClock is the default Clock, backed by the wall/monotonic clock Go's
// time package already returns from time.Now().
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
