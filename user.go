package irc

import (
	"strings"
	"time"
)

// User is a tracked network identity: a nick/user/host/realname tuple, the
// set of channels this user is currently visible in, and the time of its
// last observed action. Per spec §3, nick comparisons throughout are
// ASCII case-insensitive.
type User struct {
	nick     string
	user     string
	host     string
	real     string
	channels []string // insertion order, case-insensitive membership

	lastActionTime time.Time
	clock          Clock
}

func newUser(nick string, clock Clock) *User {
	if clock == nil {
		clock = realClock{}
	}
	return &User{nick: nick, clock: clock, lastActionTime: clock.Now()}
}

func (u *User) Nick() string { return u.nick }
func (u *User) User() string { return u.user }
func (u *User) Host() string { return u.host }
func (u *User) Real() string { return u.real }

// Channels returns a copy of the channel names this user is currently
// tracked as a member of, in join order.
func (u *User) Channels() []string {
	out := make([]string, len(u.channels))
	copy(out, u.channels)
	return out
}

func (u *User) setNick(nick string) { u.nick = nick }
func (u *User) setUser(user string) { u.user = user }
func (u *User) setHost(host string) { u.host = host }
func (u *User) setReal(real string) { u.real = real }

// patchIdentity fills in user/host fields that are currently empty
// from a richer sighting of the same person, without ever overwriting a
// field that's already populated. Spec §4.5: "patch in the new user/host
// fields without replacing the stored user."
func (u *User) patchIdentity(p Prefix) {
	if u.user == "" && p.User != "" {
		u.user = p.User
	}
	if u.host == "" && p.Host != "" {
		u.host = p.Host
	}
}

func (u *User) hasChannel(name string) bool {
	for _, c := range u.channels {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

func (u *User) addChannel(name string) {
	if u.hasChannel(name) {
		return
	}
	u.channels = append(u.channels, name)
}

func (u *User) removeChannel(name string) {
	for i, c := range u.channels {
		if strings.EqualFold(c, name) {
			u.channels = append(u.channels[:i], u.channels[i+1:]...)
			return
		}
	}
}

// touch resets lastActionTime to now.
func (u *User) touch() {
	u.lastActionTime = u.clock.Now()
}

// IsIdle reports whether at least d has elapsed since the user's last
// observed action, as of now.
func (u *User) IsIdle(now time.Time, d time.Duration) bool {
	return now.Sub(u.lastActionTime) >= d
}

// IdleTime returns how long it has been since the user's last observed
// action, as of now.
func (u *User) IdleTime(now time.Time) time.Duration {
	return now.Sub(u.lastActionTime)
}

// String renders the canonical "nick!user@host" identity form. Per spec
// §4.3 this is a fixed concatenation, not a conditional one: fromPrefix and
// String round-trip exactly when nick, user, and host are all non-empty.
func (u *User) String() string {
	return u.nick + "!" + u.user + "@" + u.host
}

// FromPrefix builds a detached User from a raw prefix string, following
// the same partition rule as ParsePrefix.
func FromPrefix(s string) *User {
	p := ParsePrefix(s)
	return &User{nick: p.Nick, user: p.User, host: p.Host, clock: realClock{}}
}

// nickEqual is the case-insensitive nick comparison used throughout the
// tracker and dispatcher.
func nickEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
