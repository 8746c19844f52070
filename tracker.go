package irc

import "strings"

// Tracker is the engine's in-memory model of network state: the set of
// channels currently joined, the users visible in them, and the client's
// own identity. All mutations are driven by dispatcher.go as inbound
// messages arrive; Tracker itself never touches the wire.
//
// Spec §3's consistency invariant — u is a member of c.Members() if and
// only if c.Name() appears in u.Channels() — is preserved structurally:
// every mutation here goes through Channel.addUser/removeUser/renameUser,
// never touching a User's channel list directly.
type Tracker struct {
	self     *User
	users    []*User // general user set; self is never included here
	channels map[string]*Channel
	network  NetworkInfo
	clock    Clock
}

func newTracker(selfNick string, clock Clock) *Tracker {
	if clock == nil {
		clock = realClock{}
	}
	return &Tracker{
		self:     newUser(selfNick, clock),
		channels: make(map[string]*Channel),
		network:  defaultNetworkInfo(),
		clock:    clock,
	}
}

// Self returns the tracked identity of the local client.
func (t *Tracker) Self() *User { return t.self }

// Channel looks up a tracked channel by name.
func (t *Tracker) Channel(name string) (*Channel, bool) {
	c, ok := t.channels[foldNick(name)]
	return c, ok
}

// Channels returns every currently tracked channel, in no particular order.
func (t *Tracker) Channels() []*Channel {
	out := make([]*Channel, 0, len(t.channels))
	for _, c := range t.channels {
		out = append(out, c)
	}
	return out
}

// findUser looks up a tracked user by nick, checking self first so self's
// identity is never duplicated into the general user set (spec §3).
func (t *Tracker) findUser(nick string) *User {
	if nickEqual(t.self.Nick(), nick) {
		return t.self
	}
	for _, u := range t.users {
		if nickEqual(u.Nick(), nick) {
			return u
		}
	}
	return nil
}

// User looks up a tracked user (self or otherwise) by nick.
func (t *Tracker) User(nick string) (*User, bool) {
	u := t.findUser(nick)
	return u, u != nil
}

// getOrMakeUser returns the tracked User matching p's nick, creating and
// registering one if none exists yet. Identity fields present in p but
// missing on the stored user are patched in (spec §4.5); existing fields
// are never overwritten.
func (t *Tracker) getOrMakeUser(p Prefix) *User {
	u := t.findUser(p.Nick)
	if u == nil {
		u = newUser(p.Nick, t.clock)
		t.users = append(t.users, u)
	}
	u.patchIdentity(p)
	u.touch()
	return u
}

func (t *Tracker) removeUserFromAllChannels(u *User) {
	for _, name := range u.Channels() {
		if c, ok := t.Channel(name); ok {
			c.removeUser(u)
		}
	}
}

func (t *Tracker) dropUser(u *User) {
	for i, x := range t.users {
		if x == u {
			t.users = append(t.users[:i], t.users[i+1:]...)
			return
		}
	}
}

// onJoin records p as a member of channelName, creating the channel if this
// is the local client joining it for the first time.
func (t *Tracker) onJoin(channelName string, p Prefix) *Channel {
	c, ok := t.Channel(channelName)
	if !ok {
		c = newChannel(channelName)
		t.channels[foldNick(channelName)] = c
	}
	u := t.getOrMakeUser(p)
	c.addUser(u)
	return c
}

// onPart removes nick from channelName. If nick is the local client, the
// channel is dropped entirely (spec §4.5: parting a channel untracks it).
func (t *Tracker) onPart(channelName, nick string) {
	c, ok := t.Channel(channelName)
	if !ok {
		return
	}
	if nickEqual(t.self.Nick(), nick) {
		for _, u := range c.Members() {
			c.removeUser(u)
			if u != t.self && len(u.Channels()) == 0 {
				t.dropUser(u)
			}
		}
		delete(t.channels, foldNick(channelName))
		return
	}
	if u := c.findMember(nick); u != nil {
		c.removeUser(u)
		if u != t.self && len(u.Channels()) == 0 {
			t.dropUser(u)
		}
	}
}

// onKick removes nick from channelName, identically to onPart — a KICK and
// a PART differ only in why the removal happened, not in its bookkeeping.
func (t *Tracker) onKick(channelName, nick string) {
	t.onPart(channelName, nick)
}

// onQuit removes nick from every channel it was a member of and drops it
// from the general user set entirely.
func (t *Tracker) onQuit(nick string) {
	u := t.findUser(nick)
	if u == nil {
		return
	}
	t.removeUserFromAllChannels(u)
	if u != t.self {
		t.dropUser(u)
	}
}

// onNick renames a tracked user across every channel it's a member of,
// carrying channel-user modes along with it (spec §4.3).
//
// Spec §9's resolution of the nick-collision Open Question: if newNick
// already names a distinct tracked user, the two identities are merged —
// the existing newNick user is removed from every channel it was in and
// dropped, and oldNick's user carries on under newNick with only its own
// channel memberships and modes, rather than leaving two conflicting
// records.
func (t *Tracker) onNick(oldNick, newNick string) {
	u := t.findUser(oldNick)
	if u == nil {
		return
	}
	if collision := t.findUser(newNick); collision != nil && collision != u {
		t.removeUserFromAllChannels(collision)
		if collision != t.self {
			t.dropUser(collision)
		}
	}
	for _, name := range u.Channels() {
		if c, ok := t.Channel(name); ok {
			c.renameUser(oldNick, newNick)
		}
	}
	u.setNick(newNick)
}

// applyChannelModes applies a channel MODE change's user-privilege portion
// to channelName's member table. Non-user-privilege mode letters (keys,
// bans, moderated, etc.) are accepted syntactically but otherwise ignored
// by the tracker, which only models channel-user prefixes.
//
// Give never downgrades: if the member already holds a mode at least as
// privileged as the one being given, the existing mode is left alone
// (spec §4.6, "mode monotonicity on Give").
//
// Returns the nicks that need a WHOIS resync: spec §4.6 resolves "Take"
// (privilege removal) as always triggering one, since a removed privilege
// can't be reconstructed locally if another still-held mode was stacked
// underneath it.
func (t *Tracker) applyChannelModes(channelName, modeString string, modeArgs []string) ([]string, error) {
	c, ok := t.Channel(channelName)
	if !ok {
		return nil, errChannelNotTracked(channelName)
	}

	var give bool
	var signSeen bool
	var argIndex int
	var whois []string

	nextArg := func() (string, error) {
		if argIndex >= len(modeArgs) {
			return "", errProtocol("MODE: too few arguments for " + modeString)
		}
		a := modeArgs[argIndex]
		argIndex++
		return a, nil
	}

	for _, r := range modeString {
		switch r {
		case '+':
			give = true
			signSeen = true
			continue
		case '-':
			give = false
			signSeen = true
			continue
		}

		m := byte(r)
		switch {
		case t.network.isUserMode(m):
			if !signSeen {
				return whois, errProtocol("MODE: user mode " + string(r) + " before +/-")
			}
			nick, err := nextArg()
			if err != nil {
				return whois, err
			}
			if give {
				newIndex := t.network.indexOfMode(m)
				if existing := c.Mode(nick); existing == 0 || t.network.indexOfPrefix(existing) > newIndex {
					c.setMode(nick, t.network.ChannelUserPrefixes[newIndex])
				}
			} else {
				c.clearMode(nick)
				whois = append(whois, nick)
			}
		case strings.IndexByte(t.network.ChanModesA, m) >= 0,
			strings.IndexByte(t.network.ChanModesB, m) >= 0:
			if _, err := nextArg(); err != nil {
				return whois, err
			}
		case strings.IndexByte(t.network.ChanModesC, m) >= 0:
			if give {
				if _, err := nextArg(); err != nil {
					return whois, err
				}
			}
		default:
			// CHANMODES group D, or a letter no group lists: no argument
		}
	}

	return whois, nil
}
