package irc

import "strings"

// Channel is a joined channel: its member set (by identity, insertion
// ordered) and each member's highest channel-user prefix, e.g. '@' for
// op or '+' for voice.
type Channel struct {
	name    string
	members []*User
	modes   map[string]byte // nick (as last seen) -> prefix char
}

func newChannel(name string) *Channel {
	return &Channel{name: name, modes: make(map[string]byte)}
}

func (c *Channel) Name() string { return c.name }

// Members returns a copy of the channel's member list in join order.
func (c *Channel) Members() []*User {
	out := make([]*User, len(c.members))
	copy(out, c.members)
	return out
}

func (c *Channel) findMember(nick string) *User {
	for _, u := range c.members {
		if nickEqual(u.Nick(), nick) {
			return u
		}
	}
	return nil
}

// addUser adds u to the channel's member set (if not already present) and
// records the channel on u in lockstep.
func (c *Channel) addUser(u *User) {
	if c.findMember(u.Nick()) == nil {
		c.members = append(c.members, u)
	}
	u.addChannel(c.name)
}

// removeUser removes u from the channel's member set and strips the
// channel from u's tracked set, in lockstep. Any mode entry for u's
// current nick is discarded.
func (c *Channel) removeUser(u *User) {
	for i, m := range c.members {
		if m == u {
			c.members = append(c.members[:i], c.members[i+1:]...)
			break
		}
	}
	delete(c.modes, foldNick(u.Nick()))
	u.removeChannel(c.name)
}

// Mode returns the channel-user prefix currently assigned to nick, or 0 if
// the nick has none (or isn't a member).
func (c *Channel) Mode(nick string) byte {
	return c.modes[foldNick(nick)]
}

// setMode records prefix as nick's channel-user mode. prefix must be one of
// the characters in the network's channelUserPrefixes; callers
// (Tracker.applyChannelModes and the dispatcher's NAMES/WHO/WHOIS reply
// handlers) are responsible for that check.
func (c *Channel) setMode(nick string, prefix byte) {
	c.modes[foldNick(nick)] = prefix
}

func (c *Channel) clearMode(nick string) {
	delete(c.modes, foldNick(nick))
}

// renameUser moves any mode entry from oldNick to newNick, carrying the
// member's privilege across a NICK change (spec §4.3).
func (c *Channel) renameUser(oldNick, newNick string) {
	if mode, ok := c.modes[foldNick(oldNick)]; ok {
		delete(c.modes, foldNick(oldNick))
		c.modes[foldNick(newNick)] = mode
	}
}

func foldNick(nick string) string {
	return strings.ToLower(nick)
}
