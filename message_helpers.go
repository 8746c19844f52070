package irc

// Text returns the final argument of m, which by convention carries the
// free-text payload of PRIVMSG/NOTICE/TOPIC/QUIT/etc.
func (m *Message) Text() string {
	if len(m.Args) == 0 {
		return ""
	}
	return m.Args[len(m.Args)-1]
}

// Target returns the first argument of m, which is a channel or nick for
// most commands that address somewhere.
func (m *Message) Target() string {
	return m.Arg(1)
}

// Chan returns Target() if it looks like a channel name, else "".
func (m *Message) Chan() string {
	t := m.Target()
	if isChannel(t) {
		return t
	}
	return ""
}
