package irc

import (
	"strconv"
	"strings"
)

// arg returns m.Args[i] (0-indexed) or "" if out of range, matching the
// "arg0, arg1, ..." notation used throughout this file's per-command
// comments.
func arg(m *Message, i int) string {
	if i < 0 || i >= len(m.Args) {
		return ""
	}
	return m.Args[i]
}

// dispatch routes one parsed line to its command/numeric handler. State
// mutations complete before the corresponding event fires, so callbacks
// always observe post-transition state (spec §5).
func (e *Engine) dispatch(m *Message) error {
	if m.IsNumeric() {
		return e.dispatchNumeric(m)
	}

	switch m.Command {
	case CmdPing:
		return e.Raw(CmdPong + " :" + arg(m, 0))
	case CmdPong:
		// keep-alive FSM already observed this line via Poll's touch.
		return nil
	case CmdError:
		return errServer(arg(m, 0))
	case CmdPrivmsg:
		return e.dispatchPrivmsgOrNotice(m, false)
	case CmdNotice:
		return e.dispatchPrivmsgOrNotice(m, true)
	case CmdJoin:
		return e.dispatchJoin(m)
	case CmdPart:
		return e.dispatchPart(m)
	case CmdKick:
		return e.dispatchKick(m)
	case CmdQuit:
		return e.dispatchQuit(m)
	case CmdNick:
		return e.dispatchNick(m)
	case CmdMode:
		return e.dispatchMode(m)
	case CmdTopic:
		return e.dispatchTopic(m)
	case CmdInvite:
		e.events.fire(EvInvite, &Event{
			User:    e.tracker.getOrMakeUser(m.Prefix),
			Target:  arg(m, 0),
			Channel: arg(m, 1),
		})
		return nil
	}
	e.log.WithField("command", m.Command).Debug("ignoring unknown command")
	return nil
}

func (e *Engine) dispatchPrivmsgOrNotice(m *Message, notice bool) error {
	from := e.tracker.getOrMakeUser(m.Prefix)
	from.touch()

	target := arg(m, 0)
	body := arg(m, 1)

	if tag, ctcpMsg, ok := parseCTCP(body); ok {
		if notice {
			e.events.fire(EvCTCPReply, &Event{User: from, Target: target, Tag: tag, Text: ctcpMsg})
		} else {
			e.events.fire(EvCTCPQuery, &Event{User: from, Target: target, Tag: tag, Text: ctcpMsg})
		}
		return nil
	}

	if notice {
		e.events.fire(EvNotice, &Event{User: from, Target: target, Text: body})
	} else {
		e.events.fire(EvMessage, &Event{User: from, Target: target, Text: body})
	}
	return nil
}

func (e *Engine) dispatchJoin(m *Message) error {
	channel := arg(m, 0)
	if nickEqual(m.Prefix.Nick, e.nick) {
		e.tracker.onJoin(channel, m.Prefix)
		e.events.fire(EvSuccessfulJoin, &Event{Channel: channel})
		return nil
	}
	c := e.tracker.onJoin(channel, m.Prefix)
	who := c.findMember(m.Prefix.Nick)
	e.events.fire(EvJoin, &Event{User: who, Channel: channel})
	return nil
}

func (e *Engine) dispatchPart(m *Message) error {
	channel := arg(m, 0)
	who, _ := e.tracker.User(m.Prefix.Nick)
	e.tracker.onPart(channel, m.Prefix.Nick)
	e.events.fire(EvPart, &Event{User: who, Channel: channel, Text: arg(m, 1)})
	return nil
}

func (e *Engine) dispatchKick(m *Message) error {
	channel := arg(m, 0)
	kicked := arg(m, 1)
	kicker := e.tracker.getOrMakeUser(m.Prefix)
	kicker.touch()
	who, _ := e.tracker.User(kicked)
	e.tracker.onKick(channel, kicked)
	e.events.fire(EvKick, &Event{User: who, Channel: channel, Target: kicker.Nick(), Text: arg(m, 2)})
	return nil
}

func (e *Engine) dispatchQuit(m *Message) error {
	who, _ := e.tracker.User(m.Prefix.Nick)
	e.tracker.onQuit(m.Prefix.Nick)
	e.events.fire(EvQuit, &Event{User: who, Text: arg(m, 0)})
	return nil
}

func (e *Engine) dispatchNick(m *Message) error {
	newNick := arg(m, 0)
	who, _ := e.tracker.User(m.Prefix.Nick)
	e.tracker.onNick(m.Prefix.Nick, newNick)
	if nickEqual(m.Prefix.Nick, e.nick) {
		e.nick = newNick
	}
	e.events.fire(EvNickChange, &Event{User: who, Text: newNick})
	return nil
}

func (e *Engine) dispatchMode(m *Message) error {
	target := arg(m, 0)
	modeString := arg(m, 1)
	modeArgs := m.Args[minInt(2, len(m.Args)):]
	by, _ := e.tracker.User(m.Prefix.Nick)

	var whoisTargets []string
	var err error
	if isChannel(target) {
		whoisTargets, err = e.tracker.applyChannelModes(target, modeString, modeArgs)
	}

	e.events.fire(EvMode, &Event{User: by, Target: target, Text: modeString, Args: modeArgs})

	if err != nil {
		return err
	}
	for _, nick := range whoisTargets {
		_ = e.Whois(nick)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (e *Engine) dispatchTopic(m *Message) error {
	by, _ := e.tracker.User(m.Prefix.Nick)
	e.events.fire(EvTopicChange, &Event{User: by, Channel: arg(m, 0), Text: arg(m, 1)})
	return nil
}

func (e *Engine) dispatchNumeric(m *Message) error {
	switch m.Command {
	case RplWelcome:
		e.events.fire(EvConnect, &Event{})
	case RplISupport:
		return e.dispatch005(m)
	case RplTopic:
		e.events.fire(EvTopic, &Event{Channel: arg(m, 1), Text: arg(m, 2)})
	case RplTopicWhoTime:
		e.events.fire(EvTopicInfo, &Event{Channel: arg(m, 1), Setter: arg(m, 2), Time: arg(m, 3)})
	case RplWhoReply:
		e.dispatch352(m)
	case RplNamReply:
		e.dispatch353(m)
	case RplEndOfNames:
		channel := arg(m, 1)
		e.events.fire(EvNameListEnd, &Event{Channel: channel})
		return e.Who(channel, "")
	case RplMOTDStart:
		e.events.fire(EvMotdStart, &Event{Text: arg(m, 1)})
	case RplMOTD:
		e.events.fire(EvMotdLine, &Event{Text: arg(m, 1)})
	case RplEndOfMOTD:
		e.events.fire(EvMotdEnd, &Event{Text: arg(m, 1)})
	case RplHostHidden:
		e.tracker.Self().setHost(arg(m, 1))
	case RplErrNicknameInUse:
		oldNick := arg(m, 1)
		if e.events.fireNickInUse(oldNick) {
			return nil
		}
		return errNickInUseUnhandled(oldNick)
	case RplWhoIsUser:
		e.dispatch311(m)
	case RplWhoIsServer:
		e.events.fire(EvWhoisServerReply, &Event{Target: arg(m, 1), Text: arg(m, 2) + " " + arg(m, 3)})
	case RplWhoIsOperator:
		e.events.fire(EvWhoisOperatorReply, &Event{Target: arg(m, 1)})
	case RplWhoIsIdle:
		secs, _ := strconv.Atoi(arg(m, 2))
		e.events.fire(EvWhoisIdleReply, &Event{Target: arg(m, 1), Seconds: secs})
	case RplEndOfWhoIs:
		e.events.fire(EvWhoisEnd, &Event{Target: arg(m, 1)})
	case RplWhoIsChannels:
		e.dispatch319(m)
	case RplWhoisAccount:
		e.events.fire(EvWhoisAccountReply, &Event{Target: arg(m, 1), Text: arg(m, 2)})
	case RplWhoisRegNick:
		e.events.fire(EvWhoisRegisteredReply, &Event{Target: arg(m, 1), Text: arg(m, 2)})
	case ErrJoinTooSoon:
		e.dispatch495(m)
	}
	return nil
}

func (e *Engine) dispatch005(m *Message) error {
	// args[0] is our own nick; the final arg is the human-readable
	// trailer, so tokens live in args[1:len-1].
	if len(m.Args) < 2 {
		return nil
	}
	for _, token := range m.Args[1 : len(m.Args)-1] {
		if err := e.tracker.network.applyISupportToken(token); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) dispatch352(m *Message) {
	nick := arg(m, 5)
	u, ok := e.tracker.User(nick)
	if !ok {
		return
	}
	host := arg(m, 3)
	if u.Host() == "" {
		u.setHost(host)
	}
	if u.User() == "" {
		u.setUser(arg(m, 2))
	}
	if real := stripLeadingHopcount(arg(m, 7)); real != "" && u.Real() == "" {
		u.setReal(real)
	}

	channel := arg(m, 1)
	flags := arg(m, 6)
	_, modeChar := stripPrefixChars(flags, e.tracker.network.ChannelUserPrefixes)
	if modeChar != 0 {
		if c, ok := e.tracker.Channel(channel); ok {
			c.setMode(nick, modeChar)
		}
	}
}

func (e *Engine) dispatch353(m *Message) {
	channel := arg(m, 2)
	c, ok := e.tracker.Channel(channel)
	if !ok {
		c = newChannel(channel)
		e.tracker.channels[foldNick(channel)] = c
	}
	var nicks []string
	for _, token := range strings.Fields(arg(m, 3)) {
		rest, modeChar := stripPrefixChars(token, e.tracker.network.ChannelUserPrefixes)
		nicks = append(nicks, rest)
		if nickEqual(rest, e.nick) {
			continue
		}
		u := e.tracker.getOrMakeUser(Prefix{Nick: rest})
		c.addUser(u)
		if modeChar != 0 {
			c.setMode(rest, modeChar)
		}
	}
	e.events.fire(EvNameList, &Event{Channel: channel, Args: nicks})
}

func (e *Engine) dispatch311(m *Message) {
	nick := arg(m, 1)
	u := e.tracker.getOrMakeUser(Prefix{Nick: nick, User: arg(m, 2), Host: arg(m, 3)})
	if real := arg(m, 5); real != "" && u.Real() == "" {
		u.setReal(real)
	}
	e.events.fire(EvWhoisReply, &Event{User: u})
}

func (e *Engine) dispatch319(m *Message) {
	nick := arg(m, 1)
	channelsStr := arg(m, 2)
	fields := strings.Fields(channelsStr)
	for _, f := range fields {
		rest, modeChar := stripPrefixChars(f, e.tracker.network.ChannelUserPrefixes)
		if c, ok := e.tracker.Channel(rest); ok && modeChar != 0 {
			c.setMode(nick, modeChar)
		}
	}
	e.events.fire(EvWhoisChannelsReply, &Event{Target: nick, Args: fields})
}

func (e *Engine) dispatch495(m *Message) {
	channel := arg(m, 1)
	reason := arg(m, 2)
	secs := extractFirstInt(reason)
	e.events.fire(EvJoinTooSoon, &Event{Channel: channel, Seconds: secs})
}

// stripLeadingHopcount removes a leading run of digits and whitespace from
// a RPL_WHOREPLY trailing arg ("<hopcount> <real name>"), leaving just the
// real name.
func stripLeadingHopcount(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return strings.TrimLeft(s[i:], " ")
}

// stripPrefixChars removes a leading run of characters drawn from
// prefixes, returning the remainder and the first such character
// encountered (0 if none).
func stripPrefixChars(s string, prefixes []byte) (rest string, first byte) {
	i := 0
	for i < len(s) {
		c := s[i]
		matched := false
		for _, p := range prefixes {
			if p == c {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		if first == 0 {
			first = c
		}
		i++
	}
	return s[i:], first
}

// extractFirstInt returns the first run of ASCII digits found in s, parsed
// as an int, or 0 if none is present.
func extractFirstInt(s string) int {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}
