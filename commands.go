package irc

import "strings"

// isChannel reports whether name looks like a channel name rather than a
// nick (spec §6: "non-empty and its first byte is '#'").
func isChannel(name string) bool {
	return len(name) > 0 && name[0] == '#'
}

// Join sends JOIN for channel, optionally with a key.
func (e *Engine) Join(channel, key string) error {
	if channel == "" {
		return errInvalidArgument("channel")
	}
	if key == "" {
		return e.Raw(BuildLineNoCRLF(CmdJoin, channel))
	}
	return e.Raw(BuildLineNoCRLF(CmdJoin, channel, key))
}

// Part sends PART for channel, optionally with a parting message.
func (e *Engine) Part(channel, msg string) error {
	if channel == "" {
		return errInvalidArgument("channel")
	}
	if msg == "" {
		return e.Raw(BuildLineNoCRLF(CmdPart, channel))
	}
	return e.Raw(BuildLineNoCRLF(CmdPart, channel, msg))
}

// Kick removes who from channel, optionally with a reason.
func (e *Engine) Kick(channel, who, msg string) error {
	if channel == "" || who == "" {
		return errInvalidArgument("channel/who")
	}
	if msg == "" {
		return e.Raw(BuildLineNoCRLF(CmdKick, channel, who))
	}
	return e.Raw(BuildLineNoCRLF(CmdKick, channel, who, msg))
}

// Mode sends a raw MODE command: target (channel or nick), a sign ('+' or
// '-') concatenated onto modeLetters, and any positional args the modes
// require (e.g. a nick for +o, a mask for +b).
func (e *Engine) Mode(target string, sign byte, modeLetters string, args ...string) error {
	if target == "" || modeLetters == "" {
		return errInvalidArgument("target/modes")
	}
	if sign != '+' && sign != '-' {
		return errInvalidArgument("sign")
	}
	modeArg := string(sign) + modeLetters
	return e.Raw(BuildLineNoCRLF(CmdMode, append([]string{target, modeArg}, args...)...))
}

// AddUserModes grants the channel-user privileges in letters (e.g. "ov")
// to nick on channel, one MODE command per call.
func (e *Engine) AddUserModes(channel, nick, letters string) error {
	return e.Mode(channel, '+', letters, repeatNick(nick, len(letters))...)
}

// RemoveUserModes revokes the channel-user privileges in letters from nick.
func (e *Engine) RemoveUserModes(channel, nick, letters string) error {
	return e.Mode(channel, '-', letters, repeatNick(nick, len(letters))...)
}

func repeatNick(nick string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = nick
	}
	return out
}

// AddChannelModes sets the given channel-wide modes (letters + their
// positional args, e.g. letters="k", args=["secret"]).
func (e *Engine) AddChannelModes(channel, letters string, args ...string) error {
	return e.Mode(channel, '+', letters, args...)
}

// RemoveChannelModes clears the given channel-wide modes.
func (e *Engine) RemoveChannelModes(channel, letters string, args ...string) error {
	return e.Mode(channel, '-', letters, args...)
}

// Ban adds mask to channel's ban list.
func (e *Engine) Ban(channel, mask string) error {
	return e.AddChannelModes(channel, "b", mask)
}

// Unban removes mask from channel's ban list.
func (e *Engine) Unban(channel, mask string) error {
	return e.RemoveChannelModes(channel, "b", mask)
}

// KickBan bans who's mask (nick!*@*) and kicks who from channel.
func (e *Engine) KickBan(channel, who, msg string) error {
	if err := e.Ban(channel, who+"!*@*"); err != nil {
		return err
	}
	return e.Kick(channel, who, msg)
}

// AddToChannelList adds mask to a list-type channel mode (e.g. "I" for
// invite exceptions, "e" for ban exceptions).
func (e *Engine) AddToChannelList(channel, letter, mask string) error {
	return e.AddChannelModes(channel, letter, mask)
}

// RemoveFromChannelList removes mask from a list-type channel mode.
func (e *Engine) RemoveFromChannelList(channel, letter, mask string) error {
	return e.RemoveChannelModes(channel, letter, mask)
}

// Whois queries for target's identity and status.
func (e *Engine) Whois(target string) error {
	if target == "" {
		return errInvalidArgument("target")
	}
	return e.Raw(BuildLineNoCRLF(CmdWhoIs, target))
}

// Who queries for target, or for user within a channel when both are given.
func (e *Engine) Who(target, user string) error {
	if target == "" {
		return errInvalidArgument("target")
	}
	if user == "" {
		return e.Raw(BuildLineNoCRLF(CmdWho, target))
	}
	return e.Raw(BuildLineNoCRLF(CmdWho, target, user))
}

// Send fragments and emits a PRIVMSG to target, splitting at the outbound
// budget when the body is too long for one line.
func (e *Engine) Send(target, text string) error {
	return e.sendSplit(CmdPrivmsg, target, text)
}

// Notice fragments and emits a NOTICE to target.
func (e *Engine) Notice(target, text string) error {
	return e.sendSplit(CmdNotice, target, text)
}

func (e *Engine) sendSplit(cmd, target, text string) error {
	if target == "" || text == "" {
		return errInvalidArgument("target/text")
	}
	for _, line := range splitPrivmsg(cmd, target, text) {
		if err := e.Raw(line); err != nil {
			return err
		}
	}
	return nil
}

// CtcpQuery sends a CTCP request (tag, optional argument string) to target
// as a PRIVMSG.
func (e *Engine) CtcpQuery(target, tag, msg string) error {
	return e.sendCTCP(CmdPrivmsg, target, tag, msg)
}

// CtcpReply sends a CTCP response to target as a NOTICE, per convention.
func (e *Engine) CtcpReply(target, tag, msg string) error {
	return e.sendCTCP(CmdNotice, target, tag, msg)
}

func (e *Engine) sendCTCP(cmd, target, tag, msg string) error {
	if target == "" || tag == "" {
		return errInvalidArgument("target/tag")
	}
	for _, line := range splitCTCP(cmd, target, tag, msg) {
		if err := e.Raw(line); err != nil {
			return err
		}
	}
	return nil
}

// parseCTCP extracts the tag and message from a CTCP-wrapped payload
// ("\x01TAG message\x01"). ok is false if body isn't CTCP-framed.
func parseCTCP(body string) (tag, msg string, ok bool) {
	if len(body) < 2 || body[0] != ctcpDelim || body[len(body)-1] != ctcpDelim {
		return "", "", false
	}
	inner := body[1 : len(body)-1]
	tag, msg, found := strings.Cut(inner, " ")
	if !found {
		return inner, "", true
	}
	return tag, msg, true
}
