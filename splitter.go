package irc

import "strings"

// lineBudget is the outbound content budget, conservative enough to leave
// room for a server re-prepending "nick!user@host " to our own message
// when it echoes or relays it. Spec §4.4: 512 - 2 (CRLF) - (63 + 10 + 1)
// (host + nick + separator bytes) = 436.
const lineBudget = 512 - 2 - (63 + 10 + 1)

// splitPrivmsg fragments a PRIVMSG/NOTICE body across as many lines as
// needed to keep each one within lineBudget content bytes, preferring to
// break on a space so words aren't glued together mid-fragment.
func splitPrivmsg(cmd, target, payload string) []string {
	var lines []string
	for {
		line := cmd + " " + target + " :" + payload
		if len(line) <= lineBudget {
			lines = append(lines, line)
			return lines
		}

		head := line[:lineBudget]
		colon := strings.Index(head, ":")
		splitAt := strings.LastIndex(head, " ")
		if colon >= 0 && splitAt > colon {
			lines = append(lines, head[:splitAt])
			payload = payload[splitAt-colon-1+1:]
			continue
		}

		// no usable space after the colon: hard-split at the budget.
		prefixLen := len(cmd) + 1 + len(target) + 2 // "cmd target :"
		lines = append(lines, head)
		payload = payload[lineBudget-prefixLen:]
	}
}

// splitCTCP fragments a CTCP-wrapped tag+message across as many PRIVMSG or
// NOTICE lines as needed, preserving the tag on the first fragment and
// re-wrapping each subsequent fragment in its own \x01...\x01 envelope.
func splitCTCP(cmd, target, tag, message string) []string {
	prefixLen := len(cmd) + 1 + len(target) + 2 // "cmd target :"
	fragBudget := lineBudget - prefixLen - 2     // opening and closing \x01

	var wrapped string
	if message == "" {
		wrapped = tag
	} else {
		wrapped = tag + " " + message
	}

	var lines []string
	for {
		if len(wrapped) <= fragBudget {
			lines = append(lines, cmd+" "+target+" :"+string(ctcpDelim)+wrapped+string(ctcpDelim))
			return lines
		}

		head := wrapped[:fragBudget]
		firstSpace := strings.Index(head, " ")
		splitAt := strings.LastIndex(head, " ")
		if firstSpace >= 0 && splitAt > firstSpace {
			lines = append(lines, cmd+" "+target+" :"+string(ctcpDelim)+head[:splitAt]+string(ctcpDelim))
			wrapped = wrapped[splitAt+1:]
			continue
		}

		lines = append(lines, cmd+" "+target+" :"+string(ctcpDelim)+head+string(ctcpDelim))
		wrapped = wrapped[fragBudget:]
	}
}
