package irc

import "strings"

// ParseLine parses a single IRC line (without the trailing CRLF) into a
// Message, following the grammar in spec §4.2.
//
// This is a direct, single-pass scan rather than a lexer/state-machine:
// the grammar here isn't RFC-standard token-by-token parsing (it has its
// own tag-termination rule and a ':'-fallback for missing-space args), and
// a linear scan over one short line doesn't benefit from the concurrency a
// channel-driven FSM would add. Grounded on ergochat/irc-go's
// ircmsg.ParseLine, which takes the same direct-scan approach.
func ParseLine(line string) (*Message, error) {
	m := &Message{}

	if strings.HasPrefix(line, "@") {
		tagBlock, rest, err := splitTags(line)
		if err != nil {
			return nil, err
		}
		if tagBlock != "" {
			m.Tags = Tags(strings.Split(tagBlock, ";"))
		}
		line = rest
	}

	if strings.HasPrefix(line, ":") {
		line = line[1:]
		var tok string
		tok, line = cutToken(line)
		m.Prefix = ParsePrefix(tok)
		line = strings.TrimLeft(line, " ")
	}

	var cmd string
	cmd, line = cutToken(line)
	m.Command = cmd

	m.Args = parseArgs(line)

	return m, nil
}

// splitTags consumes the leading '@'-prefixed tag block. Per spec §4.2.1:
// scan forward from after '@' for the first ':' in the line; if the byte
// immediately before that ':' is a space, the substring from '@' (exclusive)
// to that space (exclusive) is the tag block, and parsing resumes after the
// space. Otherwise, advance past that colon and keep searching. No such
// colon at all is a malformed line.
func splitTags(line string) (tagBlock, rest string, err error) {
	body := line[1:] // drop '@'
	searchFrom := 0
	for {
		idx := strings.IndexByte(body[searchFrom:], ':')
		if idx < 0 {
			return "", "", errProtocol("malformed tag block: no prefix/command found")
		}
		idx += searchFrom
		if idx > 0 && body[idx-1] == ' ' {
			tagBlock = body[:idx-1]
			rest = body[idx:]
			return tagBlock, rest, nil
		}
		searchFrom = idx + 1
	}
}

// cutToken returns the first whitespace-delimited token in s and the
// remainder of s after it (with no leading-space trimming applied to the
// remainder beyond the single split).
func cutToken(s string) (token, rest string) {
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// parseArgs implements spec §4.2.4: split on " :" (first occurrence) into
// head and trailing; if that separator is absent, split on ":" (first
// occurrence) as a compatibility fallback for servers that omit the space.
// The head is whitespace-split into tokens; a trailing portion, if any, is
// appended as one final argument verbatim (including any internal spaces).
func parseArgs(s string) []string {
	if s == "" {
		return nil
	}

	var head, trailing string
	hasTrailing := false

	if i := strings.Index(s, " :"); i >= 0 {
		head, trailing = s[:i], s[i+2:]
		hasTrailing = true
	} else if i := strings.IndexByte(s, ':'); i >= 0 {
		head, trailing = s[:i], s[i+1:]
		hasTrailing = true
	} else {
		head = s
	}

	var args []string
	for _, f := range strings.Fields(head) {
		args = append(args, f)
	}
	if hasTrailing {
		args = append(args, trailing)
	}
	return args
}
