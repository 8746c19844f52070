package irc

import (
	"bytes"
	"errors"
)

// maxLineBytes is the IRC maximum line length, CRLF included (spec §4.1).
const maxLineBytes = 512

// ErrWouldBlock is returned by a Socket's Receive when no data is currently
// available and the caller should try again on a later poll.
var ErrWouldBlock = newError(KindIO, "would block")

// framer turns a stream of bytes read in arbitrary chunks into complete,
// CRLF-delimited protocol lines. It owns a single carry buffer across
// polls: bytes read past the last "\r\n" boundary are held until the next
// read completes them.
//
// Per spec §9 (i), this implementation splits strictly on "\r\n" and
// computes the carryover from the last such boundary, rather than the
// teacher's original approach (and the one some IRC clients use) of
// splitting on the last '\n' — the stricter rule is unambiguous even when
// a chunk boundary falls between the '\r' and the '\n'.
type framer struct {
	carry []byte
}

// poll performs at most one read from sock (none when the carry already
// fills maxLineBytes) and returns the complete lines
// produced by combining it with any carried-over bytes, plus whether any
// bytes were actually received this call. A would-block receive is not an
// error; it simply yields no lines and read == false.
//
// read can be true with zero lines returned: a chunk that extends the
// carry without completing a "\r\n" boundary is still inbound traffic
// (spec §4.8, "any inbound traffic clears timingOut"), even though no
// complete line is ready to dispatch yet.
func (f *framer) poll(sock Socket) (lines [][]byte, read bool, err error) {
	budget := maxLineBytes - len(f.carry)
	if budget <= 0 {
		// Per spec §4.1: a carry already at or past the maximum line length
		// reads nothing this poll, rather than discarding the carry. The
		// line is malformed either way, but the carry is left for whatever
		// eventually terminates it (or for reset on disconnect).
		return nil, false, nil
	}

	scratch := make([]byte, budget)
	n, rerr := sock.Receive(scratch)
	if rerr != nil {
		if errIsWouldBlock(rerr) {
			return nil, false, nil
		}
		return nil, false, rerr
	}

	buf := append(f.carry, scratch[:n]...)

	for {
		idx := bytes.Index(buf, []byte("\r\n"))
		if idx < 0 {
			break
		}
		if idx > 0 {
			lines = append(lines, buf[:idx])
		}
		buf = buf[idx+2:]
	}

	f.carry = append([]byte(nil), buf...)
	return lines, n > 0, nil
}

// reset discards any partial line held in the carry buffer. Called on
// disconnect per spec §7 ("the overflow buffer is cleared").
func (f *framer) reset() {
	f.carry = nil
}

func errIsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}
