/*
Package ircdebug contains helper functions that are useful while writing an IRC client.
*/
package ircdebug

import (
	"io"

	irc "github.com/michael-fadely/libdirc"
)

// WriteTo wraps sock so that every Send buffer (one line, as Engine sends
// them) and every Receive chunk (which may hold several lines, or part of
// one) is also copied to w, prefixed once per call with outPrefix and
// inPrefix respectively. This is mainly
// useful while developing an IRC client like a bot, e.g. for writing to
// os.Stdout or a file.
// todo: it's not safe for concurrent usage, so replies are sometimes mixed in with connection reads
func WriteTo(w io.Writer, sock irc.Socket, outPrefix, inPrefix string) irc.Socket {
	return &debugSocket{
		Socket:    sock,
		outPrefix: &writePrefixer{w: w, prefix: outPrefix},
		inPrefix:  &writePrefixer{w: w, prefix: inPrefix},
	}
}

type debugSocket struct {
	irc.Socket
	outPrefix io.Writer
	inPrefix  io.Writer
}

func (dc *debugSocket) Send(p []byte) (int, error) {
	_, _ = dc.outPrefix.Write(p)
	return dc.Socket.Send(p)
}

func (dc *debugSocket) Receive(p []byte) (int, error) {
	n, err := dc.Socket.Receive(p)
	if n > 0 {
		_, _ = dc.inPrefix.Write(p[:n])
	}
	return n, err
}

type writePrefixer struct {
	w      io.Writer
	prefix string
}

func (wp *writePrefixer) Write(p []byte) (n int, err error) {
	n, err = wp.w.Write(append([]byte(wp.prefix), p...))

	// since the caller only ever checks n against len(p), lie about how
	// many bytes were written so a short count from the prefix itself
	// doesn't look like a partial write of the caller's data.
	if n > len(wp.prefix) {
		n -= len(wp.prefix)
	} else {
		n = 0
	}
	return n, err
}
