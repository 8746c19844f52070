// Package irctest provides an in-memory mock IRC server for exercising an
// Engine without a real TCP connection.
package irctest

import (
	"strings"
	"sync"

	irc "github.com/michael-fadely/libdirc"
)

// NewServer creates a mock server implementing irc.Socket. Lines queued
// with WriteString are delivered to the Engine on its next non-blocking
// Receive; lines the Engine sends are recorded and retrievable with Sent.
func NewServer() *Server {
	return &Server{}
}

// Server is a Socket-compatible stand-in for a live connection. It has no
// goroutines of its own: Receive and Send are plain buffered operations
// guarded by a mutex, matching the non-blocking contract Engine.Poll
// expects from a real socket.
type Server struct {
	mu       sync.Mutex
	toClient []byte
	sent     [][]byte
	closed   bool
}

// Send records a line the client sent, as the Engine would via a real
// Socket's Send.
func (s *Server) Send(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, irc.ErrWouldBlock
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	s.sent = append(s.sent, cp)
	return len(p), nil
}

// Receive copies queued server-to-client bytes into p, or reports
// ErrWouldBlock if nothing has been queued since the last call.
func (s *Server) Receive(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.toClient) == 0 {
		return 0, irc.ErrWouldBlock
	}
	n := copy(p, s.toClient)
	s.toClient = s.toClient[n:]
	return n, nil
}

// Alive reports whether Shutdown has been called yet.
func (s *Server) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Shutdown marks the mock connection closed. Safe to call more than once.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// WriteString queues str (appending "\r\n" if missing) to be delivered to
// the client on its next Receive call(s).
func (s *Server) WriteString(str string) {
	if !strings.HasSuffix(str, "\r\n") {
		str += "\r\n"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toClient = append(s.toClient, []byte(str)...)
}

// Sent returns every line the client has sent so far, oldest first.
func (s *Server) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	for i, b := range s.sent {
		out[i] = string(b)
	}
	return out
}
