package irc

import (
	"crypto/tls"
	"net"
	"time"
)

// Socket is the transport collaborator the Engine drives. It deliberately
// exposes nothing about addressing or transport security: dialing and TLS
// configuration happen before a Socket reaches the Engine, matching
// spec §1's "out of scope: address resolution, TLS/transport selection".
type Socket interface {
	// Send writes p to the connection. It may block briefly but must not
	// wait indefinitely (spec §5: outbound writes are "small and bounded").
	Send(p []byte) (int, error)

	// Receive reads into p without blocking. If no data is currently
	// available it returns ErrWouldBlock. Any other non-nil error
	// (including io.EOF) is terminal for the connection.
	Receive(p []byte) (int, error)

	// Alive reports whether the connection is still usable.
	Alive() bool

	// Shutdown closes the connection. Calling it more than once is safe.
	Shutdown() error
}

// readDeadlineSlop is how long a single Receive call is allowed to wait for
// at least one byte before reporting ErrWouldBlock. It stands in for a true
// non-blocking socket mode, which the net package doesn't expose directly.
const readDeadlineSlop = 10 * time.Millisecond

// tcpSocket adapts a net.Conn to the Socket interface using a short read
// deadline per Receive call, the way the teacher's Client used a DialFn
// collaborator to stay agnostic of the concrete transport.
type tcpSocket struct {
	conn  net.Conn
	alive bool
}

// DialPlain opens a plain (unencrypted) TCP connection to addr.
func DialPlain(addr string) (Socket, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errIO(err)
	}
	return &tcpSocket{conn: conn, alive: true}, nil
}

// DialTLS opens a TLS connection to addr. conf may be nil to use defaults.
func DialTLS(addr string, conf *tls.Config) (Socket, error) {
	conn, err := tls.Dial("tcp", addr, conf)
	if err != nil {
		return nil, errIO(err)
	}
	return &tcpSocket{conn: conn, alive: true}, nil
}

func (s *tcpSocket) Send(p []byte) (int, error) {
	n, err := s.conn.Write(p)
	if err != nil {
		s.alive = false
		return n, errIO(err)
	}
	return n, nil
}

func (s *tcpSocket) Receive(p []byte) (int, error) {
	_ = s.conn.SetReadDeadline(time.Now().Add(readDeadlineSlop))
	n, err := s.conn.Read(p)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, ErrWouldBlock
		}
		s.alive = false
		return n, errIO(err)
	}
	return n, nil
}

func (s *tcpSocket) Alive() bool {
	return s.alive
}

func (s *tcpSocket) Shutdown() error {
	if !s.alive {
		return nil
	}
	s.alive = false
	return s.conn.Close()
}
