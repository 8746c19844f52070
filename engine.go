package irc

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Engine is the client-side protocol engine: the framer, parser, splitter,
// tracker, dispatcher and keep-alive FSM wired together behind a single
// non-blocking poll loop, per spec §2/§5. It holds no network-addressing
// or TLS policy of its own — the caller dials a Socket and hands it to
// Connect.
type Engine struct {
	nick string
	user string
	real string

	sock      Socket
	framer    framer
	clock     Clock
	tracker   *Tracker
	events    *Events
	keepAlive *keepAlive

	connected bool

	log *logrus.Entry
	id  uuid.UUID
}

// New constructs a disconnected Engine identified by nick/user/realName.
// realName defaults to user when empty, matching common client behavior.
func New(nick, user, realName string) *Engine {
	if realName == "" {
		realName = user
	}
	id := uuid.New()
	return &Engine{
		nick:   nick,
		user:   user,
		real:   realName,
		clock:  realClock{},
		events: newEvents(),
		id:     id,
		log: logrus.WithFields(logrus.Fields{
			"component": "irc.Engine",
			"engine_id": id.String(),
		}),
	}
}

// Events returns the engine's callback registry, for On*/OnNickInUse calls.
func (e *Engine) Events() *Events { return e.events }

// GetUser looks up a tracked user by nick.
func (e *Engine) GetUser(nick string) (*User, bool) {
	if e.tracker == nil {
		return nil, false
	}
	return e.tracker.User(nick)
}

// GetChannel looks up a tracked channel by name.
func (e *Engine) GetChannel(name string) (*Channel, bool) {
	if e.tracker == nil {
		return nil, false
	}
	return e.tracker.Channel(name)
}

// Nick returns the engine's current nickname.
func (e *Engine) Nick() string { return e.nick }

// User returns the engine's configured username.
func (e *Engine) User() string { return e.user }

// Real returns the engine's configured real name.
func (e *Engine) Real() string { return e.real }

// SetUser changes the username used at registration. It fails with
// InUseWhileConnected once a connection is established, since USER can
// only be sent once per session.
func (e *Engine) SetUser(user string) error {
	if e.connected {
		return errInUseWhileConnected("user")
	}
	e.user = user
	return nil
}

// SetReal changes the real name used at registration, under the same
// restriction as SetUser.
func (e *Engine) SetReal(real string) error {
	if e.connected {
		return errInUseWhileConnected("real")
	}
	e.real = real
	return nil
}

// SetNick changes the nickname. If a maxNickLength has been negotiated
// (spec §3, network info from 005) and nick exceeds it, the change is
// rejected. If already connected, a NICK command is sent immediately;
// the tracked identity updates when the server echoes it back.
func (e *Engine) SetNick(nick string) error {
	if e.tracker != nil {
		if max := e.tracker.network.MaxNickLength; max > 0 && len(nick) > max {
			return errNickTooLong(nick, max)
		}
	}
	if e.connected {
		return e.rawf(CmdNick + " " + nick)
	}
	e.nick = nick
	return nil
}

// Connect registers a connection over sock: optionally sends PASS, then
// USER and NICK. It fails AlreadyConnected if already connected.
func (e *Engine) Connect(sock Socket, password string) error {
	if e.connected {
		return errAlreadyConnected()
	}
	e.sock = sock
	e.framer = framer{}
	e.clock = realClock{}
	e.tracker = newTracker(e.nick, e.clock)
	e.keepAlive = newKeepAlive(e.clock)
	e.connected = true

	e.log.Info("connecting")

	if password != "" {
		if err := e.rawf(BuildLineNoCRLF(CmdPass, password)); err != nil {
			return err
		}
	}
	if err := e.rawf(BuildLineNoCRLF(CmdUser, e.user, "0", "*", e.real)); err != nil {
		return err
	}
	return e.rawf(BuildLineNoCRLF(CmdNick, e.nick))
}

// disconnect tears the connection down, clearing tracked state and
// resetting the overflow buffer (spec §7).
func (e *Engine) disconnect(cause error) {
	if !e.connected {
		return
	}
	e.connected = false
	if e.sock != nil {
		_ = e.sock.Shutdown()
	}
	e.framer.reset()
	e.tracker = nil
	e.log.WithError(cause).Warn("disconnected")
}

// Quit sends QUIT (optionally with msg) and shuts the connection down.
// Calling Quit when already disconnected is a no-op, satisfying the
// idempotent-disconnect property (spec §8).
func (e *Engine) Quit(msg string) error {
	if !e.connected {
		return nil
	}
	if msg == "" {
		_ = e.rawf(CmdQuit)
	} else {
		_ = e.rawf(BuildLineNoCRLF(CmdQuit, msg))
	}
	e.disconnect(nil)
	return nil
}

// Poll drives one non-blocking iteration: pull available bytes, frame
// them into lines, parse and dispatch each, then run the keep-alive
// check. It returns false once the engine has disconnected (spec §6).
func (e *Engine) Poll() bool {
	if !e.connected {
		return false
	}

	lines, read, err := e.framer.poll(e.sock)
	if err != nil {
		e.log.WithError(err).Warn("receive failed")
		e.disconnect(err)
		return false
	}

	if read {
		e.keepAlive.touch()
	}

	if len(lines) == 0 {
		if !read {
			switch e.keepAlive.check() {
			case keepAlivePing:
				_ = e.rawf(BuildLineNoCRLF(CmdPing, "12345"))
			case keepAliveDisconnect:
				e.disconnect(errIO(errServer("keep-alive timeout")))
				return false
			}
		}
		return e.connected
	}

	for _, raw := range lines {
		msg, perr := ParseLine(string(raw))
		if perr != nil {
			e.log.WithError(perr).WithField("raw", string(raw)).Debug("dropping malformed line")
			continue
		}
		if derr := e.dispatch(msg); derr != nil {
			if isFatalDispatchError(derr) {
				e.disconnect(derr)
				return false
			}
			e.log.WithError(derr).Debug("dispatch error")
		}
		if !e.connected {
			return false
		}
	}
	return true
}

func isFatalDispatchError(err error) bool {
	var ie *Error
	if as, ok := err.(*Error); ok {
		ie = as
	}
	if ie == nil {
		return false
	}
	return ie.Kind == KindServerError || ie.Kind == KindNickInUseUnhandled
}

// rawf sends a fully-formed protocol line (without CRLF; Raw appends it)
// and touches the keep-alive clock, matching spec §4.8 ("updated on every
// ... outbound send").
func (e *Engine) rawf(line string) error {
	return e.Raw(line)
}

// Raw sends line verbatim, appending the CRLF terminator. It fails
// NotConnected if the socket has been shut down.
func (e *Engine) Raw(line string) error {
	if !e.connected || e.sock == nil {
		return errNotConnected()
	}
	if e.keepAlive != nil {
		e.keepAlive.touchOutbound()
	}
	_, err := e.sock.Send([]byte(line + "\r\n"))
	if err != nil {
		return errIO(err)
	}
	return nil
}

// BuildLineNoCRLF formats cmd and args the way BuildLine does, but without
// appending the trailing CRLF — for callers (like Engine.rawf) that add it
// themselves after further processing.
func BuildLineNoCRLF(cmd string, args ...string) string {
	return strings.TrimSuffix(BuildLine(cmd, args...), "\r\n")
}
