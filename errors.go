package irc

import "fmt"

// Kind classifies an Error so that callers can branch on errors.As without
// string-matching messages.
type Kind int

const (
	_ Kind = iota
	KindNotConnected
	KindAlreadyConnected
	KindInvalidArgument
	KindNotAChannel
	KindChannelNotTracked
	KindNickTooLong
	KindInUseWhileConnected
	KindProtocolError
	KindServerError
	KindNickInUseUnhandled
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotConnected:
		return "not connected"
	case KindAlreadyConnected:
		return "already connected"
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotAChannel:
		return "not a channel"
	case KindChannelNotTracked:
		return "channel not tracked"
	case KindNickTooLong:
		return "nick too long"
	case KindInUseWhileConnected:
		return "cannot be changed while connected"
	case KindProtocolError:
		return "protocol error"
	case KindServerError:
		return "server error"
	case KindNickInUseUnhandled:
		return "nick in use and unhandled"
	case KindIO:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every Engine operation that spec.md
// §7 describes as a "structured failure". Text carries the server's own
// message for KindServerError, and a short human description otherwise.
type Error struct {
	Kind Kind
	Text string
	err  error // wrapped cause, e.g. the socket's underlying error
}

func (e *Error) Error() string {
	if e.Text == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Text)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target has a Kind() Kind method returning e's Kind.
// Kind itself has no such method and does not implement error, so a bare
// Kind value cannot be passed to errors.Is; no type in this package
// satisfies that method either.
func (e *Error) Is(target error) bool {
	if k, ok := target.(interface{ Kind() Kind }); ok {
		return e.Kind == k.Kind()
	}
	return false
}

func newError(k Kind, text string) *Error {
	return &Error{Kind: k, Text: text}
}

func wrapError(k Kind, cause error) *Error {
	return &Error{Kind: k, Text: cause.Error(), err: cause}
}

func errNotConnected() error          { return newError(KindNotConnected, "") }
func errAlreadyConnected() error      { return newError(KindAlreadyConnected, "") }
func errInvalidArgument(s string) error { return newError(KindInvalidArgument, s) }
func errNotAChannel(name string) error  { return newError(KindNotAChannel, name) }
func errChannelNotTracked(name string) error {
	return newError(KindChannelNotTracked, name)
}
func errNickTooLong(nick string, max int) error {
	return newError(KindNickTooLong, fmt.Sprintf("%q exceeds %d bytes", nick, max))
}
func errInUseWhileConnected(field string) error {
	return newError(KindInUseWhileConnected, field)
}
func errProtocol(text string) error { return newError(KindProtocolError, text) }
func errServer(text string) error   { return newError(KindServerError, text) }
func errNickInUseUnhandled(nick string) error {
	return newError(KindNickInUseUnhandled, nick)
}
func errIO(cause error) error { return wrapError(KindIO, cause) }
