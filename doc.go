/*
Package irc provides a client-side engine for the IRC protocol.

It owns no network addressing or TLS policy of its own: the caller dials a
Socket (a plain TCP connection via DialPlain, a TLS one via DialTLS, or a
test double from package irctest) and hands it to Engine.Connect. From
there, the embedding application drives the connection itself by calling
Poll in a loop:

	e := irc.New("nyx", "nyx", "")
	sock, err := irc.DialPlain("irc.example.net:6667")
	if err != nil {
		log.Fatal(err)
	}
	if err := e.Connect(sock, ""); err != nil {
		log.Fatal(err)
	}
	e.Events().OnConnect(func(*irc.Event) {
		_ = e.Join("#lobby", "")
	})
	for e.Poll() {
		time.Sleep(100 * time.Millisecond)
	}

Poll is non-blocking and cooperative: it pulls whatever bytes are
currently available, frames them into complete protocol lines, parses and
dispatches each one, and runs the keep-alive check, then returns. There
are no internal goroutines or timers; all timing is driven by the host's
poll cadence and a Clock collaborator. The Engine always uses time.Now;
the keep-alive FSM and user idle tracking take a Clock that the package's
own unit tests replace.

State tracking

Engine maintains a live model of the client's view of the network: the
channels it has joined (GetChannel looks one up by name), and for each
one the set of members and their channel-user privileges
(Channel.Members, Channel.Mode). GetUser resolves a tracked identity by
nick. This model updates as JOIN,
PART, KICK, QUIT, NICK, and MODE lines arrive, before the corresponding
event fires.

Events

Events is an ordered set of callback lists, one per event kind (the Ev*
constants). Register with Events.On; callbacks run synchronously, in
registration order, from inside Poll. The one exception is
Events.OnNickInUse, which is a short-circuiting Boolean protocol: the
first registered handler to return true is considered to have resolved a
433 nickname collision (typically by calling SetNick with an alternate),
and later handlers don't run. If none claim it, the engine disconnects.

Sending

Send, Notice, CtcpQuery, and CtcpReply automatically fragment oversized
payloads across as many protocol lines as the wire's length budget
requires — callers never need to chunk messages by hand. Join, Part,
Kick, Mode and its Add/Remove convenience wrappers, Whois, Who, and Raw
round out the outbound surface.
*/
package irc
