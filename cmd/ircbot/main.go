// Command ircbot is a minimal logging bot built on package irc: it
// connects, joins the channels listed in its config, logs chat activity,
// and answers CTCP VERSION/PING/TIME queries.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	irc "github.com/michael-fadely/libdirc"
)

func main() {
	configPath := flag.String("config", "ircbot.yaml", "path to the bot's YAML config")
	envPath := flag.String("env", ".env", "path to a .env file holding NICKSERV_PASSWORD")
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig(*configPath, *envPath)
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	e := irc.New(cfg.Nick, cfg.User, cfg.RealName)
	wireEvents(e, cfg, log)

	sock, err := dial(cfg)
	if err != nil {
		log.WithError(err).Fatal("dialing server")
	}

	if err := e.Connect(sock, ""); err != nil {
		log.WithError(err).Fatal("connecting")
	}

	for e.Poll() {
		time.Sleep(100 * time.Millisecond)
	}
	log.Info("disconnected, exiting")
}

func dial(cfg *config) (irc.Socket, error) {
	if cfg.TLS {
		return irc.DialTLS(cfg.Server, nil)
	}
	return irc.DialPlain(cfg.Server)
}

func wireEvents(e *irc.Engine, cfg *config, log *logrus.Logger) {
	ev := e.Events()

	ev.OnConnect(func(*irc.Event) {
		log.Info("connected")
		if pw := os.Getenv("NICKSERV_PASSWORD"); pw != "" && cfg.NickServUser != "" {
			_ = e.Send("NickServ", "IDENTIFY "+cfg.NickServUser+" "+pw)
		}
		for _, ch := range cfg.Channels {
			if err := e.Join(ch, ""); err != nil {
				log.WithError(err).WithField("channel", ch).Warn("joining channel")
			}
		}
	})

	ev.On(irc.EvSuccessfulJoin, func(ev *irc.Event) {
		log.WithField("channel", ev.Channel).Info("joined channel")
	})

	ev.On(irc.EvJoin, func(ev *irc.Event) {
		log.WithFields(logrus.Fields{"channel": ev.Channel, "nick": ev.User.Nick()}).Info("user joined")
	})

	ev.On(irc.EvPart, func(ev *irc.Event) {
		log.WithFields(logrus.Fields{"channel": ev.Channel, "nick": ev.User.Nick()}).Info("user parted")
	})

	ev.On(irc.EvMessage, func(ev *irc.Event) {
		log.WithFields(logrus.Fields{"target": ev.Target, "from": ev.User.Nick()}).Info(ev.Text)
	})

	ev.On(irc.EvCTCPQuery, func(ev *irc.Event) {
		switch ev.Tag {
		case "VERSION":
			_ = e.CtcpReply(ev.User.Nick(), "VERSION", "libdirc bot")
		case "PING":
			_ = e.CtcpReply(ev.User.Nick(), "PING", ev.Text)
		case "TIME":
			_ = e.CtcpReply(ev.User.Nick(), "TIME", time.Now().Format(time.RFC1123))
		}
	})

	ev.OnNickInUse(func(oldNick string) bool {
		alt := oldNick + "_"
		log.WithFields(logrus.Fields{"old": oldNick, "new": alt}).Warn("nick in use, trying alternate")
		return e.SetNick(alt) == nil
	})
}
