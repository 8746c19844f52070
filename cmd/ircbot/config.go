package main

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// config is the shape of ircbot.yaml: everything needed to connect, join a
// starting set of channels, and optionally identify to NickServ. The
// NickServ password itself lives in .env (NICKSERV_PASSWORD), not the
// YAML file, the way presbrey-pkg/irc/config splits secrets from the rest
// of its layered configuration.
type config struct {
	Server       string   `yaml:"server"`
	TLS          bool     `yaml:"tls"`
	Nick         string   `yaml:"nick"`
	User         string   `yaml:"user"`
	RealName     string   `yaml:"real_name"`
	Channels     []string `yaml:"channels"`
	NickServUser string   `yaml:"nickserv_user"`
}

func loadConfig(path, envPath string) (*config, error) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
