package config

import "time"

// Config is the beacon's runtime configuration, assembled once from
// the command line during startup and never re-queried.
type Config struct {
	Origin      string
	Interfaces  []string
	Interval    time.Duration
	Dry         bool
	OnError     string
	MetricsAddr string
	Mqtt        Mqtt
	Keys        Keys
}

type Mqtt struct {
	BrokerUrl,
	Topic string
}

// Keys points at the certificate files; empty paths mean sealing is
// disabled.
type Keys struct {
	ServerPublic,
	ClientSecret string
}
