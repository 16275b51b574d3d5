package backend

import (
	"net"
	"strconv"

	"title-reader/config"
)

// Endpoint is where the backend listens for control-protocol clients.
type Endpoint struct {
	Host string
	Port int
}

func NewEndpoint(cfg *config.Config) Endpoint {
	return Endpoint{Host: cfg.Browser.Host, Port: cfg.Browser.Port}
}

func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) WebSocketURL() string {
	return "ws://" + e.Addr()
}

func (e Endpoint) VersionURL() string {
	return "http://" + e.Addr() + "/json/version"
}
