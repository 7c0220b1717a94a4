package transport

import (
	"net"

	"github.com/indigo-web/webroot/config"
)

// Transport is the listening side of the server.
type Transport interface {
	Bind(addr string) error
	Addr() net.Addr
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close() error
	Active() int
	CloseConns() int
}

var _ Transport = new(TCP)
