package serve

import (
	"net"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/internal/protocol/http1"
	"github.com/indigo-web/webroot/transport"
	"github.com/rs/zerolog"
)

// HTTP1 serves the connection until it is closed. Unlike the listener, the connection
// is closed by the handler itself.
func HTTP1(cfg *config.Config, conn net.Conn, logger zerolog.Logger) {
	connLogger := logger.With().
		Str("conn", uniuri.NewLen(8)).
		Stringer("remote", conn.RemoteAddr()).
		Logger()
	client := transport.NewClient(conn, cfg.NET.ReadTimeout)
	http1.New(cfg, client, connLogger).Serve()
}
