package transport

import (
	"io"
	"net"
	"time"
)

// Client is a connection exclusively owned by a single connection handler.
type Client interface {
	io.Reader
	io.Writer
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

type client struct {
	conn    net.Conn
	timeout time.Duration
}

func NewClient(conn net.Conn, timeout time.Duration) Client {
	return &client{
		conn:    conn,
		timeout: timeout,
	}
}

// Read reads from the underlying connection. Every read is bounded by the idle timeout, so
// a peer that stays silent longer than the timeout fails the read with os.ErrDeadlineExceeded.
func (c *client) Read(b []byte) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}

	return c.conn.Read(b)
}

// Write writes data into the underlying connection. No deadline is applied.
func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// Conn unwraps the underlying net.Conn.
func (c *client) Conn() net.Conn {
	return c.conn
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
