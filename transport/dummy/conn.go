package dummy

import (
	"bytes"
	"errors"
	"io"
	"net"
	"time"
)

var errClosed = errors.New("dummy: use of closed connection")

// Conn is an in-memory net.Conn. Reads consume the initial data and return io.EOF
// afterwards, writes are accumulated in Data.
type Conn struct {
	Data     []byte
	Closed   bool
	CloseErr error
	input    *bytes.Reader
}

func NewConn(input []byte) *Conn {
	return &Conn{input: bytes.NewReader(input)}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.Closed {
		return 0, errClosed
	}

	if c.input == nil {
		return 0, io.EOF
	}

	return c.input.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.Closed {
		return 0, errClosed
	}

	c.Data = append(c.Data, b...)

	return len(b), nil
}

func (c *Conn) Close() error {
	c.Closed = true
	return c.CloseErr
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
