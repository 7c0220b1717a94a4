package transport

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/indigo-web/webroot/config"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP owns the listening socket and the accept loop. Every accepted connection is
// handed over to the worker pool.
type TCP struct {
	l      listener
	pool   *Pool
	conns  *xsync.MapOf[net.Conn, struct{}]
	stop   *atomic.Bool
	logger zerolog.Logger
}

func NewTCP(pool *Pool, logger zerolog.Logger) *TCP {
	return &TCP{
		pool:   pool,
		conns:  xsync.NewMapOf[net.Conn, struct{}](),
		stop:   new(atomic.Bool),
		logger: logger,
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

// Bind binds the listening socket. The returned error, if any, is a *BindError.
func (t *TCP) Bind(addr string) error {
	l, err := bindTCP(addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}

	t.l = l
	return nil
}

// Addr returns the address the socket is bound to. Must be called after Bind.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen runs the accept loop until Stop is called or the listener gets closed. Accept
// failures are logged and don't terminate the loop. The callback is executed by the
// pool and owns the connection: it is responsible for closing it.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	var tempDelay time.Duration

	for !t.stop.Load() {
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			if t.stop.Load() {
				return nil
			}

			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				continue
			case errors.Is(err, net.ErrClosed):
				if t.stop.Load() {
					return nil
				}

				return err
			}

			// most likely running out of file descriptors. Back off a little in order
			// not to spin.
			tempDelay = backoff(tempDelay)
			t.logger.Error().Err(err).Dur("retry_in", tempDelay).Msg("cannot accept connection")
			time.Sleep(tempDelay)
			continue
		}

		tempDelay = 0
		t.serve(conn, cb)
	}

	return nil
}

func (t *TCP) serve(conn net.Conn, cb func(net.Conn)) {
	t.conns.Store(conn, struct{}{})

	err := t.pool.Submit(func() {
		defer t.conns.Delete(conn)
		cb(conn)
	})
	if err != nil {
		t.conns.Delete(conn)
		_ = conn.Close()
		t.logger.Error().Err(err).Stringer("remote", conn.RemoteAddr()).Msg("cannot submit connection")
	}
}

// Stop makes the accept loop exit at its next iteration, which happens at most
// AcceptLoopInterruptPeriod later.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

// Close closes the listening socket.
func (t *TCP) Close() error {
	return t.l.Close()
}

// Active returns the number of connections, which are either being served or are
// waiting for a free worker.
func (t *TCP) Active() int {
	return t.conns.Size()
}

// CloseConns forcefully closes every connection still alive, including queued ones.
// Blocked reads and writes of their handlers fail immediately.
func (t *TCP) CloseConns() (closed int) {
	t.conns.Range(func(conn net.Conn, _ struct{}) bool {
		_ = conn.Close()
		closed++
		return true
	})

	return closed
}

func backoff(delay time.Duration) time.Duration {
	const maxDelay = time.Second

	if delay == 0 {
		return 5 * time.Millisecond
	}

	return min(delay*2, maxDelay)
}
