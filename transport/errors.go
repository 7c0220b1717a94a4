package transport

import (
	"net"
)

// BindError is returned when the listening socket can't be bound. It is fatal for the
// server startup.
type BindError struct {
	Addr string
	Err  error
}

func (b *BindError) Error() string {
	return "cannot listen on " + b.Addr + ": " + b.Err.Error()
}

func (b *BindError) Unwrap() error {
	return b.Err
}

// PortAvailable probes whether the address can be bound right now by binding and
// immediately releasing it.
func PortAvailable(addr string) bool {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}

	_ = l.Close()
	return true
}
