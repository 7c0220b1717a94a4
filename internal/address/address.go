package address

import (
	"errors"
	"net"
	"strconv"
)

const DefaultHost = "0.0.0.0"

var ErrNoPort = errors.New("no port given")

type Address struct {
	Host string
	Port uint16
}

// Parse parses host:port. The host may be omitted, in which case all the interfaces
// are listened.
func Parse(addr string) (Address, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		if _, _, ferr := net.SplitHostPort(addr + ":0"); ferr == nil {
			return Address{}, ErrNoPort
		}

		return Address{}, err
	}

	if len(port) == 0 {
		return Address{}, ErrNoPort
	}

	portNum, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return Address{}, errors.New("invalid port: " + port)
	}

	if len(host) == 0 {
		host = DefaultHost
	}

	return Address{
		Host: host,
		Port: uint16(portNum),
	}, nil
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(int(a.Port)))
}
