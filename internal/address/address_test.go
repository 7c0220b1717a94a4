package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid ip and port", func(t *testing.T) {
		addr, err := Parse("localhost:8080")
		require.NoError(t, err)
		require.Equal(t, "localhost", addr.Host)
		require.Equal(t, 8080, int(addr.Port))
		require.Equal(t, "localhost:8080", addr.String())
	})

	t.Run("no ip but port", func(t *testing.T) {
		addr, err := Parse(":8080")
		require.NoError(t, err)
		require.Equal(t, DefaultHost, addr.Host)
		require.Equal(t, 8080, int(addr.Port))
	})

	t.Run("loopback ip", func(t *testing.T) {
		addr, err := Parse("127.0.0.1:0")
		require.NoError(t, err)
		require.Zero(t, addr.Port)
	})

	t.Run("only ip", func(t *testing.T) {
		_, err := Parse("localhost")
		require.ErrorIs(t, err, ErrNoPort)
		require.Equal(t, "no port given", err.Error())
	})

	t.Run("empty port", func(t *testing.T) {
		_, err := Parse("localhost:")
		require.ErrorIs(t, err, ErrNoPort)
	})

	t.Run("too big port", func(t *testing.T) {
		_, err := Parse(":65536")
		require.Error(t, err)
		require.Equal(t, "invalid port: 65536", err.Error())
	})
}
