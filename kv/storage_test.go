package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("first occurrence wins", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, "World", kv.Value("hello"))
		require.Equal(t, "World", kv.Value("HELLO"))

		value, found := kv.Get("Foo")
		require.True(t, found)
		require.Equal(t, "bar", value)
	})

	t.Run("missing key", func(t *testing.T) {
		kv := getHeaders()
		value, found := kv.Get("Connection")
		require.False(t, found)
		require.Empty(t, value)
		require.Empty(t, kv.Value("Connection"))
		require.Equal(t, "ipsum", kv.Value("lorem"))
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, 4, kv.Len())
		require.Equal(t, "World", kv.Value("hello"))
	})

	t.Run("clear", func(t *testing.T) {
		kv := getHeaders().Clear()
		require.Zero(t, kv.Len())
		kv.Add("Host", "localhost")
		require.Equal(t, "localhost", kv.Value("host"))
	})
}
