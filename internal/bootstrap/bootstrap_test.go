package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestContent(t *testing.T) {
	t.Run("creates missing root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "root")
		require.NoError(t, Content(root, "index.html", zerolog.Nop()))

		for _, name := range []string{"index.html", SecondaryFile, NotFoundFile} {
			data, err := os.ReadFile(filepath.Join(root, name))
			require.NoError(t, err)
			require.Contains(t, string(data), "<!DOCTYPE html>")
		}
	})

	t.Run("keeps existing files", func(t *testing.T) {
		root := t.TempDir()
		index := filepath.Join(root, "home.html")
		require.NoError(t, os.WriteFile(index, []byte("<html>OK</html>"), 0o644))

		require.NoError(t, Content(root, "home.html", zerolog.Nop()))
		data, err := os.ReadFile(index)
		require.NoError(t, err)
		require.Equal(t, "<html>OK</html>", string(data))

		_, err = os.Stat(filepath.Join(root, "index.html"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(root, nil, 0o644))
		require.Error(t, Content(root, "index.html", zerolog.Nop()))
	})
}
