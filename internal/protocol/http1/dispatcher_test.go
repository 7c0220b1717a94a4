package http1

import (
	"bytes"
	"io"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/http"
	"github.com/indigo-web/webroot/kv"
	"github.com/indigo-web/webroot/transport/dummy"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// 16 bytes, including the trailing newline
const indexContent = "<html>OK</html>\n"

func getRoot(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(indexContent), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.jpeg"), []byte{0xff, 0xd8, 0xff}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "notes.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("secret"), 0o644))

	return root
}

func dispatch(t *testing.T, root, method, path string, keepAlive bool) (*stdhttp.Response, string, *http.Request) {
	cfg := config.Default()
	cfg.Server.Root = root
	s, conn := getSerializer(cfg)
	d := NewDispatcher(cfg, s, zerolog.Nop())

	request := http.NewRequest(kv.New())
	request.Method = method
	request.Path = path
	request.Protocol = "HTTP/1.1"
	request.KeepAlive = keepAlive
	require.NoError(t, d.Dispatch(request))

	resp := readResponse(t, conn.Data, method)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body), request
}

func TestDispatcher(t *testing.T) {
	root := getRoot(t)

	t.Run("root serves the default file", func(t *testing.T) {
		resp, body, request := dispatch(t, root, "GET", "/", true)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		require.Equal(t, "16", resp.Header.Get("Content-Length"))
		require.Equal(t, indexContent, body)
		require.Equal(t, filepath.Join(root, "index.html"), request.File)
		require.Empty(t, resp.Header.Values("Connection"))
	})

	t.Run("GET", func(t *testing.T) {
		resp, body, _ := dispatch(t, root, "GET", "/docs/notes.txt", true)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
		require.Equal(t, "notes", body)
	})

	t.Run("HEAD", func(t *testing.T) {
		get, _, _ := dispatch(t, root, "GET", "/image.jpeg", true)
		head, body, _ := dispatch(t, root, "HEAD", "/image.jpeg", true)
		require.Equal(t, stdhttp.StatusOK, head.StatusCode)
		require.Empty(t, body)
		require.Equal(t, "image/jpeg", head.Header.Get("Content-Type"))
		require.Equal(t, get.Header.Get("Content-Length"), head.Header.Get("Content-Length"))
		require.Equal(t, "3", head.Header.Get("Content-Length"))
	})

	t.Run("missing file", func(t *testing.T) {
		resp, body, _ := dispatch(t, root, "GET", "/missing.txt", true)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
		require.Equal(t, "text/html;charset=UTF-8", resp.Header.Get("Content-Type"))
		require.Contains(t, body, "missing.txt")
		require.Equal(t, strconv.Itoa(len(body)), resp.Header.Get("Content-Length"))
		require.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
	})

	t.Run("missing file is escaped", func(t *testing.T) {
		_, body, _ := dispatch(t, root, "GET", "/<script>.html", true)
		require.NotContains(t, body, "<script>")
		require.Contains(t, body, "&lt;script&gt;.html")
	})

	t.Run("HEAD of missing file has no body", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.Root = root
		s, conn := getSerializer(cfg)
		request := http.NewRequest(kv.New())
		request.Method, request.Path = "HEAD", "/missing.txt"
		require.NoError(t, NewDispatcher(cfg, s, zerolog.Nop()).Dispatch(request))

		require.True(t, bytes.HasSuffix(conn.Data, []byte("\r\n\r\n")))
		resp := readResponse(t, conn.Data, stdhttp.MethodHead)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
		require.Positive(t, resp.ContentLength)
	})

	t.Run("directory", func(t *testing.T) {
		resp, _, _ := dispatch(t, root, "GET", "/docs", true)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	})

	t.Run("unsupported method", func(t *testing.T) {
		resp, body, _ := dispatch(t, root, "POST", "/index.html", true)
		require.Equal(t, stdhttp.StatusNotImplemented, resp.StatusCode)
		require.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
		require.Equal(t, "text/html;charset=UTF-8", resp.Header.Get("Content-Type"))
		require.Contains(t, body, "POST")
		require.Equal(t, strconv.Itoa(len(body)), resp.Header.Get("Content-Length"))
	})

	t.Run("unsupported method on missing file", func(t *testing.T) {
		resp, _, _ := dispatch(t, root, "DELETE", "/missing.txt", true)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	})

	t.Run("parent directory traversal", func(t *testing.T) {
		want, wantBody, _ := dispatch(t, root, "GET", "/", true)

		for _, path := range []string{"/../secret.txt", "/docs/../../secret.txt", `/..\secret.txt`, "/.."} {
			resp, body, request := dispatch(t, root, "GET", path, true)
			require.Equal(t, want.StatusCode, resp.StatusCode, path)
			require.Equal(t, want.Header.Get("Content-Length"), resp.Header.Get("Content-Length"), path)
			require.Equal(t, wantBody, body, path)
			require.Equal(t, filepath.Join(root, "index.html"), request.File, path)
		}
	})

	t.Run("connection close", func(t *testing.T) {
		resp, _, _ := dispatch(t, root, "GET", "/missing.txt", false)
		require.Equal(t, "close", resp.Header.Get("Connection"))
		require.True(t, resp.Close)
	})
}

func TestSanitize(t *testing.T) {
	for _, tc := range []struct {
		Path, Want string
	}{
		{"/", "index.html"},
		{"", "index.html"},
		{"/..", "index.html"},
		{"/a/../b", "index.html"},
		{`\..\b`, "index.html"},
		{"/a..b", "/a..b"},
		{"/..a/b", "/..a/b"},
		{"/index2.html", "/index2.html"},
		{"/docs/", "/docs/"},
		{"/file.txt?query=1", "/file.txt?query=1"},
		{"/with%20space", "/with%20space"},
	} {
		require.Equal(t, tc.Want, Sanitize(tc.Path, "index.html"), tc.Path)
	}
}

func TestResolve(t *testing.T) {
	require.Equal(t, filepath.Join("root", "a", "b.txt"), Resolve("root", "/a/b.txt"))
	require.Equal(t, filepath.Join("root", "index.html"), Resolve("root", "index.html"))
}
