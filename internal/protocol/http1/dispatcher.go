package http1

import (
	"bytes"
	"errors"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/http"
	"github.com/indigo-web/webroot/http/method"
	"github.com/indigo-web/webroot/http/mime"
	"github.com/indigo-web/webroot/http/status"
	"github.com/rs/zerolog"
)

// Dispatcher maps requests onto files below the web-root and answers them. Request-level
// failures (missing file, unsupported method) never leave it: they are answered with
// 404 and 501 respectively.
type Dispatcher struct {
	cfg        *config.Config
	serializer *Serializer
	logger     zerolog.Logger
	body       bytes.Buffer
}

func NewDispatcher(cfg *config.Config, serializer *Serializer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:        cfg,
		serializer: serializer,
		logger:     logger,
	}
}

// Dispatch answers the request. The returned error is always a transport error, after
// which the connection must not be used anymore.
func (d *Dispatcher) Dispatch(request *http.Request) error {
	path := Sanitize(request.Path, d.cfg.Server.DefaultFile)
	request.File = Resolve(d.cfg.Server.Root, path)

	file, info, err := open(request.File)
	if err != nil {
		// headers are sent only once the file is known to exist, because only then
		// the Content-Length is known.
		d.logger.Debug().Err(err).Str("file", request.File).Msg("cannot open requested file")
		return d.respondError(request, status.ErrNotFound, request.Path)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil {
			d.logger.Error().Err(cerr).Str("file", request.File).Msg("cannot close file")
		}
	}()

	resp := Response{
		Code:        status.OK,
		ContentType: mime.FromFilename(info.Name()),
		Length:      info.Size(),
		Body:        file,
	}

	switch method.Parse(request.Method) {
	case method.GET:
		return d.respond(request, resp, true)
	case method.HEAD:
		return d.respond(request, resp, false)
	default:
		return d.respondError(request, status.ErrMethodNotImplemented, request.Method)
	}
}

func (d *Dispatcher) respondError(request *http.Request, err error, subject string) error {
	var httpErr status.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = status.HTTPError{Code: status.NotFound, Message: err.Error()}
	}

	d.body.Reset()
	switch httpErr.Code {
	case status.NotImplemented:
		d.body.WriteString("<H2>501 Method ")
		d.body.WriteString(html.EscapeString(subject))
		d.body.WriteString(" not implemented.</H2>")
	default:
		d.body.WriteString("<H2>404 File Not Found: ")
		d.body.WriteString(html.EscapeString(subject))
		d.body.WriteString("</H2>")
	}

	// a HEAD response carries the same Content-Length, but never the body itself
	withBody := method.Parse(request.Method) != method.HEAD

	return d.respond(request, Response{
		Code:        httpErr.Code,
		ContentType: mime.HTMLUTF8,
		Length:      int64(d.body.Len()),
		Body:        &d.body,
	}, withBody)
}

func (d *Dispatcher) respond(request *http.Request, resp Response, withBody bool) error {
	err := d.serializer.Write(resp, request.KeepAlive, withBody)
	d.logger.Info().
		Str("method", request.Method).
		Str("path", request.Path).
		Str("user_agent", request.Headers.Value("User-Agent")).
		Uint16("status", uint16(resp.Code)).
		Int64("length", resp.Length).
		Err(err).
		Msg("request served")

	return err
}

// Sanitize returns the path to be looked up below the web-root. The root itself, an empty
// target and every target containing a parent-directory segment are substituted with the
// default file. Nothing else is normalized: neither the query is stripped, nor the path
// is URL-decoded.
func Sanitize(path, defaultFile string) string {
	if path == "/" || len(path) == 0 || hasParentSegment(path) {
		return defaultFile
	}

	return path
}

// Resolve joins the sanitized path to the root.
func Resolve(root, path string) string {
	return filepath.Join(root, filepath.FromSlash(path))
}

func hasParentSegment(path string) bool {
	for _, segment := range strings.FieldsFunc(path, isSeparator) {
		if segment == ".." {
			return true
		}
	}

	return false
}

func isSeparator(c rune) bool {
	return c == '/' || c == '\\'
}

// open opens a regular file. Directories aren't served.
func open(name string) (*os.File, os.FileInfo, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	if info.IsDir() {
		_ = file.Close()
		return nil, nil, status.ErrNotFound
	}

	return file, info, nil
}
