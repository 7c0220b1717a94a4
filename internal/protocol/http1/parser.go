package http1

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/indigo-web/utils/uf"
	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/http"
)

const protocolPrefix = "HTTP/"

// Parser reads requests off a single connection. Both the reader and the request are
// owned by the connection and are never shared.
type Parser struct {
	cfg     *config.Config
	reader  *bufio.Reader
	request *http.Request
	// line accumulates lines longer than the reader's buffer.
	line []byte
}

func NewParser(cfg *config.Config, reader *bufio.Reader, request *http.Request) *Parser {
	return &Parser{
		cfg:     cfg,
		reader:  reader,
		request: request,
	}
}

// Parse reads exactly one request: the request line and the headers block, terminated
// either by an empty line or by the end of stream. io.EOF is returned if the peer closed
// the connection without sending a single byte.
func (p *Parser) Parse() error {
	request := p.request
	request.Reset()

	line, err := p.readLine(p.cfg.URI.RequestLineSize.Maximal, ErrRequestLineTooLong)
	if err != nil {
		return err
	}

	if err = p.parseRequestLine(line); err != nil {
		return err
	}

	for {
		line, err = p.readLine(p.cfg.NET.ReadBufferSize, ErrHeaderLineTooLong)
		switch {
		case err == io.EOF:
			// peer sent the request and half-closed the connection. Not an error, as
			// the request itself is complete.
			return p.finish()
		case err != nil:
			return err
		}

		if len(bytes.TrimSpace(line)) == 0 {
			return p.finish()
		}

		if err = p.parseHeader(line); err != nil {
			return err
		}
	}
}

func (p *Parser) parseRequestLine(line []byte) error {
	methodToken, rest, found := bytes.Cut(line, []byte{' '})
	if !found {
		return ErrMalformedRequest
	}

	target, protocol, found := bytes.Cut(rest, []byte{' '})
	if !found || !strings.HasPrefix(uf.B2S(protocol), protocolPrefix) {
		return ErrMalformedRequest
	}

	request := p.request
	request.Method = internMethod(methodToken)
	// lower-casing makes the lookup case-insensitive. Files with upper-case letters in
	// their names are thereby unreachable on case-sensitive filesystems.
	request.Path = uf.B2S(bytes.ToLower(target))
	request.Protocol = string(protocol)

	return nil
}

func (p *Parser) parseHeader(line []byte) error {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return ErrMalformedHeader
	}

	// a single allocation for both key and value
	str := string(line)
	key := strings.TrimSpace(str[:colon])
	if len(key) == 0 {
		return ErrMalformedHeader
	}

	headers := p.request.Headers
	if headers.Len() >= p.cfg.Headers.Number.Maximal {
		return ErrTooManyHeaders
	}

	headers.Add(key, strings.TrimSpace(str[colon+1:]))

	return nil
}

func (p *Parser) finish() error {
	connection, found := p.request.Headers.Get("Connection")
	p.request.KeepAlive = !(found && connection == http.ConnectionClose)

	return nil
}

// readLine returns a line without its terminator (either LF or CRLF). The returned slice
// is valid only until the next read. A line cut off by the end of stream is returned as
// is; io.EOF is returned only if there was no data at all.
func (p *Parser) readLine(limit int, tooLong error) ([]byte, error) {
	p.line = p.line[:0]

	for {
		chunk, err := p.reader.ReadSlice('\n')
		if len(p.line)+len(chunk) > limit {
			return nil, tooLong
		}

		switch {
		case err == nil:
			if len(p.line) == 0 {
				return trimEOL(chunk), nil
			}

			p.line = append(p.line, chunk...)
			return trimEOL(p.line), nil
		case errors.Is(err, bufio.ErrBufferFull):
			p.line = append(p.line, chunk...)
		case err == io.EOF && len(p.line)+len(chunk) > 0:
			p.line = append(p.line, chunk...)
			return trimEOL(p.line), nil
		default:
			return nil, err
		}
	}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

// internMethod avoids allocating for the methods the server actually serves.
func internMethod(token []byte) string {
	switch m := uf.B2S(token); m {
	case "GET":
		return "GET"
	case "HEAD":
		return "HEAD"
	default:
		return string(token)
	}
}
