package http1

import (
	"io"
	"strconv"
	"time"

	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/http"
	"github.com/indigo-web/webroot/http/method"
	"github.com/indigo-web/webroot/http/status"
	"github.com/indigo-web/webroot/transport"
)

// Responses always advertise HTTP/1.1, regardless of what the request said.
const protocol = "HTTP/1.1"

// Response describes a single response. Body must yield at least Length bytes; nil Body
// is allowed only together with omitting the body.
type Response struct {
	Code        status.Code
	ContentType string
	Length      int64
	Body        io.Reader
}

// Serializer writes responses into the connection. The header block is accumulated in
// the buffer and flushed as a whole before the first body byte is written.
type Serializer struct {
	cfg    *config.Config
	client transport.Client
	buff   []byte
	now    func() time.Time
}

func NewSerializer(cfg *config.Config, client transport.Client, buff []byte) *Serializer {
	return &Serializer{
		cfg:    cfg,
		client: client,
		buff:   buff,
		now:    time.Now,
	}
}

// Write serializes the response. If withBody is false, the headers block is exactly the
// same, including Content-Length, but no body follows it.
func (s *Serializer) Write(resp Response, keepAlive, withBody bool) error {
	s.appendStatus(resp.Code)
	s.appendKnownHeader("Server: ", s.cfg.Server.Name)
	s.appendDate()
	s.appendKnownHeader("Allow: ", method.Allow)
	if !keepAlive {
		s.appendKnownHeader("Connection: ", http.ConnectionClose)
	}
	s.appendKnownHeader("Content-Type: ", resp.ContentType)
	s.appendContentLength(resp.Length)
	s.crlf()

	if err := s.flush(); err != nil {
		return err
	}

	if !withBody || resp.Length == 0 {
		return nil
	}

	// the connection is written directly, so for files on Linux sendfile(2) may be engaged.
	_, err := io.CopyN(s.client.Conn(), resp.Body, resp.Length)
	return err
}

// Close flushes whatever might be left in the buffer and releases it.
func (s *Serializer) Close() error {
	err := s.flush()
	s.buff = nil

	return err
}

func (s *Serializer) flush() (err error) {
	if len(s.buff) > 0 {
		_, err = s.client.Write(s.buff)
		s.buff = s.buff[:0]
	}

	return err
}

func (s *Serializer) appendStatus(code status.Code) {
	s.buff = append(s.buff, protocol...)
	s.sp()

	if line := status.Line(code); len(line) > 0 {
		s.buff = append(s.buff, line...)
	} else {
		// some non-standard code
		s.buff = strconv.AppendUint(s.buff, uint64(code), 10)
	}

	s.crlf()
}

// appendKnownHeader writes a whole header line. The key is known to already include
// a colon and a space.
func (s *Serializer) appendKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

var zoneGMT = time.FixedZone("GMT", 0)

func (s *Serializer) appendDate() {
	s.buff = append(s.buff, "Date: "...)
	s.buff = s.now().In(zoneGMT).AppendFormat(s.buff, time.RFC1123)
	s.crlf()
}

func (s *Serializer) appendContentLength(value int64) {
	s.buff = append(s.buff, "Content-Length: "...)
	s.buff = strconv.AppendInt(s.buff, value, 10)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

const crlf = "\r\n"

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}
