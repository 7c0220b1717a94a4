package http

import (
	"github.com/indigo-web/webroot/kv"
)

// ConnectionClose is the only Connection header value disabling keep-alive.
// The comparison is case-sensitive.
const ConnectionClose = "close"

// Request is a single parsed request. A connection owns exactly one instance, which
// is reset before every parse cycle, so values must not be retained after the response
// was sent.
type Request struct {
	// Method is the raw method token, kept verbatim so it can be named in a
	// 501 response.
	Method string
	// Path is the request target, lower-cased. No URL-decoding and no query
	// stripping are applied.
	Path     string
	Protocol string
	Headers  *kv.Storage
	// KeepAlive is true unless the Connection header equals ConnectionClose.
	KeepAlive bool
	// File is the resolved filesystem location. It is set by the dispatcher, not the parser.
	File string
}

func NewRequest(headers *kv.Storage) *Request {
	return &Request{
		Headers:   headers,
		KeepAlive: true,
	}
}

// Reset prepares the request for the next parse cycle, keeping the allocated
// headers storage.
func (r *Request) Reset() {
	r.Method = ""
	r.Path = ""
	r.Protocol = ""
	r.Headers.Clear()
	r.KeepAlive = true
	r.File = ""
}
