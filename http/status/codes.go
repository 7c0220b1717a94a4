package status

type (
	Code   uint16
	Status string
)

// The server only ever answers with a handful of codes. The rest of the IANA
// registry is deliberately left out.
const (
	OK             Code = 200 // RFC 9110, 15.3.1
	NotFound       Code = 404 // RFC 9110, 15.5.5
	NotImplemented Code = 501 // RFC 9110, 15.6.2
)

// KnownCodes lists every code the server is able to produce.
var KnownCodes = []Code{OK, NotFound, NotImplemented}

// Text returns a reason phrase for the status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case NotFound:
		return "Not Found"
	case NotImplemented:
		return "Not Implemented"
	default:
		return ""
	}
}

// Line returns the status line without the protocol token, e.g. "404 Not Found".
func Line(code Code) string {
	switch code {
	case OK:
		return "200 OK"
	case NotFound:
		return "404 Not Found"
	case NotImplemented:
		return "501 Not Implemented"
	default:
		return ""
	}
}
