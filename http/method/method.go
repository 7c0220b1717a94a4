package method

// Method is a request method as understood by the server. Every method other
// than GET and HEAD collapses into Unknown, though the raw token is still kept
// by the request so it can be named in the 501 response.
type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
)

// Allow is the value of the Allow header sent with every response.
const Allow = "GET, HEAD"

// Parse matches the token case-sensitively, as methods are case-sensitive (RFC 9110, 9.1).
func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	case "HEAD":
		return HEAD
	default:
		return Unknown
	}
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case HEAD:
		return "HEAD"
	default:
		return "UNKNOWN"
	}
}
