package status

// HTTPError is a request-level failure. It never closes the connection: the
// dispatcher turns it into a response carrying Code.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrNotFound             = NewError(NotFound, "requested file not found")
	ErrMethodNotImplemented = NewError(NotImplemented, "request method is not supported")
)
