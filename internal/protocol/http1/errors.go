package http1

import (
	"errors"
)

// Protocol errors. All of them are connection-fatal: once the byte stream can't be
// understood, there's no safe way of framing a response, so the connection is dropped.
var (
	ErrMalformedRequest   = errors.New("malformed request line")
	ErrMalformedHeader    = errors.New("malformed header line")
	ErrRequestLineTooLong = errors.New("request line is too long")
	ErrHeaderLineTooLong  = errors.New("header line is too long")
	ErrTooManyHeaders     = errors.New("too many headers")
)
