package config

import (
	"errors"
	"time"
)

type (
	URIRequestLineSize struct {
		Maximal int
	}

	HeadersNumber struct {
		Default, Maximal int
	}
)

type (
	Server struct {
		// Root is the web-root. Every served file must resolve below it.
		Root string
		// DefaultFile is substituted whenever the request target is "/", empty or
		// contains a parent-directory segment.
		DefaultFile string
		// Name is the value of the Server response header.
		Name string
	}

	Workers struct {
		// Number is the size of the worker pool. Every worker serves one connection at
		// a time; accepted connections exceeding the number are queued, not rejected.
		Number int
		// ShutdownGrace is how long in-flight connections are given to finish after the
		// listener was closed. Once it elapses, remaining connections are closed forcefully.
		ShutdownGrace time.Duration
	}

	URI struct {
		// RequestLineSize limits the length of the request line, including the line
		// terminator. Longer lines are a protocol error.
		RequestLineSize URIRequestLineSize
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented
		Number HeadersNumber
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. A single header line may not exceed it.
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, it'll be closed.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
		// WriteBufferSize is the initial capacity of the buffer the response headers
		// and generated bodies are serialized into before being flushed.
		WriteBufferSize int
	}
)

// Config holds settings used across the server. It is read-only once the server
// started and is shared by all the connections.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Server  Server
	Workers Workers
	URI     URI
	Headers Headers
	NET     NET
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Server: Server{
			Root:        "root",
			DefaultFile: "index.html",
			Name:        "webroot/1.1",
		},
		Workers: Workers{
			Number:        10,
			ShutdownGrace: 10 * time.Second,
		},
		URI: URI{
			RequestLineSize: URIRequestLineSize{
				// 8kb is what most web-entities tolerate.
				Maximal: 8 * 1024,
			},
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 100,
			},
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               5 * time.Second,
			AcceptLoopInterruptPeriod: 1 * time.Second,
			WriteBufferSize:           1024,
		},
	}
}

var (
	ErrNoRoot          = errors.New("web-root must not be empty")
	ErrNoDefaultFile   = errors.New("default file must not be empty")
	ErrNoWorkers       = errors.New("worker pool must have at least one worker")
	ErrBadTimeout      = errors.New("timeouts and periods must be positive")
	ErrBadBufferSize   = errors.New("buffer sizes must be positive")
	ErrBadHeadersLimit = errors.New("headers limits must be positive")
)

// Validate reports the first setting the server can't run with.
func (c *Config) Validate() error {
	switch {
	case len(c.Server.Root) == 0:
		return ErrNoRoot
	case len(c.Server.DefaultFile) == 0:
		return ErrNoDefaultFile
	case c.Workers.Number <= 0:
		return ErrNoWorkers
	case c.NET.ReadTimeout <= 0, c.NET.AcceptLoopInterruptPeriod <= 0, c.Workers.ShutdownGrace < 0:
		return ErrBadTimeout
	case c.NET.ReadBufferSize <= 0, c.NET.WriteBufferSize <= 0, c.URI.RequestLineSize.Maximal <= 0:
		return ErrBadBufferSize
	case c.Headers.Number.Default < 0, c.Headers.Number.Maximal <= 0:
		return ErrBadHeadersLimit
	}

	return nil
}
