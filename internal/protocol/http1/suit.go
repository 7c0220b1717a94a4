package http1

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/http"
	"github.com/indigo-web/webroot/kv"
	"github.com/indigo-web/webroot/transport"
	"github.com/rs/zerolog"
)

// Suit is the connection handler. It owns the client together with its reader and
// writer for the whole connection lifetime and serves requests strictly one after
// another while keep-alive holds.
type Suit struct {
	*Parser
	*Dispatcher
	serializer *Serializer
	reader     *bufio.Reader
	request    *http.Request
	client     transport.Client
	logger     zerolog.Logger
	state      connState
}

func New(cfg *config.Config, client transport.Client, logger zerolog.Logger) *Suit {
	reader := bufio.NewReaderSize(client, cfg.NET.ReadBufferSize)
	request := http.NewRequest(kv.NewPrealloc(cfg.Headers.Number.Default))
	serializer := NewSerializer(cfg, client, make([]byte, 0, cfg.NET.WriteBufferSize))

	return &Suit{
		Parser:     NewParser(cfg, reader, request),
		Dispatcher: NewDispatcher(cfg, serializer, logger),
		serializer: serializer,
		reader:     reader,
		request:    request,
		client:     client,
		logger:     logger,
		state:      eIdle,
	}
}

// Serve runs the connection until it reaches the closing state. The client is always
// closed on return.
func (s *Suit) Serve() {
	defer func() {
		// a panic in the middle of a request skips the closing state
		if s.state != eClosing {
			s.close()
		}
	}()

	for s.step() {
	}
}

// step makes a single transition and reports whether the connection is still alive.
func (s *Suit) step() bool {
	switch s.state {
	case eIdle:
		s.logger.Debug().Msg("connection opened")
		s.state = eAwaitingRequest
	case eAwaitingRequest:
		if err := s.Parse(); err != nil {
			s.onReadError(err)
			s.state = eClosing
			return true
		}

		s.state = eDispatching
	case eDispatching:
		if err := s.Dispatch(s.request); err != nil {
			s.logger.Error().Err(err).Msg("cannot write response")
			s.state = eClosing
			return true
		}

		if s.request.KeepAlive {
			s.state = eAwaitingRequest
		} else {
			s.state = eClosing
		}
	case eClosing:
		s.close()
		return false
	default:
		panic("BUG: unexpected connection state " + s.state.String())
	}

	return true
}

func (s *Suit) onReadError(err error) {
	switch {
	case errors.Is(err, io.EOF):
		s.logger.Debug().Msg("connection closed by peer")
	case errors.Is(err, os.ErrDeadlineExceeded):
		// the client simply didn't send another request in time. That's how every
		// keep-alive connection ends.
		s.logger.Debug().Msg("idle timeout, no more requests")
	case errors.Is(err, ErrMalformedRequest), errors.Is(err, ErrMalformedHeader),
		errors.Is(err, ErrRequestLineTooLong), errors.Is(err, ErrHeaderLineTooLong),
		errors.Is(err, ErrTooManyHeaders):
		s.logger.Warn().Err(err).Msg("bad request, dropping the connection")
	default:
		s.logger.Error().Err(err).Msg("cannot read request")
	}
}

// close releases the reader, the writer and the socket, in that order. Failure of one
// step doesn't prevent the others.
func (s *Suit) close() {
	if n := s.reader.Buffered(); n > 0 {
		s.logger.Debug().Int("bytes", n).Msg("discarding unread data")
	}
	s.reader.Reset(nil)

	if err := s.serializer.Close(); err != nil {
		s.logger.Error().Err(err).Msg("cannot release response stream")
	}

	if err := s.client.Close(); err != nil {
		s.logger.Error().Err(err).Msg("cannot close connection")
	}

	s.logger.Debug().Msg("connection closed")
}
