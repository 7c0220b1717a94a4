package webroot

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/http/serve"
	"github.com/indigo-web/webroot/internal/address"
	"github.com/indigo-web/webroot/transport"
	"github.com/rs/zerolog"
)

// App serves static files from the configured web-root on a single address.
type App struct {
	addr    address.Address
	addrErr error
	cfg     *config.Config
	logger  zerolog.Logger
	hooks   hooks

	mu       sync.Mutex
	tcp      transport.Transport
	stopping bool
}

// New returns a new App instance. A malformed address isn't reported immediately,
// Serve returns it instead.
func New(addr string) *App {
	appAddr, err := address.Parse(addr)
	if err != nil {
		err = fmt.Errorf("webroot: bad addr: %w", err)
	}

	return &App{
		addr:    appAddr,
		addrErr: err,
		cfg:     config.Default(),
		logger:  zerolog.Nop(),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger sets the logger every event of the server is written to. By default, nothing
// is logged.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// NotifyOnStart calls the callback at the moment the listener is bound, right before
// the first connection is accepted.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment the server is down. It's guaranteed
// that no new connections are accepted by then and all the workers are done.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the address the server is listening on, or nil if it isn't yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tcp == nil {
		return nil
	}

	return a.tcp.Addr()
}

// Serve binds the listener and serves connections until Stop is called. Bind failure
// is returned as *transport.BindError.
func (a *App) Serve() error {
	if a.addrErr != nil {
		return a.addrErr
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	pool := transport.NewPool(a.cfg.Workers.Number, a.onPanic)
	tcp := transport.NewTCP(pool, a.logger)

	if err := tcp.Bind(a.addr.String()); err != nil {
		pool.Shutdown()
		return err
	}

	a.mu.Lock()
	if a.stopping {
		a.mu.Unlock()
		_ = tcp.Close()
		pool.Shutdown()
		return nil
	}

	a.tcp = tcp
	a.mu.Unlock()

	a.logger.Info().
		Stringer("addr", tcp.Addr()).
		Str("root", a.cfg.Server.Root).
		Int("workers", a.cfg.Workers.Number).
		Msg("listening")

	callIfNotNil(a.hooks.OnStart)
	err := tcp.Listen(a.cfg.NET, func(conn net.Conn) {
		serve.HTTP1(a.cfg, conn, a.logger)
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("accept loop terminated")
	}

	a.shutdown(tcp, pool)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// shutdown closes the listener and lets in-flight connections finish within the grace
// period. Connections still alive after it are closed forcefully, including those
// which didn't get a worker yet.
func (a *App) shutdown(tcp transport.Transport, pool *transport.Pool) {
	if err := tcp.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		a.logger.Error().Err(err).Msg("cannot close listener")
	}

	pool.Shutdown()
	grace := a.cfg.Workers.ShutdownGrace

	if !pool.Wait(grace) {
		closed := tcp.CloseConns()
		a.logger.Warn().
			Int("closed", closed).
			Dur("grace", grace).
			Msg("grace period elapsed, closing connections forcefully")

		if !pool.Wait(grace) {
			a.logger.Error().Int("pending", pool.Pending()).Msg("workers didn't terminate")
		}
	}

	a.logger.Info().Msg("stopped")
}

// Stop stops accepting new connections and initiates the shutdown.
//
// NOTE: the call isn't blocking. After it returned, the server may still be serving
// the connections it already accepted. Use NotifyOnStop or wait for Serve to return.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopping = true
	if a.tcp != nil {
		a.tcp.Stop()
		// wakes up the blocked Accept() without waiting for the interrupt period
		_ = a.tcp.Close()
	}
}

func (a *App) onPanic(v any) {
	a.logger.Error().Interface("panic", v).Msg("connection handler panicked")
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
