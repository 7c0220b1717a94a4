package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indigo-web/webroot"
	"github.com/indigo-web/webroot/config"
	"github.com/indigo-web/webroot/internal/bootstrap"
	"github.com/indigo-web/webroot/transport"
	"github.com/rs/zerolog"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "address to listen on")
		root      = flag.String("root", "", "web-root directory (overrides the config)")
		workers   = flag.Int("workers", 0, "worker pool size (overrides the config)")
		cfgPath   = flag.String("config", "", "path to a JSON config file")
		level     = flag.String("log-level", "info", "log level: debug, info, warn, error")
		noDefault = flag.Bool("no-bootstrap", false, "don't create the default content")
	)
	flag.Parse()

	logger, err := newLogger(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}

	if len(*root) > 0 {
		cfg.Server.Root = *root
	}

	if *workers > 0 {
		cfg.Workers.Number = *workers
	}

	if !*noDefault {
		if err = bootstrap.Content(cfg.Server.Root, cfg.Server.DefaultFile, logger); err != nil {
			logger.Fatal().Err(err).Msg("cannot initialize the web-root")
		}
	}

	if !transport.PortAvailable(*addr) {
		logger.Fatal().Str("addr", *addr).Msg("port is already in use")
	}

	app := webroot.New(*addr).
		Tune(cfg).
		Logger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		app.Stop()
	}()

	err = app.Serve()

	var bindErr *transport.BindError
	switch {
	case errors.As(err, &bindErr):
		logger.Fatal().Err(err).Msg("cannot start the server")
	case err != nil:
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.Default(), nil
	}

	return config.Load(path)
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("bad log level: %w", err)
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}

	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
