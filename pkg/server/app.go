package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SignalStories/pkg/config"
	xhttp "SignalStories/pkg/http"
	applogger "SignalStories/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, httpServer *xhttp.Server) *App {
	return &App{cfg: cfg, log: log, httpServer: httpServer}
}

// Run starts the HTTP server and blocks until ctx is cancelled, an interrupt
// arrives or the listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info("starting",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("cache", a.cfg.Cache.Backend),
		applogger.Bool("auth_open", !a.cfg.Auth.Firebase.Configured() && a.cfg.Auth.AllowOpen),
	)

	errCh := make(chan error, 1)
	a.httpServer.Start(errCh)

	select {
	case err := <-errCh:
		a.log.Error("http server start error", applogger.Error(err))
		return err
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	}
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. In-flight requests get the
// configured shutdown timeout.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
