package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TradePulse/internal/domain/repository"
	"TradePulse/pkg/cache"
	"TradePulse/pkg/config"
	xhttp "TradePulse/pkg/http"
	applogger "TradePulse/pkg/logger"
)

// App owns the HTTP server and the resources it serves from.
type App struct {
	cfg    *config.Config
	log    *applogger.Logger
	server *xhttp.Server
	store  repository.TradeStore
	cache  cache.Service
}

func New(
	cfg *config.Config,
	log *applogger.Logger,
	srv *xhttp.Server,
	store repository.TradeStore,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:    cfg,
		log:    log,
		server: srv,
		store:  store,
		cache:  cacheSvc,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// everything down within the configured timeout.
func (a *App) Run() error {
	if err := a.server.Start(); err != nil {
		return err
	}
	a.log.Info("tradepulse started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("data_backend", a.cfg.Data.Backend),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.Shutdown()
}

// Shutdown stops the server and closes the store and cache. Errors are
// logged; the first one is returned.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var first error
	if err := a.server.Stop(ctx); err != nil {
		a.log.Error("http shutdown failed", applogger.Error(err))
		first = err
	}
	if err := a.store.Close(); err != nil {
		a.log.Error("store close failed", applogger.Error(err))
		if first == nil {
			first = err
		}
	}
	if err := a.cache.Close(); err != nil {
		a.log.Error("cache close failed", applogger.Error(err))
		if first == nil {
			first = err
		}
	}
	a.log.Info("tradepulse stopped")
	return first
}
