package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"jewelry-storefront/internal/backend"
	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/editor"
	"jewelry-storefront/internal/httpserver"
	"jewelry-storefront/internal/logger"
	"jewelry-storefront/internal/session"
)

func main() {
	cfg := config.FromEnv()
	lg, err := logger.New(cfg.Log, "storefront")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Session.Key == "" {
		lg.Warn("SESSION_KEY not set, admin sessions will not survive a restart")
	}
	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		lg.Fatal("init sessions", zap.Error(err))
	}

	client := backend.New(backend.Options{
		PublicURL: cfg.Backend.PublicURL,
		AdminURL:  cfg.Backend.AdminURL,
		Timeout:   cfg.Backend.Timeout,
	}, lg.Named("backend"))

	srv, err := httpserver.New(cfg.HTTPAddr, lg, httpserver.Deps{
		Backend:     client,
		Writer:      func(token string) editor.Writer { return client.Admin(token) },
		Sessions:    sessions,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		lg.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		lg.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	} else {
		lg.Info("server stopped")
	}
}
