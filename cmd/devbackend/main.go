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

	"jewelry-storefront/internal/backendapi"
	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/httpserver"
	"jewelry-storefront/internal/logger"
	categoryrepo "jewelry-storefront/internal/repository/category"
	collectionrepo "jewelry-storefront/internal/repository/collection"
	productrepo "jewelry-storefront/internal/repository/product"
	subcategoryrepo "jewelry-storefront/internal/repository/subcategory"
	categorysvc "jewelry-storefront/internal/service/category"
	collectionsvc "jewelry-storefront/internal/service/collection"
	productsvc "jewelry-storefront/internal/service/product"
	subcategorysvc "jewelry-storefront/internal/service/subcategory"
)

func main() {
	cfg := config.FromEnv()
	lg, err := logger.New(cfg.Log, "devbackend")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DevBackend.DBConnString)
	if err != nil {
		lg.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	router, err := backendapi.NewRouter(lg, backendapi.Deps{
		Categories:    categorysvc.New(categoryrepo.NewPostgres(dbpool)),
		Subcategories: subcategorysvc.New(subcategoryrepo.NewPostgres(dbpool)),
		Products:      productsvc.New(productrepo.NewPostgres(dbpool, lg)),
		Collections:   collectionsvc.New(collectionrepo.NewPostgres(dbpool)),
		DB:            dbpool,
		AdminToken:    cfg.DevBackend.AdminToken,
	})
	if err != nil {
		lg.Fatal("init router", zap.Error(err))
	}
	srv := httpserver.Wrap(cfg.DevBackend.HTTPAddr, router, lg)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	} else {
		lg.Info("server stopped")
	}
}
