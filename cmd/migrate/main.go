package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/logger"
	"jewelry-storefront/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "revert every migration instead of applying")
	flag.Parse()

	cfg := config.FromEnv()
	lg, err := logger.New(cfg.Log, "migrate")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DevBackend.DBConnString)
	if err != nil {
		lg.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if *down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			lg.Fatal("revert migrations", zap.Error(err))
		}
		lg.Info("migrations reverted")
		return
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		lg.Fatal("apply migrations", zap.Error(err))
	}
	lg.Info("migrations applied")
}
