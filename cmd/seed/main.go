package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/logger"
	categoryrepo "jewelry-storefront/internal/repository/category"
	collectionrepo "jewelry-storefront/internal/repository/collection"
	productrepo "jewelry-storefront/internal/repository/product"
	subcategoryrepo "jewelry-storefront/internal/repository/subcategory"
	"jewelry-storefront/internal/seed"
	categorysvc "jewelry-storefront/internal/service/category"
	collectionsvc "jewelry-storefront/internal/service/collection"
	productsvc "jewelry-storefront/internal/service/product"
	subcategorysvc "jewelry-storefront/internal/service/subcategory"
)

func main() {
	cfg := config.FromEnv()
	lg, err := logger.New(cfg.Log, "seed")
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

	err = seed.Apply(ctx, seed.Writers{
		Categories:    categorysvc.New(categoryrepo.NewPostgres(pool)),
		Subcategories: subcategorysvc.New(subcategoryrepo.NewPostgres(pool)),
		Products:      productsvc.New(productrepo.NewPostgres(pool, lg)),
		Collections:   collectionsvc.New(collectionrepo.NewPostgres(pool)),
	}, lg)
	if err != nil {
		lg.Fatal("seed apply", zap.Error(err))
	}
}
