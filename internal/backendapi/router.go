// Package backendapi serves the catalog backend contract over Postgres: the
// public read collections and the bearer-protected admin writes.
package backendapi

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/httpserver"
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id string, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type SubcategoryService interface {
	List(ctx context.Context) ([]domain.Subcategory, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]domain.Subcategory, error)
	Create(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
	Update(ctx context.Context, id string, s domain.Subcategory) (*domain.Subcategory, error)
	Delete(ctx context.Context, id string) error
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CollectionService interface {
	List(ctx context.Context) ([]domain.Collection, error)
}

// Deps are the collaborators of the backend router.
type Deps struct {
	Categories    CategoryService
	Subcategories SubcategoryService
	Products      ProductService
	Collections   CollectionService
	DB            httpserver.Pinger
	// AdminToken is the static bearer token every admin write must carry.
	AdminToken string
}

// NewRouter wires the public and admin routes.
func NewRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Categories == nil || deps.Subcategories == nil || deps.Products == nil || deps.Collections == nil {
		return nil, errors.New("backendapi: all services are required")
	}
	if deps.AdminToken == "" {
		return nil, errors.New("backendapi: admin token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(httpserver.RequestID(), httpserver.RequestLogger(logger), httpserver.Recovery(logger))

	router.GET("/healthz", httpserver.HealthHandler)
	router.GET("/readyz", httpserver.ReadyHandler(deps.DB))

	h := &handler{deps: deps, logger: logger}
	router.GET("/categories", h.listCategories)
	router.GET("/subcategories", h.listSubcategories)
	router.GET("/subcategories/category/:slug", h.subcategoriesByCategory)
	router.GET("/products", h.listProducts)
	router.GET("/products/slug/:slug", h.productBySlug)
	router.GET("/collections", h.listCollections)

	admin := router.Group("/admin", bearerAuth(deps.AdminToken))
	admin.POST("/category", h.createCategory)
	admin.PUT("/category/:id", h.updateCategory)
	admin.DELETE("/category/:id", h.deleteCategory)
	admin.POST("/subcategory", h.createSubcategory)
	admin.PUT("/subcategory/:id", h.updateSubcategory)
	admin.DELETE("/subcategory/:id", h.deleteSubcategory)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)

	return router, nil
}
