package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/editor"
	"jewelry-storefront/internal/session"
)

// Backend is the read side of the catalog backend.
type Backend interface {
	catalog.Loader
	Pinger
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// Deps are the collaborators of the storefront server.
type Deps struct {
	Backend Backend
	// Writer returns a backend writer authenticated with an admin token.
	Writer      func(token string) editor.Writer
	Sessions    *session.Manager
	CORSOrigins []string
}

// buildRouter wires routes for the storefront and the admin API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Backend == nil {
		return nil, errors.New("httpserver: backend is required")
	}
	if deps.Sessions == nil || deps.Writer == nil {
		return nil, errors.New("httpserver: sessions and writer are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), Recovery(logger))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", HealthHandler)
	router.GET("/readyz", ReadyHandler(deps.Backend))

	shop := &storefrontHandler{backend: deps.Backend, logger: logger}
	router.GET("/products", shop.page)
	router.GET("/products/collection/:slug", shop.page)
	// Category paths have shapes gin cannot tell apart; route.ParseWith does.
	router.GET("/products/category/*rest", shop.page)
	router.GET("/product/:slug", shop.page)
	router.GET("/navigation", shop.navigation)
	router.GET("/collections", shop.collections)

	admin := &adminHandler{backend: deps.Backend, writer: deps.Writer, sessions: deps.Sessions, logger: logger}
	api := router.Group("/admin/api")
	api.POST("/session", admin.login)
	api.DELETE("/session", admin.logout)

	guarded := api.Group("", admin.requireAdmin)
	guarded.GET("/session", admin.whoami)
	guarded.GET("/tree", admin.tree)
	guarded.GET("/subcategory-options", admin.subcategoryOptions)

	guarded.GET("/categories", admin.listCategories)
	guarded.POST("/categories", admin.createCategory)
	guarded.PUT("/categories/:id", admin.updateCategory)
	guarded.DELETE("/categories/:id", admin.deleteCategory)

	guarded.GET("/subcategories", admin.listSubcategories)
	guarded.POST("/subcategories", admin.createSubcategory)
	guarded.PUT("/subcategories/:id", admin.updateSubcategory)
	guarded.DELETE("/subcategories/:id", admin.deleteSubcategory)

	guarded.GET("/products", admin.listProducts)
	guarded.GET("/products/export", admin.exportProducts)
	guarded.POST("/products", admin.createProduct)
	guarded.PUT("/products/:id", admin.updateProduct)
	guarded.DELETE("/products/:id", admin.deleteProduct)

	return router, nil
}
