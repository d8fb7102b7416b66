package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/route"
)

type storefrontHandler struct {
	backend Backend
	logger  *zap.Logger
}

// load fetches a fresh snapshot for one request. Nothing is cached across
// requests.
func (h *storefrontHandler) load(c *gin.Context, kinds ...domain.EntityKind) (catalog.Catalog, bool) {
	store := catalog.NewStore(h.backend, h.logger)
	if err := store.Reload(c.Request.Context(), kinds...); err != nil {
		writeError(c, err)
		return catalog.Catalog{}, false
	}
	return store.Snapshot(), true
}

// page serves every storefront catalog path: listings and product details.
// Collections are fetched only for collection listings, so an unavailable
// collections endpoint never breaks the category hierarchy views.
func (h *storefrontHandler) page(c *gin.Context) {
	path, rawQuery := c.Request.URL.EscapedPath(), c.Request.URL.RawQuery
	shape, err := route.Parse(path, rawQuery)
	if err != nil {
		writeError(c, err)
		return
	}
	kinds := []domain.EntityKind{domain.KindCategory, domain.KindSubcategory, domain.KindProduct}
	if shape.CollectionSlug != "" {
		kinds = append(kinds, domain.KindCollection)
	}
	cat, ok := h.load(c, kinds...)
	if !ok {
		return
	}
	sel, err := route.ParseWith(path, rawQuery, cat)
	if err != nil {
		writeError(c, err)
		return
	}
	if sel.IsProduct() {
		h.detail(c, cat, sel)
		return
	}
	c.JSON(http.StatusOK, buildListing(cat, sel))
}

func (h *storefrontHandler) detail(c *gin.Context, cat catalog.Catalog, sel route.Selection) {
	p, err := h.backend.ProductBySlug(c.Request.Context(), sel.ProductSlug)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !p.IsActive) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "product not found",
			"slug":  sel.ProductSlug,
			"links": []route.Crumb{
				{Label: "Home", Path: "/"},
				{Label: "Products", Path: route.ProductsPath},
			},
		})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildDetail(cat, sel, *p))
}

func (h *storefrontHandler) navigation(c *gin.Context) {
	cat, ok := h.load(c, domain.KindCategory, domain.KindSubcategory)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.Navigation(catalog.MaxMainCategories))
}

func (h *storefrontHandler) collections(c *gin.Context) {
	cat, ok := h.load(c, domain.KindCollection)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.ActiveCollections())
}
