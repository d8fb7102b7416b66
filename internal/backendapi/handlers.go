package backendapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-storefront/internal/domain"
)

type handler struct {
	deps   Deps
	logger *zap.Logger
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return false
	}
	return true
}

func (h *handler) listCategories(c *gin.Context) {
	out, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) listSubcategories(c *gin.Context) {
	out, err := h.deps.Subcategories.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) subcategoriesByCategory(c *gin.Context) {
	out, err := h.deps.Subcategories.ListByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) listProducts(c *gin.Context) {
	out, err := h.deps.Products.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) productBySlug(c *gin.Context) {
	p, err := h.deps.Products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) listCollections(c *gin.Context) {
	out, err := h.deps.Collections.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createCategory(c *gin.Context) {
	var in domain.Category
	if !bind(c, &in) {
		return
	}
	out, err := h.deps.Categories.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("category created", zap.String("id", out.ID), zap.String("slug", out.Slug))
	c.JSON(http.StatusCreated, out)
}

func (h *handler) updateCategory(c *gin.Context) {
	var in domain.Category
	if !bind(c, &in) {
		return
	}
	out, err := h.deps.Categories.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) deleteCategory(c *gin.Context) {
	if err := h.deps.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("category deleted", zap.String("id", c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

func (h *handler) createSubcategory(c *gin.Context) {
	var in domain.Subcategory
	if !bind(c, &in) {
		return
	}
	out, err := h.deps.Subcategories.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("subcategory created", zap.String("id", out.ID), zap.String("slug", out.Slug))
	c.JSON(http.StatusCreated, out)
}

func (h *handler) updateSubcategory(c *gin.Context) {
	var in domain.Subcategory
	if !bind(c, &in) {
		return
	}
	out, err := h.deps.Subcategories.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) deleteSubcategory(c *gin.Context) {
	if err := h.deps.Subcategories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}

func (h *handler) createProduct(c *gin.Context) {
	var in domain.Product
	if !bind(c, &in) {
		return
	}
	out, err := h.deps.Products.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *handler) updateProduct(c *gin.Context) {
	var in domain.Product
	if !bind(c, &in) {
		return
	}
	out, err := h.deps.Products.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) deleteProduct(c *gin.Context) {
	if err := h.deps.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
