package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/editor"
	"jewelry-storefront/internal/session"
)

const adminCtxKey = "admin"

type adminHandler struct {
	backend  Backend
	writer   func(token string) editor.Writer
	sessions *session.Manager
	logger   *zap.Logger
}

type loginRequest struct {
	Token string       `json:"token" binding:"required"`
	User  session.User `json:"user"`
}

// login stores a token issued by the backend together with its user.
func (h *adminHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "token and user are required"})
		return
	}
	if !req.User.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	if err := h.sessions.Save(c.Writer, c.Request, session.Admin{Token: req.Token, User: req.User}); err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("admin session started", zap.String("user_id", req.User.ID))
	c.JSON(http.StatusOK, gin.H{"user": req.User})
}

func (h *adminHandler) logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *adminHandler) whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": adminFrom(c).User})
}

func (h *adminHandler) requireAdmin(c *gin.Context) {
	a, err := h.sessions.Load(c.Writer, c.Request)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(adminCtxKey, a)
	c.Next()
}

func adminFrom(c *gin.Context) session.Admin {
	a, _ := c.MustGet(adminCtxKey).(session.Admin)
	return a
}

// open builds editor dependencies backed by a per-request store preloaded
// with kinds.
func (h *adminHandler) open(c *gin.Context, kinds ...domain.EntityKind) (editor.Deps, catalog.Catalog, bool) {
	store := catalog.NewStore(h.backend, h.logger)
	if len(kinds) > 0 {
		if err := store.Reload(c.Request.Context(), kinds...); err != nil {
			writeError(c, err)
			return editor.Deps{}, catalog.Catalog{}, false
		}
	}
	deps := editor.Deps{
		Writer:    h.writer(adminFrom(c).Token),
		Refresher: store,
		Catalog:   store,
		Logger:    h.logger,
	}
	return deps, store.Snapshot(), true
}

func (h *adminHandler) tree(c *gin.Context) {
	_, cat, ok := h.open(c, domain.Kinds...)
	if !ok {
		return
	}
	dangling := cat.Dangling()
	if dangling == nil {
		dangling = []catalog.Dangling{}
	}
	c.JSON(http.StatusOK, gin.H{"tree": cat.Tree(), "dangling": dangling})
}

// subcategoryOptions lists what a product form offers after choosing a
// category.
func (h *adminHandler) subcategoryOptions(c *gin.Context) {
	deps, _, ok := h.open(c, domain.KindCategory, domain.KindSubcategory)
	if !ok {
		return
	}
	f := editor.NewProductForm(deps)
	if err := f.OpenCreate(); err != nil {
		writeError(c, err)
		return
	}
	if err := f.SetCategory(c.Query("category")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f.Options())
}

func (h *adminHandler) listCategories(c *gin.Context) {
	_, cat, ok := h.open(c, domain.KindCategory)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cat.CategoriesMatching(c.Query("q")))
}

func (h *adminHandler) listSubcategories(c *gin.Context) {
	_, cat, ok := h.open(c, domain.KindCategory, domain.KindSubcategory)
	if !ok {
		return
	}
	type row struct {
		domain.Subcategory
		CategoryName string `json:"categoryName"`
	}
	category := c.Query("category")
	out := []row{}
	for _, s := range cat.SubcategoriesMatching(c.Query("q")) {
		if category != "" && s.CategorySlug != category {
			continue
		}
		name, _ := cat.LookupName(domain.KindCategory, s.CategorySlug)
		out = append(out, row{Subcategory: s, CategoryName: name})
	}
	c.JSON(http.StatusOK, out)
}

type productRow struct {
	domain.Product
	CategoryName    string `json:"categoryName"`
	SubcategoryName string `json:"subcategoryName"`
}

// productRows filters products by the category, subcategory and q query
// parameters. Dangling references resolve to an empty name.
func productRows(c *gin.Context, cat catalog.Catalog) []productRow {
	out := []productRow{}
	for _, p := range cat.ProductsMatching(catalog.Query{
		CategorySlug:    c.Query("category"),
		SubCategorySlug: c.Query("subcategory"),
		Search:          c.Query("q"),
	}) {
		catName, _ := cat.LookupName(domain.KindCategory, p.CategorySlug)
		subName, _ := cat.LookupName(domain.KindSubcategory, p.SubCategorySlug)
		out = append(out, productRow{Product: p, CategoryName: catName, SubcategoryName: subName})
	}
	return out
}

func (h *adminHandler) listProducts(c *gin.Context) {
	_, cat, ok := h.open(c, domain.KindCategory, domain.KindSubcategory, domain.KindProduct)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, productRows(c, cat))
}

func (h *adminHandler) createCategory(c *gin.Context) {
	deps, _, ok := h.open(c)
	if !ok {
		return
	}
	create(c, editor.NewCategoryForm(deps))
}

func (h *adminHandler) updateCategory(c *gin.Context) {
	deps, cat, ok := h.open(c, domain.KindCategory)
	if !ok {
		return
	}
	for _, x := range cat.Categories {
		if x.ID == c.Param("id") {
			update(c, editor.NewCategoryForm(deps), editor.CategoryDraftFrom(x), editor.CategoryDraftFrom(x))
			return
		}
	}
	writeError(c, domain.ErrNotFound)
}

func (h *adminHandler) deleteCategory(c *gin.Context) {
	deps, _, ok := h.open(c)
	if !ok {
		return
	}
	remove(c, editor.NewCategoryForm(deps))
}

func (h *adminHandler) createSubcategory(c *gin.Context) {
	deps, _, ok := h.open(c, domain.KindCategory, domain.KindSubcategory)
	if !ok {
		return
	}
	create(c, editor.NewSubcategoryForm(deps))
}

func (h *adminHandler) updateSubcategory(c *gin.Context) {
	deps, cat, ok := h.open(c, domain.KindCategory, domain.KindSubcategory)
	if !ok {
		return
	}
	for _, x := range cat.Subcategories {
		if x.ID == c.Param("id") {
			update(c, editor.NewSubcategoryForm(deps), editor.SubcategoryDraftFrom(x), editor.SubcategoryDraftFrom(x))
			return
		}
	}
	writeError(c, domain.ErrNotFound)
}

func (h *adminHandler) deleteSubcategory(c *gin.Context) {
	deps, _, ok := h.open(c)
	if !ok {
		return
	}
	remove(c, editor.NewSubcategoryForm(deps))
}

func (h *adminHandler) createProduct(c *gin.Context) {
	deps, _, ok := h.open(c, domain.KindCategory, domain.KindSubcategory)
	if !ok {
		return
	}
	create(c, editor.NewProductForm(deps))
}

func (h *adminHandler) updateProduct(c *gin.Context) {
	deps, cat, ok := h.open(c, domain.KindCategory, domain.KindSubcategory, domain.KindProduct)
	if !ok {
		return
	}
	for _, x := range cat.Products {
		if x.ID == c.Param("id") {
			update(c, editor.NewProductForm(deps), editor.ProductDraftFrom(x), editor.ProductDraftFrom(x))
			return
		}
	}
	writeError(c, domain.ErrNotFound)
}

func (h *adminHandler) deleteProduct(c *gin.Context) {
	deps, _, ok := h.open(c)
	if !ok {
		return
	}
	remove(c, editor.NewProductForm(deps))
}

func create[D editor.Draft](c *gin.Context, f *editor.Form[D]) {
	in := f.Blank()
	if err := c.ShouldBindJSON(in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	if err := f.OpenCreate(); err != nil {
		writeError(c, err)
		return
	}
	if err := f.Apply(in); err != nil {
		writeError(c, err)
		return
	}
	submit(c, f, http.StatusCreated)
}

// update decodes the body over in, a copy of current, so omitted fields keep
// their stored values.
func update[D editor.Draft](c *gin.Context, f *editor.Form[D], current, in D) {
	if err := c.ShouldBindJSON(in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	if err := f.OpenEdit(current); err != nil {
		writeError(c, err)
		return
	}
	if err := f.Apply(in); err != nil {
		writeError(c, err)
		return
	}
	submit(c, f, http.StatusOK)
}

func submit[D editor.Draft](c *gin.Context, f *editor.Form[D], status int) {
	if !f.CanSubmit() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   editor.ErrIncomplete.Error(),
			"missing": f.MissingFields(),
		})
		return
	}
	saved, err := f.Submit(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(status, saved)
	case errors.Is(err, editor.ErrRefreshFailed):
		c.JSON(status, gin.H{"saved": saved, "warning": err.Error()})
	default:
		writeError(c, err)
	}
}

// remove only deletes with ?confirm=true; without it the request is answered
// with 409 and nothing is sent to the backend.
func remove[D editor.Draft](c *gin.Context, f *editor.Form[D]) {
	if err := f.RequestDelete(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	if c.Query("confirm") != "true" {
		f.CancelDelete()
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":   "delete requires confirmation",
			"pending": c.Param("id"),
		})
		return
	}
	err := f.ConfirmDelete(c.Request.Context())
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, editor.ErrRefreshFailed):
		c.JSON(http.StatusOK, gin.H{"warning": err.Error()})
	default:
		writeError(c, err)
	}
}
