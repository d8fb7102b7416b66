package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jewelry-storefront/internal/backend"
	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/editor"
	"jewelry-storefront/internal/session"
)

type stubBackend struct {
	categories    []domain.Category
	subcategories []domain.Subcategory
	products      []domain.Product
	collections   []domain.Collection
	productsErr    error
	collectionsErr error
	pingErr        error
}

func (s *stubBackend) Categories(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubBackend) Subcategories(_ context.Context) ([]domain.Subcategory, error) {
	return s.subcategories, nil
}

func (s *stubBackend) Products(_ context.Context) ([]domain.Product, error) {
	return s.products, s.productsErr
}

func (s *stubBackend) Collections(_ context.Context) ([]domain.Collection, error) {
	return s.collections, s.collectionsErr
}

func (s *stubBackend) Ping(_ context.Context) error {
	return s.pingErr
}

func (s *stubBackend) ProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, &backend.APIError{Status: http.StatusNotFound, Message: "product not found"}
}

type stubWriter struct {
	token      string
	categories []domain.Category
	deleted    []string
	err        error
}

func (w *stubWriter) CreateCategory(_ context.Context, in domain.Category) (domain.Category, error) {
	if w.err != nil {
		return domain.Category{}, w.err
	}
	in.ID = "cat-new"
	w.categories = append(w.categories, in)
	return in, nil
}

func (w *stubWriter) UpdateCategory(_ context.Context, id string, in domain.Category) (domain.Category, error) {
	in.ID = id
	w.categories = append(w.categories, in)
	return in, w.err
}

func (w *stubWriter) DeleteCategory(_ context.Context, id string) error {
	w.deleted = append(w.deleted, id)
	return w.err
}

func (w *stubWriter) CreateSubcategory(_ context.Context, in domain.Subcategory) (domain.Subcategory, error) {
	return in, w.err
}

func (w *stubWriter) UpdateSubcategory(_ context.Context, _ string, in domain.Subcategory) (domain.Subcategory, error) {
	return in, w.err
}

func (w *stubWriter) DeleteSubcategory(_ context.Context, id string) error {
	w.deleted = append(w.deleted, id)
	return w.err
}

func (w *stubWriter) CreateProduct(_ context.Context, in domain.Product) (domain.Product, error) {
	return in, w.err
}

func (w *stubWriter) UpdateProduct(_ context.Context, _ string, in domain.Product) (domain.Product, error) {
	return in, w.err
}

func (w *stubWriter) DeleteProduct(_ context.Context, id string) error {
	w.deleted = append(w.deleted, id)
	return w.err
}

func fixtureBackend() *stubBackend {
	return &stubBackend{
		categories: []domain.Category{
			{ID: "c1", Name: "Rings", Slug: "rings", IsActive: true},
			{ID: "c2", Name: "Necklaces", Slug: "necklaces", SortOrder: 1, IsActive: true},
		},
		subcategories: []domain.Subcategory{
			{ID: "s1", CategorySlug: "rings", Name: "Engagement", Slug: "engagement", IsActive: true},
			{ID: "s2", CategorySlug: "rings", Name: "Vintage", Slug: "vintage", IsActive: false},
		},
		products: []domain.Product{
			{
				ID: "p1", Name: "Solitaire Ring", Slug: "solitaire-ring", SKU: "RG-1",
				CategorySlug: "rings", SubCategorySlug: "engagement", IsActive: true,
				Pricing:   domain.Pricing{BasePrice: decimal.NewFromInt(1000), DiscountedPrice: decimal.NewFromInt(850)},
				Inventory: domain.Inventory{Stock: 0, InStock: true},
			},
			{ID: "p2", Name: "Signet Ring", Slug: "signet-ring", SKU: "RG-2", CategorySlug: "rings", IsActive: true},
			{ID: "p3", Name: "Hidden Ring", Slug: "hidden-ring", SKU: "RG-3", CategorySlug: "rings", IsActive: false},
			{
				ID: "p4", Name: "Layered Chain", Slug: "layered-chain", SKU: "NK-1", CategorySlug: "necklaces", IsActive: true,
				Tags: []string{"bridal"},
				NecklaceLayers: []domain.Layer{
					{Weight: 8, BasePrice: decimal.NewFromInt(400), DiscountedPrice: decimal.NewFromInt(300)},
				},
			},
		},
		collections: []domain.Collection{
			{ID: "k1", Name: "Bridal Edit", Slug: "bridal", IsActive: true},
			{ID: "k2", Name: "Archive", Slug: "archive", IsActive: false},
		},
	}
}

type harness struct {
	router  *gin.Engine
	backend *stubBackend
	writer  *stubWriter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := &harness{backend: fixtureBackend(), writer: &stubWriter{}}
	sessions, err := session.NewManager(config.SessionConfig{
		Key:      "router-test-signing-key-0123456789",
		BlockKey: "router-test-block-key-0123456789",
		MaxAge:   time.Hour,
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	router, err := buildRouter(nil, Deps{
		Backend: h.backend,
		Writer: func(token string) editor.Writer {
			h.writer.token = token
			return h.writer
		},
		Sessions:    sessions,
		CORSOrigins: []string{"http://localhost:5173"},
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	h.router = router
	return h
}

func (h *harness) do(method, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login(t *testing.T) []*http.Cookie {
	t.Helper()
	rec := h.do(http.MethodPost, "/admin/api/session", `{"token":"tok-1","user":{"id":"u1","name":"Ada","isAdmin":true}}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthAndReady(t *testing.T) {
	h := newHarness(t)
	if rec := h.do(http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := h.do(http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
	h.backend.pingErr = errors.New("down")
	if rec := h.do(http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with backend down: %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/healthz", "", nil)
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestCategoryListing(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/products/category/rings", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	v := decode[listingView](t, rec)
	if v.Title != "Rings" || v.Selection.CategorySlug != "rings" {
		t.Fatalf("unexpected listing %+v", v)
	}
	if len(v.Subcategories) != 1 || v.Subcategories[0].URL != "/products/category/rings/engagement" {
		t.Fatalf("expected active subcategories only, got %+v", v.Subcategories)
	}
	if v.Total != 2 {
		t.Fatalf("expected the two active rings, got %+v", v.Products)
	}
	if v.Products[0].URL != "/products/category/rings/solitaire-ring" {
		t.Fatalf("card url lost listing context: %s", v.Products[0].URL)
	}
	if v.Products[0].Price.DiscountPercent != 15 {
		t.Fatalf("unexpected price %+v", v.Products[0].Price)
	}
}

func TestSearchAndCollectionListings(t *testing.T) {
	h := newHarness(t)
	v := decode[listingView](t, h.do(http.MethodGet, "/products?q=rg-2", "", nil))
	if v.Total != 1 || v.Products[0].Slug != "signet-ring" || v.Selection.Search != "rg-2" {
		t.Fatalf("unexpected search listing %+v", v)
	}

	v = decode[listingView](t, h.do(http.MethodGet, "/products/collection/bridal", "", nil))
	if v.Total != 1 || v.Title != "Bridal Edit" || v.Products[0].URL != "/product/layered-chain" {
		t.Fatalf("unexpected collection listing %+v", v)
	}
}

func TestCategoryScopedProductDetail(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/products/category/rings/signet-ring", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	v := decode[detailView](t, rec)
	if v.Product.Slug != "signet-ring" {
		t.Fatalf("expected detail for signet-ring, got %+v", v.Product)
	}
	last := v.Breadcrumbs[len(v.Breadcrumbs)-1]
	if last.Label != "Signet Ring" || last.Path != "" {
		t.Fatalf("unexpected terminal crumb %+v", last)
	}
}

func TestProductDetail_PriceLayersAndCrumbs(t *testing.T) {
	h := newHarness(t)
	v := decode[detailView](t, h.do(http.MethodGet, "/product/solitaire-ring", "", nil))
	if !v.Purchasable {
		t.Fatalf("inStock should make the product purchasable")
	}
	labels := make([]string, 0, len(v.Breadcrumbs))
	for _, c := range v.Breadcrumbs {
		labels = append(labels, c.Label)
	}
	if strings.Join(labels, ">") != "Home>Products>Rings>Engagement>Solitaire Ring" {
		t.Fatalf("unexpected breadcrumbs %v", labels)
	}

	v = decode[detailView](t, h.do(http.MethodGet, "/product/layered-chain", "", nil))
	if len(v.Layers) != 1 || v.Layers[0].Price.DiscountPercent != 25 || !v.Layers[0].Price.Current.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected layers %+v", v.Layers)
	}
}

func TestProductDetail_NotFound(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/product/nope", "/product/hidden-ring"} {
		rec := h.do(http.MethodGet, path, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"links"`) {
			t.Fatalf("%s: expected escape links, got %s", path, rec.Body.String())
		}
	}
	if rec := h.do(http.MethodGet, "/products/category/a/b/c/d", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown shape, got %d", rec.Code)
	}
}

func TestListing_LoadFailureNamesCollection(t *testing.T) {
	h := newHarness(t)
	h.backend.productsErr = &backend.APIError{Status: http.StatusInternalServerError, Message: "HTTP 500: Internal Server Error"}
	rec := h.do(http.MethodGet, "/products", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["collection"] != "products" {
		t.Fatalf("expected failing collection to be named, got %v", body)
	}
}

func TestHierarchyViews_IgnoreCollectionsOutage(t *testing.T) {
	h := newHarness(t)
	h.backend.collectionsErr = &backend.APIError{Status: http.StatusServiceUnavailable, Message: "collections endpoint unavailable"}

	for _, path := range []string{"/products/category/rings", "/products/category/rings/signet-ring", "/product/solitaire-ring", "/products?q=ring"} {
		if rec := h.do(http.MethodGet, path, "", nil); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d body=%s", path, rec.Code, rec.Body.String())
		}
	}

	rec := h.do(http.MethodGet, "/products/collection/bridal", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("collection listing: expected 502, got %d", rec.Code)
	}
	if body := decode[map[string]string](t, rec); body["collection"] != "collections" {
		t.Fatalf("expected failing collection to be named, got %v", body)
	}
}

func TestNavigationAndCollections(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/navigation", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("navigation: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"slug":"engagement"`) || strings.Contains(rec.Body.String(), `"slug":"vintage"`) {
		t.Fatalf("unexpected navigation %s", rec.Body.String())
	}

	cols := decode[[]domain.Collection](t, h.do(http.MethodGet, "/collections", "", nil))
	if len(cols) != 1 || cols[0].Slug != "bridal" {
		t.Fatalf("unexpected collections %+v", cols)
	}
}

func TestAdmin_RequiresSession(t *testing.T) {
	h := newHarness(t)
	if rec := h.do(http.MethodGet, "/admin/api/categories", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	rec := h.do(http.MethodPost, "/admin/api/session", `{"token":"t","user":{"id":"u2","isAdmin":false}}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestAdmin_CreateCategoryWithManualSlug(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t)

	rec := h.do(http.MethodPost, "/admin/api/categories", `{"name":"Gold Chains"}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = h.do(http.MethodPost, "/admin/api/categories", `{"name":"Gold Chains","slug":"gold-chain"}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(h.writer.categories) != 2 || h.writer.categories[0].Slug != "gold-chains" || h.writer.categories[1].Slug != "gold-chain" {
		t.Fatalf("unexpected writes %+v", h.writer.categories)
	}
	if !h.writer.categories[0].IsActive {
		t.Fatalf("expected isActive default")
	}
	if h.writer.token != "tok-1" {
		t.Fatalf("expected session token to reach the writer, got %q", h.writer.token)
	}
}

func TestAdmin_CreateIncompleteAndConflict(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t)

	rec := h.do(http.MethodPost, "/admin/api/subcategories", `{"name":"Hoops"}`, cookies)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "categorySlug") {
		t.Fatalf("expected 400 naming categorySlug, got %d body=%s", rec.Code, rec.Body.String())
	}

	h.writer.err = &backend.APIError{Status: http.StatusConflict, Message: "slug already exists"}
	rec = h.do(http.MethodPost, "/admin/api/categories", `{"name":"Rings"}`, cookies)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAdmin_UpdateKeepsSlug(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t)

	rec := h.do(http.MethodPut, "/admin/api/categories/c1", `{"name":"Fine Rings"}`, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	got := h.writer.categories[0]
	if got.ID != "c1" || got.Name != "Fine Rings" || got.Slug != "rings" || !got.IsActive {
		t.Fatalf("unexpected update %+v", got)
	}
	if rec := h.do(http.MethodPut, "/admin/api/categories/missing", `{"name":"x"}`, cookies); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdmin_DeleteNeedsConfirm(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t)

	rec := h.do(http.MethodDelete, "/admin/api/subcategories/s1", "", cookies)
	if rec.Code != http.StatusConflict || len(h.writer.deleted) != 0 {
		t.Fatalf("expected 409 without a backend call, got %d deletes=%v", rec.Code, h.writer.deleted)
	}
	rec = h.do(http.MethodDelete, "/admin/api/subcategories/s1?confirm=true", "", cookies)
	if rec.Code != http.StatusNoContent || len(h.writer.deleted) != 1 {
		t.Fatalf("expected 204 and one delete, got %d deletes=%v", rec.Code, h.writer.deleted)
	}
}

func TestAdmin_SubcategoryOptionsAndProducts(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t)

	opts := decode[[]domain.Subcategory](t, h.do(http.MethodGet, "/admin/api/subcategory-options?category=rings", "", cookies))
	if len(opts) != 2 {
		t.Fatalf("expected both rings subcategories, got %+v", opts)
	}

	h.backend.products = append(h.backend.products, domain.Product{ID: "p9", Name: "Orphan", Slug: "orphan", SKU: "X", CategorySlug: "rings", SubCategorySlug: "deleted"})
	rows := decode[[]map[string]any](t, h.do(http.MethodGet, "/admin/api/products?q=orphan", "", cookies))
	if len(rows) != 1 || rows[0]["subcategoryName"] != "" || rows[0]["categoryName"] != "Rings" {
		t.Fatalf("unexpected product rows %+v", rows)
	}
}

func TestAdmin_LogoutClearsSession(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t)
	if rec := h.do(http.MethodGet, "/admin/api/session", "", cookies); rec.Code != http.StatusOK {
		t.Fatalf("whoami: %d", rec.Code)
	}
	rec := h.do(http.MethodDelete, "/admin/api/session", "", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: %d", rec.Code)
	}
	if rec := h.do(http.MethodGet, "/admin/api/session", "", rec.Result().Cookies()); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestPriceOf(t *testing.T) {
	cases := []struct {
		base, discounted int64
		current          int64
		percent          int64
	}{
		{1000, 850, 850, 15},
		{1000, 0, 1000, 0},
		{1000, 1200, 1200, 0},
		{0, 0, 0, 0},
		{3, 2, 2, 33},
	}
	for _, tc := range cases {
		v := priceOf(decimal.NewFromInt(tc.base), decimal.NewFromInt(tc.discounted))
		if !v.Current.Equal(decimal.NewFromInt(tc.current)) || v.DiscountPercent != tc.percent {
			t.Fatalf("priceOf(%d, %d) = %+v", tc.base, tc.discounted, v)
		}
	}
}
