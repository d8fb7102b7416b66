package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"jewelry-storefront/internal/backend"
	"jewelry-storefront/internal/domain"
)

const token = "secret-admin-token"

type stubCategories struct {
	items []domain.Category
	next  int
}

func (s *stubCategories) List(context.Context) ([]domain.Category, error) { return s.items, nil }

func (s *stubCategories) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	for _, x := range s.items {
		if x.Slug == c.Slug {
			return nil, domain.ErrConflict
		}
	}
	if c.Name == "" || c.Slug == "" {
		return nil, domain.ErrValidation
	}
	s.next++
	c.ID = "cat-" + strconv.Itoa(s.next)
	s.items = append(s.items, c)
	return &c, nil
}

func (s *stubCategories) Update(_ context.Context, id string, c domain.Category) (*domain.Category, error) {
	for i, x := range s.items {
		if x.ID == id {
			c.ID = id
			s.items[i] = c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategories) Delete(_ context.Context, id string) error {
	for i, x := range s.items {
		if x.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubSubcategories struct {
	items []domain.Subcategory
}

func (s *stubSubcategories) List(context.Context) ([]domain.Subcategory, error) { return s.items, nil }

func (s *stubSubcategories) ListByCategory(_ context.Context, slug string) ([]domain.Subcategory, error) {
	out := []domain.Subcategory{}
	for _, x := range s.items {
		if x.CategorySlug == slug {
			out = append(out, x)
		}
	}
	return out, nil
}

func (s *stubSubcategories) Create(_ context.Context, sub domain.Subcategory) (*domain.Subcategory, error) {
	sub.ID = "sub-" + sub.Slug
	s.items = append(s.items, sub)
	return &sub, nil
}

func (s *stubSubcategories) Update(context.Context, string, domain.Subcategory) (*domain.Subcategory, error) {
	return nil, domain.ErrNotFound
}

func (s *stubSubcategories) Delete(context.Context, string) error { return domain.ErrNotFound }

type stubProducts struct {
	items []domain.Product
	err   error
}

func (s *stubProducts) List(context.Context) ([]domain.Product, error) { return s.items, s.err }

func (s *stubProducts) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.items {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "prod-" + p.Slug
	s.items = append(s.items, p)
	return &p, nil
}

func (s *stubProducts) Update(context.Context, string, domain.Product) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Delete(context.Context, string) error { return nil }

type stubCollections struct{}

func (stubCollections) List(context.Context) ([]domain.Collection, error) {
	return []domain.Collection{{ID: "col-1", Name: "Bridal", Slug: "bridal", IsActive: true}}, nil
}

type fixture struct {
	router     http.Handler
	categories *stubCategories
	subs       *stubSubcategories
	products   *stubProducts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		categories: &stubCategories{items: []domain.Category{{ID: "cat-0", Name: "Necklaces", Slug: "necklaces", IsActive: true}}},
		subs: &stubSubcategories{items: []domain.Subcategory{
			{ID: "sub-1", CategorySlug: "necklaces", Name: "Gold Chains", Slug: "gold-chains", IsActive: true},
			{ID: "sub-2", CategorySlug: "rings", Name: "Bands", Slug: "bands", IsActive: true},
		}},
		products: &stubProducts{items: []domain.Product{{
			ID: "prod-1", Name: "Rope Chain", Slug: "rope-chain", SKU: "NCK-1", CategorySlug: "necklaces",
			SubCategorySlug: "gold-chains", IsActive: true,
			Pricing: domain.Pricing{BasePrice: decimal.NewFromInt(500), DiscountedPrice: decimal.NewFromInt(450)},
		}}},
	}
	router, err := NewRouter(nil, Deps{
		Categories:    f.categories,
		Subcategories: f.subs,
		Products:      f.products,
		Collections:   stubCollections{},
		AdminToken:    token,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	f.router = router
	return f
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestNewRouterRequiresToken(t *testing.T) {
	_, err := NewRouter(nil, Deps{
		Categories:    &stubCategories{},
		Subcategories: &stubSubcategories{},
		Products:      &stubProducts{},
		Collections:   stubCollections{},
	})
	if err == nil {
		t.Fatalf("expected error without admin token")
	}
}

func TestPublicReads(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/subcategories/category/necklaces", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var subs []domain.Subcategory
	if err := json.Unmarshal(rec.Body.Bytes(), &subs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(subs) != 1 || subs[0].Slug != "gold-chains" {
		t.Fatalf("unexpected subcategories %+v", subs)
	}

	rec = f.do(t, http.MethodGet, "/products/slug/rope-chain", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for product, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/products/slug/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListFailureIsInternalError(t *testing.T) {
	f := newFixture(t)
	f.products.err = errors.New("connection refused")

	rec := f.do(t, http.MethodGet, "/products", "", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"error":"internal error"`)) {
		t.Fatalf("expected masked error body, got %s", rec.Body.String())
	}
}

func TestAdminRequiresBearerToken(t *testing.T) {
	f := newFixture(t)
	body := domain.Category{Name: "Rings", Slug: "rings"}

	if rec := f.do(t, http.MethodPost, "/admin/category", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/admin/category", "wrong", body); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong token, got %d", rec.Code)
	}
	if len(f.categories.items) != 1 {
		t.Fatalf("unauthorized writes must not reach the service")
	}
}

func TestAdminCategoryLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/category", token, domain.Category{Name: "Rings", Slug: "rings", IsActive: true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = f.do(t, http.MethodPost, "/admin/category", token, domain.Category{Name: "Rings again", Slug: "rings"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate slug, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPut, "/admin/category/"+created.ID, token, domain.Category{Name: "Fine Rings", Slug: "rings"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodDelete, "/admin/category/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}
	rec = f.do(t, http.MethodDelete, "/admin/category/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestAdminRejectsMalformedJSON(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// The storefront's backend client must be able to consume every route.
func TestStorefrontClientContract(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	client := backend.New(backend.Options{PublicURL: srv.URL, AdminURL: srv.URL + "/admin"}, nil)
	ctx := context.Background()

	cats, err := client.Categories(ctx)
	if err != nil || len(cats) != 1 {
		t.Fatalf("categories: %v %+v", err, cats)
	}
	subs, err := client.SubcategoriesByCategory(ctx, "necklaces")
	if err != nil || len(subs) != 1 {
		t.Fatalf("subcategories by category: %v %+v", err, subs)
	}
	p, err := client.ProductBySlug(ctx, "rope-chain")
	if err != nil {
		t.Fatalf("product by slug: %v", err)
	}
	if !p.Pricing.DiscountedPrice.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected price %s", p.Pricing.DiscountedPrice)
	}
	if _, err := client.ProductBySlug(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	cols, err := client.Collections(ctx)
	if err != nil || len(cols) != 1 {
		t.Fatalf("collections: %v %+v", err, cols)
	}

	admin := client.Admin(token)
	created, err := admin.CreateSubcategory(ctx, domain.Subcategory{CategorySlug: "necklaces", Name: "Pendants", Slug: "pendants"})
	if err != nil {
		t.Fatalf("create subcategory: %v", err)
	}
	if created.ID != "sub-pendants" {
		t.Fatalf("unexpected created subcategory %+v", created)
	}
	if _, err := admin.CreateCategory(ctx, domain.Category{Name: "Necklaces", Slug: "necklaces"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := client.Admin("wrong").DeleteProduct(ctx, "prod-1"); err == nil {
		t.Fatalf("expected forbidden error")
	}
}
