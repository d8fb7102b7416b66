package seed

import (
	"context"
	"errors"
	"testing"

	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
)

type recorder struct {
	cats  []domain.Category
	subs  []domain.Subcategory
	prods []domain.Product
	cols  []domain.Collection
	fail  bool
}

func (r *recorder) cat() CategoryWriter { return catWriter{r} }
func (r *recorder) sub() SubcategoryWriter { return subWriter{r} }
func (r *recorder) prod() ProductWriter { return prodWriter{r} }
func (r *recorder) col() CollectionWriter { return colWriter{r} }
func (r *recorder) writers() Writers { return Writers{r.cat(), r.sub(), r.prod(), r.col()} }
func (r *recorder) snapshot() catalog.Catalog { return catalog.Catalog{Categories: r.cats, Subcategories: r.subs, Products: r.prods, Collections: r.cols} }

type catWriter struct{ r *recorder }
type subWriter struct{ r *recorder }
type prodWriter struct{ r *recorder }
type colWriter struct{ r *recorder }

func (w catWriter) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	if w.r.fail {
		return nil, errors.New("db down")
	}
	w.r.cats = append(w.r.cats, c)
	return &c, nil
}

func (w subWriter) Upsert(_ context.Context, s domain.Subcategory) (*domain.Subcategory, error) {
	w.r.subs = append(w.r.subs, s)
	return &s, nil
}

func (w prodWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	w.r.prods = append(w.r.prods, p)
	return &p, nil
}

func (w colWriter) Upsert(_ context.Context, c domain.Collection) (*domain.Collection, error) {
	w.r.cols = append(w.r.cols, c)
	return &c, nil
}

func TestApplyProducesConsistentHierarchy(t *testing.T) {
	r := &recorder{}
	if err := Apply(context.Background(), r.writers(), nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	cat := r.snapshot()
	if d := cat.Dangling(); len(d) != 0 {
		t.Fatalf("seed data must not contain dangling references, got %+v", d)
	}
	nav := cat.Navigation(catalog.MaxMainCategories)
	if len(nav.Main) != catalog.MaxMainCategories || len(nav.More) == 0 {
		t.Fatalf("expected navigation overflow, got %d main and %d more", len(nav.Main), len(nav.More))
	}
	if len(cat.ActiveCollections()) != 2 {
		t.Fatalf("expected 2 active collections, got %d", len(cat.ActiveCollections()))
	}
}

func TestApplyStopsOnError(t *testing.T) {
	r := &recorder{fail: true}
	if err := Apply(context.Background(), r.writers(), nil); err == nil {
		t.Fatalf("expected error")
	}
	if len(r.prods) != 0 {
		t.Fatalf("nothing after a failed category write should be applied")
	}
}
