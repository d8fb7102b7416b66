// Package catalog holds fetched catalog collections and derives the filtered
// views used by navigation, listings, breadcrumbs and the admin editors.
//
// Every Catalog method is a pure function of the collections it holds. Nil
// collections behave as empty ones and dangling foreign keys are never
// corrected; they simply never match.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"jewelry-storefront/internal/domain"
)

// Catalog is a snapshot of the backend collections. Callers must not mutate
// the slices of a snapshot obtained from a Store.
type Catalog struct {
	Categories    []domain.Category
	Subcategories []domain.Subcategory
	Products      []domain.Product
	Collections   []domain.Collection
}

// Query selects products. Empty fields do not filter.
type Query struct {
	CategorySlug    string
	SubCategorySlug string
	CollectionSlug  string
	Search          string
	ActiveOnly      bool
}

// SubcategoriesOf returns the subcategories of categorySlug ordered by
// SortOrder ascending, keeping input order for equal SortOrder.
func (c Catalog) SubcategoriesOf(categorySlug string) []domain.Subcategory {
	out := []domain.Subcategory{}
	if categorySlug == "" {
		return out
	}
	for _, s := range c.Subcategories {
		if s.CategorySlug == categorySlug {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Subcategory) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// ProductsMatching filters products by q, preserving input order. Search is a
// case-insensitive substring match on name or sku.
func (c Catalog) ProductsMatching(q Query) []domain.Product {
	term := normalize(q.Search)
	out := []domain.Product{}
	for _, p := range c.Products {
		if q.ActiveOnly && !p.IsActive {
			continue
		}
		if q.CategorySlug != "" && p.CategorySlug != q.CategorySlug {
			continue
		}
		if q.SubCategorySlug != "" && p.SubCategorySlug != q.SubCategorySlug {
			continue
		}
		if q.CollectionSlug != "" && !p.HasTag(q.CollectionSlug) {
			continue
		}
		if term != "" && !contains(p.Name, term) && !contains(p.SKU, term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategoriesMatching filters categories by name or slug.
func (c Catalog) CategoriesMatching(search string) []domain.Category {
	term := normalize(search)
	out := []domain.Category{}
	for _, cat := range c.Categories {
		if term == "" || contains(cat.Name, term) || contains(cat.Slug, term) {
			out = append(out, cat)
		}
	}
	return out
}

// SubcategoriesMatching filters subcategories by name or slug.
func (c Catalog) SubcategoriesMatching(search string) []domain.Subcategory {
	term := normalize(search)
	out := []domain.Subcategory{}
	for _, s := range c.Subcategories {
		if term == "" || contains(s.Name, term) || contains(s.Slug, term) {
			out = append(out, s)
		}
	}
	return out
}

// LookupName returns the display name of the entity of the given kind with
// slug, and false when no such entity is loaded.
func (c Catalog) LookupName(kind domain.EntityKind, slug string) (string, bool) {
	switch kind {
	case domain.KindCategory:
		for _, x := range c.Categories {
			if x.Slug == slug {
				return x.Name, true
			}
		}
	case domain.KindSubcategory:
		for _, x := range c.Subcategories {
			if x.Slug == slug {
				return x.Name, true
			}
		}
	case domain.KindProduct:
		for _, x := range c.Products {
			if x.Slug == slug {
				return x.Name, true
			}
		}
	case domain.KindCollection:
		for _, x := range c.Collections {
			if x.Slug == slug {
				return x.Name, true
			}
		}
	}
	return "", false
}

// DisplayName is LookupName falling back to the slug itself.
func (c Catalog) DisplayName(kind domain.EntityKind, slug string) string {
	if name, ok := c.LookupName(kind, slug); ok {
		return name
	}
	return slug
}

// ProductBySlug finds a product by slug.
func (c Catalog) ProductBySlug(slug string) (domain.Product, bool) {
	for _, p := range c.Products {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}

// CategoryBySlug finds a category by slug.
func (c Catalog) CategoryBySlug(slug string) (domain.Category, bool) {
	for _, cat := range c.Categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return domain.Category{}, false
}

// IsSubcategoryOf reports whether slug names a subcategory of categorySlug.
func (c Catalog) IsSubcategoryOf(categorySlug, slug string) bool {
	for _, s := range c.Subcategories {
		if s.Slug == slug && s.CategorySlug == categorySlug {
			return true
		}
	}
	return false
}

// HasProduct reports whether a product with slug is loaded.
func (c Catalog) HasProduct(slug string) bool {
	_, ok := c.ProductBySlug(slug)
	return ok
}

// ActiveCollections returns the collections flagged active, in input order.
func (c Catalog) ActiveCollections() []domain.Collection {
	out := []domain.Collection{}
	for _, col := range c.Collections {
		if col.IsActive {
			out = append(out, col)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(field, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(field), lowerTerm)
}
