package catalog

import (
	"cmp"
	"slices"

	"jewelry-storefront/internal/domain"
)

// MaxMainCategories is how many categories the top navigation shows before
// folding the rest into a "more" group.
const MaxMainCategories = 7

// NavCategory is a navigation entry with its active subcategories.
type NavCategory struct {
	domain.Category
	Subcategories []domain.Subcategory `json:"subcategories"`
}

// Navigation splits the active categories into the main bar and the overflow.
type Navigation struct {
	Main []NavCategory `json:"main"`
	More []NavCategory `json:"more"`
}

// ActiveCategories returns active categories ordered by SortOrder, keeping
// input order for ties.
func (c Catalog) ActiveCategories() []domain.Category {
	out := []domain.Category{}
	for _, cat := range c.Categories {
		if cat.IsActive {
			out = append(out, cat)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Category) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// Navigation builds the mega menu. A non-positive maxMain puts every
// category in Main.
func (c Catalog) Navigation(maxMain int) Navigation {
	nav := Navigation{Main: []NavCategory{}, More: []NavCategory{}}
	for i, cat := range c.ActiveCategories() {
		entry := NavCategory{Category: cat, Subcategories: []domain.Subcategory{}}
		for _, sub := range c.SubcategoriesOf(cat.Slug) {
			if sub.IsActive {
				entry.Subcategories = append(entry.Subcategories, sub)
			}
		}
		if maxMain <= 0 || i < maxMain {
			nav.Main = append(nav.Main, entry)
		} else {
			nav.More = append(nav.More, entry)
		}
	}
	return nav
}

// TreeNode is a category with its subcategories and product counts.
type TreeNode struct {
	Category      domain.Category   `json:"category"`
	Subcategories []SubcategoryNode `json:"subcategories"`
	// Products counts every product of the category, including those in
	// subcategories.
	Products int `json:"products"`
}

type SubcategoryNode struct {
	Subcategory domain.Subcategory `json:"subcategory"`
	Products    int                `json:"products"`
}

// Tree returns every category in SortOrder with its subcategories.
func (c Catalog) Tree() []TreeNode {
	cats := slices.Clone(c.Categories)
	slices.SortStableFunc(cats, func(a, b domain.Category) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	nodes := make([]TreeNode, 0, len(cats))
	for _, cat := range cats {
		node := TreeNode{
			Category:      cat,
			Subcategories: []SubcategoryNode{},
			Products:      len(c.ProductsMatching(Query{CategorySlug: cat.Slug})),
		}
		for _, sub := range c.SubcategoriesOf(cat.Slug) {
			node.Subcategories = append(node.Subcategories, SubcategoryNode{
				Subcategory: sub,
				Products:    len(c.ProductsMatching(Query{CategorySlug: cat.Slug, SubCategorySlug: sub.Slug})),
			})
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Dangling describes a foreign key that does not resolve.
type Dangling struct {
	Kind  domain.EntityKind `json:"kind"`
	Slug  string            `json:"slug"`
	Field string            `json:"field"`
	Value string            `json:"value"`
}

// Dangling reports subcategories whose category is missing, and products
// whose category is missing or whose subcategory is missing or belongs to a
// different category. Nothing is corrected.
func (c Catalog) Dangling() []Dangling {
	var out []Dangling
	for _, s := range c.Subcategories {
		if _, ok := c.CategoryBySlug(s.CategorySlug); !ok {
			out = append(out, Dangling{Kind: domain.KindSubcategory, Slug: s.Slug, Field: "categorySlug", Value: s.CategorySlug})
		}
	}
	for _, p := range c.Products {
		if _, ok := c.CategoryBySlug(p.CategorySlug); !ok {
			out = append(out, Dangling{Kind: domain.KindProduct, Slug: p.Slug, Field: "categorySlug", Value: p.CategorySlug})
		}
		if p.SubCategorySlug != "" && !c.IsSubcategoryOf(p.CategorySlug, p.SubCategorySlug) {
			out = append(out, Dangling{Kind: domain.KindProduct, Slug: p.Slug, Field: "subCategorySlug", Value: p.SubCategorySlug})
		}
	}
	return out
}
