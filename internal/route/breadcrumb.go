package route

import (
	"strings"

	"jewelry-storefront/internal/domain"
)

// Crumb is one breadcrumb entry. The terminal product crumb has no Path.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path,omitempty"`
}

// NameResolver turns slugs into display names.
type NameResolver interface {
	DisplayName(kind domain.EntityKind, slug string) string
}

// Breadcrumbs builds Home → Products → Category → Subcategory → Product.
// productName is used for the terminal crumb of product selections; when it
// is empty the product crumb is omitted. With a nil resolver, labels are the
// slugs with hyphens turned into spaces.
func Breadcrumbs(s Selection, names NameResolver, productName string) []Crumb {
	label := func(kind domain.EntityKind, slug string) string {
		if names != nil {
			return names.DisplayName(kind, slug)
		}
		return strings.ReplaceAll(slug, "-", " ")
	}

	crumbs := []Crumb{
		{Label: "Home", Path: "/"},
		{Label: "Products", Path: ProductsPath},
	}
	if s.CollectionSlug != "" {
		p, _ := Build(Selection{CollectionSlug: s.CollectionSlug})
		crumbs = append(crumbs, Crumb{Label: label(domain.KindCollection, s.CollectionSlug), Path: p})
	}
	if s.CategorySlug != "" {
		p, _ := Build(Selection{CategorySlug: s.CategorySlug})
		crumbs = append(crumbs, Crumb{Label: label(domain.KindCategory, s.CategorySlug), Path: p})
		if s.SubCategorySlug != "" {
			p, _ := Build(Selection{CategorySlug: s.CategorySlug, SubCategorySlug: s.SubCategorySlug})
			crumbs = append(crumbs, Crumb{Label: label(domain.KindSubcategory, s.SubCategorySlug), Path: p})
		}
	}
	if s.ProductSlug != "" && productName != "" {
		crumbs = append(crumbs, Crumb{Label: productName})
	}
	return crumbs
}
