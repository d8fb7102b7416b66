// Package route maps storefront URL paths to hierarchy selections and back.
//
// Supported shapes, most specific first:
//
//	/products[?q=term]
//	/products/category/:categorySlug/:subCategorySlug/:slug
//	/products/category/:categorySlug/:subCategorySlug
//	/products/category/:categorySlug/:slug
//	/products/category/:categorySlug
//	/products/collection/:collectionSlug
//	/product/:slug
//
// The listing shape /products/category/:c/:s and the detail shape
// /products/category/:c/:slug share a path. Parse resolves it as the listing;
// ParseWith asks a Classifier first.
package route

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrUnknownRoute is returned for paths outside the storefront surface.
	ErrUnknownRoute = errors.New("unknown storefront route")
	// ErrInvalidSelection is returned when no route shape encodes a selection.
	ErrInvalidSelection = errors.New("selection has no route")
)

const (
	ProductsPath   = "/products"
	productPrefix  = "/product/"
	categoryPart   = "category"
	collectionPart = "collection"
	searchParam    = "q"
)

// Selection is the catalog context a URL encodes. Empty fields are unset.
type Selection struct {
	CategorySlug    string `json:"categorySlug,omitempty"`
	SubCategorySlug string `json:"subCategorySlug,omitempty"`
	ProductSlug     string `json:"productSlug,omitempty"`
	CollectionSlug  string `json:"collectionSlug,omitempty"`
	Search          string `json:"searchTerm,omitempty"`
}

// IsProduct reports whether the selection points at a single product.
func (s Selection) IsProduct() bool {
	return s.ProductSlug != ""
}

// Classifier disambiguates /products/category/:c/:x against loaded data.
type Classifier interface {
	IsSubcategoryOf(categorySlug, slug string) bool
	HasProduct(slug string) bool
}

// Parse maps a path and raw query to a selection without catalog knowledge.
func Parse(path, rawQuery string) (Selection, error) {
	return ParseWith(path, rawQuery, nil)
}

// ParseWith maps a path and raw query to a selection. When cl is non-nil and
// the second segment after the category is not one of its subcategories but
// is a known product slug, the path is read as a product detail route.
func ParseWith(path, rawQuery string, cl Classifier) (Selection, error) {
	segs, err := segments(path)
	if err != nil {
		return Selection{}, err
	}
	search, err := searchTerm(rawQuery)
	if err != nil {
		return Selection{}, err
	}

	switch {
	case len(segs) == 2 && segs[0] == "product":
		return Selection{ProductSlug: segs[1]}, nil
	case len(segs) == 0 || segs[0] != "products":
		return Selection{}, ErrUnknownRoute
	}

	rest := segs[1:]
	switch {
	case len(rest) == 0:
		return Selection{Search: search}, nil
	case rest[0] == collectionPart && len(rest) == 2:
		return Selection{CollectionSlug: rest[1], Search: search}, nil
	case rest[0] != categoryPart:
		return Selection{}, ErrUnknownRoute
	}

	switch args := rest[1:]; len(args) {
	case 1:
		return Selection{CategorySlug: args[0], Search: search}, nil
	case 2:
		if cl != nil && !cl.IsSubcategoryOf(args[0], args[1]) && cl.HasProduct(args[1]) {
			return Selection{CategorySlug: args[0], ProductSlug: args[1]}, nil
		}
		return Selection{CategorySlug: args[0], SubCategorySlug: args[1], Search: search}, nil
	case 3:
		return Selection{CategorySlug: args[0], SubCategorySlug: args[1], ProductSlug: args[2]}, nil
	}
	return Selection{}, ErrUnknownRoute
}

// Build is the inverse of Parse.
func Build(s Selection) (string, error) {
	if s.SubCategorySlug != "" && s.CategorySlug == "" {
		return "", ErrInvalidSelection
	}
	if s.CollectionSlug != "" && (s.CategorySlug != "" || s.ProductSlug != "") {
		return "", ErrInvalidSelection
	}

	if s.ProductSlug != "" {
		if s.Search != "" {
			return "", ErrInvalidSelection
		}
		switch {
		case s.SubCategorySlug != "":
			return join(ProductsPath, categoryPart, s.CategorySlug, s.SubCategorySlug, s.ProductSlug), nil
		case s.CategorySlug != "":
			return join(ProductsPath, categoryPart, s.CategorySlug, s.ProductSlug), nil
		default:
			return join("/product", s.ProductSlug), nil
		}
	}

	var p string
	switch {
	case s.CollectionSlug != "":
		p = join(ProductsPath, collectionPart, s.CollectionSlug)
	case s.SubCategorySlug != "":
		p = join(ProductsPath, categoryPart, s.CategorySlug, s.SubCategorySlug)
	case s.CategorySlug != "":
		p = join(ProductsPath, categoryPart, s.CategorySlug)
	default:
		p = ProductsPath
	}
	if s.Search != "" {
		p += "?" + url.Values{searchParam: {s.Search}}.Encode()
	}
	return p, nil
}

// ProductURL links a product card while keeping the category context of the
// listing it is shown on. Collection and search context are dropped.
func ProductURL(listing Selection, productSlug string) string {
	p, err := Build(Selection{
		CategorySlug:    listing.CategorySlug,
		SubCategorySlug: listing.SubCategorySlug,
		ProductSlug:     productSlug,
	})
	if err != nil {
		return productPrefix + url.PathEscape(productSlug)
	}
	return p
}

func join(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(part))
	}
	return b.String()
}

func segments(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, ErrUnknownRoute
	}
	raw := strings.Split(trimmed, "/")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		seg, err := url.PathUnescape(r)
		if err != nil || seg == "" {
			return nil, ErrUnknownRoute
		}
		out = append(out, seg)
	}
	return out, nil
}

func searchTerm(rawQuery string) (string, error) {
	if rawQuery == "" {
		return "", nil
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", ErrUnknownRoute
	}
	return values.Get(searchParam), nil
}
