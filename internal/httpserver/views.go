package httpserver

import (
	"github.com/shopspring/decimal"

	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/route"
)

var hundred = decimal.NewFromInt(100)

type priceView struct {
	Current         decimal.Decimal `json:"current"`
	Original        decimal.Decimal `json:"original"`
	DiscountPercent int64           `json:"discountPercent"`
}

// priceOf treats a zero discounted price as "no discount". The percentage is
// rounded to the nearest whole number.
func priceOf(base, discounted decimal.Decimal) priceView {
	current := discounted
	if current.IsZero() {
		current = base
	}
	v := priceView{Current: current, Original: base}
	if base.IsPositive() && current.LessThan(base) {
		v.DiscountPercent = base.Sub(current).Div(base).Mul(hundred).Round(0).IntPart()
	}
	return v
}

type layerView struct {
	Weight float64   `json:"weight"`
	Name   string    `json:"name,omitempty"`
	Price  priceView `json:"price"`
}

type productCard struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	SKU         string    `json:"sku"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	Price       priceView `json:"price"`
	Purchasable bool      `json:"purchasable"`
}

func toCard(p domain.Product, listing route.Selection) productCard {
	card := productCard{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		SKU:         p.SKU,
		URL:         route.ProductURL(listing, p.Slug),
		Price:       priceOf(p.Pricing.BasePrice, p.Pricing.DiscountedPrice),
		Purchasable: p.Purchasable(),
	}
	if len(p.Images) > 0 {
		card.Image = p.Images[0]
	}
	return card
}

type subcategoryLink struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

type listingView struct {
	Title         string            `json:"title"`
	Selection     route.Selection   `json:"selection"`
	Breadcrumbs   []route.Crumb     `json:"breadcrumbs"`
	Subcategories []subcategoryLink `json:"subcategories"`
	Products      []productCard     `json:"products"`
	Total         int               `json:"total"`
}

func buildListing(cat catalog.Catalog, sel route.Selection) listingView {
	v := listingView{
		Title:         listingTitle(cat, sel),
		Selection:     sel,
		Breadcrumbs:   route.Breadcrumbs(sel, cat, ""),
		Subcategories: []subcategoryLink{},
		Products:      []productCard{},
	}
	if sel.CategorySlug != "" {
		for _, sub := range cat.SubcategoriesOf(sel.CategorySlug) {
			if !sub.IsActive {
				continue
			}
			u, _ := route.Build(route.Selection{CategorySlug: sel.CategorySlug, SubCategorySlug: sub.Slug})
			v.Subcategories = append(v.Subcategories, subcategoryLink{Name: sub.Name, Slug: sub.Slug, URL: u})
		}
	}
	products := cat.ProductsMatching(catalog.Query{
		CategorySlug:    sel.CategorySlug,
		SubCategorySlug: sel.SubCategorySlug,
		CollectionSlug:  sel.CollectionSlug,
		Search:          sel.Search,
		ActiveOnly:      true,
	})
	for _, p := range products {
		v.Products = append(v.Products, toCard(p, sel))
	}
	v.Total = len(v.Products)
	return v
}

func listingTitle(cat catalog.Catalog, sel route.Selection) string {
	switch {
	case sel.SubCategorySlug != "":
		return cat.DisplayName(domain.KindSubcategory, sel.SubCategorySlug)
	case sel.CategorySlug != "":
		return cat.DisplayName(domain.KindCategory, sel.CategorySlug)
	case sel.CollectionSlug != "":
		return cat.DisplayName(domain.KindCollection, sel.CollectionSlug)
	case sel.Search != "":
		return "Search results for \"" + sel.Search + "\""
	}
	return "All Products"
}

type detailView struct {
	Product     domain.Product `json:"product"`
	Breadcrumbs []route.Crumb  `json:"breadcrumbs"`
	Price       priceView      `json:"price"`
	Layers      []layerView    `json:"layers"`
	Purchasable bool           `json:"purchasable"`
}

// buildDetail uses the hierarchy from the URL for breadcrumbs and falls back
// to the product's own category and subcategory for /product/:slug links.
func buildDetail(cat catalog.Catalog, sel route.Selection, p domain.Product) detailView {
	crumbSel := sel
	if crumbSel.CategorySlug == "" {
		crumbSel.CategorySlug = p.CategorySlug
		if cat.IsSubcategoryOf(p.CategorySlug, p.SubCategorySlug) {
			crumbSel.SubCategorySlug = p.SubCategorySlug
		}
	}
	v := detailView{
		Product:     p,
		Breadcrumbs: route.Breadcrumbs(crumbSel, cat, p.Name),
		Price:       priceOf(p.Pricing.BasePrice, p.Pricing.DiscountedPrice),
		Layers:      make([]layerView, 0, len(p.NecklaceLayers)),
		Purchasable: p.Purchasable(),
	}
	for _, l := range p.NecklaceLayers {
		v.Layers = append(v.Layers, layerView{Weight: l.Weight, Name: l.Name, Price: priceOf(l.BasePrice, l.DiscountedPrice)})
	}
	return v
}
