package domain

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend contract carries prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID              string    `json:"id,omitempty" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	Slug            string    `json:"slug" validate:"required"`
	CategorySlug    string    `json:"categorySlug" validate:"required"`
	SubCategorySlug string    `json:"subCategorySlug,omitempty"`
	SKU             string    `json:"sku" validate:"required"`
	Pricing         Pricing   `json:"pricing"`
	Details         Details   `json:"details"`
	Images          []string  `json:"images"`
	Tags            []string  `json:"tags"`
	Inventory       Inventory `json:"inventory"`
	NecklaceLayers  []Layer   `json:"necklaceLayers,omitempty"`
	IsActive        bool      `json:"isActive"`
}

type Pricing struct {
	BasePrice        decimal.Decimal `json:"basePrice"`
	DiscountedPrice  decimal.Decimal `json:"discountedPrice"`
	CouponApplicable bool            `json:"couponApplicable"`
	CouponList       []string        `json:"couponList"`
}

// Details holds the metal and stone attributes shown on the detail page.
type Details struct {
	Metal         string  `json:"metal,omitempty"`
	MetalPurity   string  `json:"metalPurity,omitempty"`
	Stone         string  `json:"stone,omitempty"`
	StoneType     string  `json:"stoneType,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	StoneWeight   float64 `json:"stoneWeight,omitempty"`
	MetalWeight   float64 `json:"metalWeight,omitempty"`
	Size          string  `json:"size,omitempty"`
	Color         string  `json:"color,omitempty"`
	Clarity       string  `json:"clarity,omitempty"`
	Certification string  `json:"certification,omitempty"`
}

// Inventory.InStock gates purchasing. Stock is informational only and may
// disagree with InStock.
type Inventory struct {
	Stock   int  `json:"stock"`
	InStock bool `json:"inStock"`
}

// Layer is a priced necklace layer variant, identified by its weight in
// grams.
type Layer struct {
	Weight          float64         `json:"weight"`
	Name            string          `json:"name,omitempty"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}

// HasTag reports whether the product carries tag t.
func (p Product) HasTag(t string) bool {
	return slices.Contains(p.Tags, t)
}

// Purchasable reports whether the product can be added to a cart.
func (p Product) Purchasable() bool {
	return p.Inventory.InStock
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}
