package editor

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"jewelry-storefront/internal/domain"
)

// Draft is the value held by a Form. It is implemented by *CategoryDraft,
// *SubcategoryDraft and *ProductDraft.
type Draft interface {
	Kind() domain.EntityKind
	base() *Base
	defaults()
	copyFields(src Draft)
	save(ctx context.Context, w Writer) error
	remove(ctx context.Context, w Writer, id string) error
}

// parented drafts carry a parent category. subcategory returns nil when the
// draft has no subcategory field.
type parented interface {
	category() *string
	subcategory() *string
}

// Base holds the fields every form has.
type Base struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

func (b *Base) base() *Base { return b }

type CategoryDraft struct {
	Base
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    bool   `json:"isActive"`
}

func CategoryDraftFrom(c domain.Category) *CategoryDraft {
	return &CategoryDraft{
		Base:        Base{ID: c.ID, Name: c.Name, Slug: c.Slug},
		Description: c.Description,
		Image:       c.Image,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
	}
}

func (d *CategoryDraft) Kind() domain.EntityKind { return domain.KindCategory }

func (d *CategoryDraft) defaults() {
	d.SortOrder = 0
	d.IsActive = true
}

func (d *CategoryDraft) copyFields(src Draft) {
	s := src.(*CategoryDraft)
	d.Description, d.Image, d.SortOrder, d.IsActive = s.Description, s.Image, s.SortOrder, s.IsActive
}

func (d *CategoryDraft) Entity() domain.Category {
	return domain.Category{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Image:       d.Image,
		SortOrder:   d.SortOrder,
		IsActive:    d.IsActive,
	}
}

func (d *CategoryDraft) save(ctx context.Context, w Writer) error {
	if d.ID != "" {
		_, err := w.UpdateCategory(ctx, d.ID, d.Entity())
		return err
	}
	out, err := w.CreateCategory(ctx, d.Entity())
	if err == nil {
		d.ID = out.ID
	}
	return err
}

func (d *CategoryDraft) remove(ctx context.Context, w Writer, id string) error {
	return w.DeleteCategory(ctx, id)
}

type SubcategoryDraft struct {
	Base
	CategorySlug string `json:"categorySlug" validate:"required"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	SortOrder    int    `json:"sortOrder"`
	IsActive     bool   `json:"isActive"`
}

func SubcategoryDraftFrom(s domain.Subcategory) *SubcategoryDraft {
	return &SubcategoryDraft{
		Base:         Base{ID: s.ID, Name: s.Name, Slug: s.Slug},
		CategorySlug: s.CategorySlug,
		Description:  s.Description,
		Image:        s.Image,
		SortOrder:    s.SortOrder,
		IsActive:     s.IsActive,
	}
}

func (d *SubcategoryDraft) Kind() domain.EntityKind { return domain.KindSubcategory }

func (d *SubcategoryDraft) defaults() {
	d.SortOrder = 0
	d.IsActive = true
}

func (d *SubcategoryDraft) category() *string    { return &d.CategorySlug }
func (d *SubcategoryDraft) subcategory() *string { return nil }

func (d *SubcategoryDraft) copyFields(src Draft) {
	s := src.(*SubcategoryDraft)
	d.Description, d.Image, d.SortOrder, d.IsActive = s.Description, s.Image, s.SortOrder, s.IsActive
}

func (d *SubcategoryDraft) Entity() domain.Subcategory {
	return domain.Subcategory{
		ID:           d.ID,
		CategorySlug: d.CategorySlug,
		Name:         d.Name,
		Slug:         d.Slug,
		Description:  d.Description,
		Image:        d.Image,
		SortOrder:    d.SortOrder,
		IsActive:     d.IsActive,
	}
}

func (d *SubcategoryDraft) save(ctx context.Context, w Writer) error {
	if d.ID != "" {
		_, err := w.UpdateSubcategory(ctx, d.ID, d.Entity())
		return err
	}
	out, err := w.CreateSubcategory(ctx, d.Entity())
	if err == nil {
		d.ID = out.ID
	}
	return err
}

func (d *SubcategoryDraft) remove(ctx context.Context, w Writer, id string) error {
	return w.DeleteSubcategory(ctx, id)
}

type ProductDraft struct {
	Base
	CategorySlug     string          `json:"categorySlug" validate:"required"`
	SubCategorySlug  string          `json:"subCategorySlug"`
	SKU              string          `json:"sku" validate:"required"`
	BasePrice        decimal.Decimal `json:"basePrice"`
	DiscountedPrice  decimal.Decimal `json:"discountedPrice"`
	CouponApplicable bool            `json:"couponApplicable"`
	CouponList       []string        `json:"couponList"`
	Details          domain.Details  `json:"details"`
	Images           []string        `json:"images"`
	Tags             []string        `json:"tags"`
	Stock            int             `json:"stock"`
	InStock          bool            `json:"inStock"`
	NecklaceLayers   []domain.Layer  `json:"necklaceLayers"`
	IsActive         bool            `json:"isActive"`
}

func ProductDraftFrom(p domain.Product) *ProductDraft {
	return &ProductDraft{
		Base:             Base{ID: p.ID, Name: p.Name, Slug: p.Slug},
		CategorySlug:     p.CategorySlug,
		SubCategorySlug:  p.SubCategorySlug,
		SKU:              p.SKU,
		BasePrice:        p.Pricing.BasePrice,
		DiscountedPrice:  p.Pricing.DiscountedPrice,
		CouponApplicable: p.Pricing.CouponApplicable,
		CouponList:       slices.Clone(p.Pricing.CouponList),
		Details:          p.Details,
		Images:           slices.Clone(p.Images),
		Tags:             slices.Clone(p.Tags),
		Stock:            p.Inventory.Stock,
		InStock:          p.Inventory.InStock,
		NecklaceLayers:   slices.Clone(p.NecklaceLayers),
		IsActive:         p.IsActive,
	}
}

func (d *ProductDraft) Kind() domain.EntityKind { return domain.KindProduct }

func (d *ProductDraft) defaults() {
	d.IsActive = true
	d.CouponApplicable = true
	d.InStock = true
}

func (d *ProductDraft) category() *string    { return &d.CategorySlug }
func (d *ProductDraft) subcategory() *string { return &d.SubCategorySlug }

func (d *ProductDraft) copyFields(src Draft) {
	s := src.(*ProductDraft)
	d.SKU = s.SKU
	d.BasePrice, d.DiscountedPrice = s.BasePrice, s.DiscountedPrice
	d.CouponApplicable, d.CouponList = s.CouponApplicable, slices.Clone(s.CouponList)
	d.Details = s.Details
	d.Images, d.Tags = slices.Clone(s.Images), slices.Clone(s.Tags)
	d.Stock, d.InStock = s.Stock, s.InStock
	d.NecklaceLayers = slices.Clone(s.NecklaceLayers)
	d.IsActive = s.IsActive
}

func (d *ProductDraft) Entity() domain.Product {
	return domain.Product{
		ID:              d.ID,
		Name:            d.Name,
		Slug:            d.Slug,
		CategorySlug:    d.CategorySlug,
		SubCategorySlug: d.SubCategorySlug,
		SKU:             d.SKU,
		Pricing: domain.Pricing{
			BasePrice:        d.BasePrice,
			DiscountedPrice:  d.DiscountedPrice,
			CouponApplicable: d.CouponApplicable,
			CouponList:       d.CouponList,
		},
		Details:        d.Details,
		Images:         d.Images,
		Tags:           d.Tags,
		Inventory:      domain.Inventory{Stock: d.Stock, InStock: d.InStock},
		NecklaceLayers: d.NecklaceLayers,
		IsActive:       d.IsActive,
	}
}

func (d *ProductDraft) save(ctx context.Context, w Writer) error {
	if d.ID != "" {
		_, err := w.UpdateProduct(ctx, d.ID, d.Entity())
		return err
	}
	out, err := w.CreateProduct(ctx, d.Entity())
	if err == nil {
		d.ID = out.ID
	}
	return err
}

func (d *ProductDraft) remove(ctx context.Context, w Writer, id string) error {
	return w.DeleteProduct(ctx, id)
}
