package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jewelry-storefront/internal/domain"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type SubcategoryWriter interface {
	Upsert(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
}

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CollectionWriter interface {
	Upsert(ctx context.Context, c domain.Collection) (*domain.Collection, error)
}

type Writers struct {
	Categories    CategoryWriter
	Subcategories SubcategoryWriter
	Products      ProductWriter
	Collections   CollectionWriter
}

// Apply upserts the demo jewelry catalog. It is idempotent: records are
// matched by slug.
func Apply(ctx context.Context, w Writers, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, c := range categories {
		if _, err := w.Categories.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
	}
	for _, s := range subcategories {
		if _, err := w.Subcategories.Upsert(ctx, s); err != nil {
			return fmt.Errorf("upsert subcategory %s: %w", s.Slug, err)
		}
	}
	for _, p := range products() {
		if _, err := w.Products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}
	for _, c := range collections {
		if _, err := w.Collections.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert collection %s: %w", c.Slug, err)
		}
	}
	logger.Info("seed applied",
		zap.Int("categories", len(categories)),
		zap.Int("subcategories", len(subcategories)),
		zap.Int("products", len(products())),
		zap.Int("collections", len(collections)),
	)
	return nil
}

// Eight active categories, so the navigation overflows into "more".
var categories = []domain.Category{
	{Name: "Necklaces", Slug: "necklaces", SortOrder: 1, IsActive: true},
	{Name: "Earrings", Slug: "earrings", SortOrder: 2, IsActive: true},
	{Name: "Rings", Slug: "rings", SortOrder: 3, IsActive: true},
	{Name: "Bracelets", Slug: "bracelets", SortOrder: 4, IsActive: true},
	{Name: "Bangles", Slug: "bangles", SortOrder: 5, IsActive: true},
	{Name: "Pendants", Slug: "pendants", SortOrder: 6, IsActive: true},
	{Name: "Anklets", Slug: "anklets", SortOrder: 7, IsActive: true},
	{Name: "Nose Pins", Slug: "nose-pins", SortOrder: 8, IsActive: true},
	{Name: "Mangalsutra", Slug: "mangalsutra", SortOrder: 9, IsActive: false},
}

var subcategories = []domain.Subcategory{
	{CategorySlug: "necklaces", Name: "Gold Chains", Slug: "gold-chains", SortOrder: 1, IsActive: true},
	{CategorySlug: "necklaces", Name: "Chokers", Slug: "chokers", SortOrder: 2, IsActive: true},
	{CategorySlug: "necklaces", Name: "Layered Necklaces", Slug: "layered-necklaces", SortOrder: 3, IsActive: true},
	{CategorySlug: "earrings", Name: "Studs", Slug: "studs", SortOrder: 1, IsActive: true},
	{CategorySlug: "earrings", Name: "Jhumkas", Slug: "jhumkas", SortOrder: 2, IsActive: true},
	{CategorySlug: "rings", Name: "Engagement Rings", Slug: "engagement-rings", SortOrder: 1, IsActive: true},
	{CategorySlug: "rings", Name: "Bands", Slug: "bands", SortOrder: 2, IsActive: false},
}

var collections = []domain.Collection{
	{Name: "Bridal", Slug: "bridal", Description: "Pieces for the big day", IsActive: true},
	{Name: "Everyday Gold", Slug: "everyday-gold", Description: "Light pieces for daily wear", IsActive: true},
	{Name: "Festive 2023", Slug: "festive-2023", IsActive: false},
}

func inr(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func products() []domain.Product {
	return []domain.Product{
		{
			Name: "Classic Rope Chain", Slug: "classic-rope-chain", SKU: "NCK-GC-001",
			CategorySlug: "necklaces", SubCategorySlug: "gold-chains",
			Pricing:   domain.Pricing{BasePrice: inr(48000), DiscountedPrice: inr(45500), CouponApplicable: true},
			Details:   domain.Details{Metal: "Gold", MetalPurity: "22K", Weight: 8.2},
			Images:    []string{"/images/necklaces/classic-rope-chain.jpg"},
			Tags:      []string{"everyday-gold"},
			Inventory: domain.Inventory{Stock: 12, InStock: true},
			IsActive:  true,
		},
		{
			Name: "Three Layer Necklace", Slug: "three-layer-necklace", SKU: "NCK-LY-001",
			CategorySlug: "necklaces", SubCategorySlug: "layered-necklaces",
			Pricing:   domain.Pricing{BasePrice: inr(72000), DiscountedPrice: inr(0), CouponApplicable: false},
			Details:   domain.Details{Metal: "Gold", MetalPurity: "18K", Weight: 14},
			Images:    []string{"/images/necklaces/three-layer.jpg", "/images/necklaces/three-layer-2.jpg"},
			Tags:      []string{"bridal"},
			Inventory: domain.Inventory{Stock: 2, InStock: true},
			NecklaceLayers: []domain.Layer{
				{Weight: 10, BasePrice: inr(52000), DiscountedPrice: inr(49000)},
				{Weight: 14, BasePrice: inr(72000), DiscountedPrice: inr(68000)},
				{Weight: 20, BasePrice: inr(101000)},
			},
			IsActive: true,
		},
		{
			Name: "Kundan Choker", Slug: "kundan-choker", SKU: "NCK-CH-001",
			CategorySlug: "necklaces", SubCategorySlug: "chokers",
			Pricing:   domain.Pricing{BasePrice: inr(38000), DiscountedPrice: inr(34200), CouponApplicable: true, CouponList: []string{"FESTIVE10"}},
			Details:   domain.Details{Metal: "Gold", MetalPurity: "22K", Stone: "Kundan"},
			Tags:      []string{"bridal"},
			Inventory: domain.Inventory{Stock: 0, InStock: false},
			IsActive:  true,
		},
		{
			Name: "Solitaire Studs", Slug: "solitaire-studs", SKU: "EAR-ST-001",
			CategorySlug: "earrings", SubCategorySlug: "studs",
			Pricing:   domain.Pricing{BasePrice: inr(56000), DiscountedPrice: inr(52000), CouponApplicable: true},
			Details:   domain.Details{Metal: "White Gold", MetalPurity: "18K", Stone: "Diamond", StoneWeight: 0.5, Clarity: "VS1", Certification: "IGI"},
			Tags:      []string{"everyday-gold"},
			Inventory: domain.Inventory{Stock: 5, InStock: true},
			IsActive:  true,
		},
		{
			Name: "Temple Jhumkas", Slug: "temple-jhumkas", SKU: "EAR-JH-001",
			CategorySlug: "earrings", SubCategorySlug: "jhumkas",
			Pricing:   domain.Pricing{BasePrice: inr(29000), CouponApplicable: true},
			Details:   domain.Details{Metal: "Gold", MetalPurity: "22K", Weight: 6.4},
			Tags:      []string{"festive-2023"},
			Inventory: domain.Inventory{Stock: 4, InStock: true},
			IsActive:  true,
		},
		{
			Name: "Oval Halo Ring", Slug: "oval-halo-ring", SKU: "RNG-EN-001",
			CategorySlug: "rings", SubCategorySlug: "engagement-rings",
			Pricing:   domain.Pricing{BasePrice: inr(125000), DiscountedPrice: inr(118750), CouponApplicable: false},
			Details:   domain.Details{Metal: "Platinum", Stone: "Diamond", StoneWeight: 1.1, Size: "12"},
			Tags:      []string{"bridal"},
			Inventory: domain.Inventory{Stock: 1, InStock: true},
			IsActive:  true,
		},
		{
			Name: "Twisted Gold Bangle", Slug: "twisted-gold-bangle", SKU: "BNG-001",
			CategorySlug: "bangles",
			Pricing:   domain.Pricing{BasePrice: inr(41000), DiscountedPrice: inr(39000), CouponApplicable: true},
			Details:   domain.Details{Metal: "Gold", MetalPurity: "22K", Weight: 7.5, Size: "2.6"},
			Tags:      []string{"everyday-gold"},
			Inventory: domain.Inventory{Stock: 9, InStock: true},
			IsActive:  true,
		},
		{
			Name: "Retired Charm Anklet", Slug: "retired-charm-anklet", SKU: "ANK-001",
			CategorySlug: "anklets",
			Pricing:   domain.Pricing{BasePrice: inr(8000)},
			Details:   domain.Details{Metal: "Silver", MetalPurity: "925"},
			Inventory: domain.Inventory{Stock: 30, InStock: true},
			IsActive:  false,
		},
	}
}
