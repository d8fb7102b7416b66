package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/slug"
)

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type SubcategoryWriter interface {
	Upsert(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
}

// Writers receive imported records. Only the writers the file kind needs
// must be set.
type Writers struct {
	Products      ProductWriter
	Categories    CategoryWriter
	Subcategories SubcategoryWriter
}

// Kind is the layout of an import file.
type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

// DetectKind reads the header row: files with a sku column hold products,
// anything else holds categories and subcategories.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	if _, ok := headerIndex(headers)["sku"]; ok {
		return KindProducts, nil
	}
	return KindCategories, nil
}

// CSVImporter reads catalog CSV files and upserts records by slug.
//
// Product files start a product on every row with a name or slug. Rows with
// neither are continuation rows whose image and layer columns extend the
// current product.
//
// Category files hold one record per row. A row with a parentSlug becomes a
// subcategory of that category.
type CSVImporter struct {
	reader  *csv.Reader
	writers Writers
	title   cases.Caser
}

func NewCSVImporter(r io.Reader, w Writers) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		writers: w,
		title:   cases.Title(language.English),
	}
}

// Run imports every record and returns how many were saved.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["sku"]; ok {
		return i.runProducts(ctx, index)
	}
	return i.runCategories(ctx, index)
}

func (i *CSVImporter) runProducts(ctx context.Context, index map[string]int) (int, error) {
	if i.writers.Products == nil {
		return 0, errors.New("importer: product writer is required")
	}
	var (
		current  *domain.Product
		line     int
		imported int
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := i.saveProduct(ctx, current); err != nil {
			return err
		}
		imported++
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		if pick(record, index, "name") != "" || pick(record, index, "slug") != "" {
			if err := flush(); err != nil {
				return imported, err
			}
			p, err := i.parseProduct(record, index)
			if err != nil {
				return imported, fmt.Errorf("row %d: %w", line, err)
			}
			current = p
			continue
		}

		if current == nil {
			continue
		}
		if img := pick(record, index, "image"); img != "" {
			current.Images = append(current.Images, img)
		}
		layer, ok, err := parseLayer(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if ok {
			current.NecklaceLayers = append(current.NecklaceLayers, layer)
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

func (i *CSVImporter) parseProduct(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	s := pick(record, index, "slug")
	if s == "" {
		s = slug.Make(name)
	}
	if name == "" {
		name = i.nameFromSlug(s)
	}

	base, err := price(pick(record, index, "basePrice"))
	if err != nil {
		return nil, fmt.Errorf("basePrice for %q: %w", s, err)
	}
	discounted, err := price(pick(record, index, "discountedPrice"))
	if err != nil {
		return nil, fmt.Errorf("discountedPrice for %q: %w", s, err)
	}
	stock, _ := strconv.Atoi(pick(record, index, "stock"))
	weight, _ := strconv.ParseFloat(pick(record, index, "weight"), 64)

	p := &domain.Product{
		Name:            name,
		Slug:            s,
		SKU:             pick(record, index, "sku"),
		CategorySlug:    pick(record, index, "categorySlug"),
		SubCategorySlug: pick(record, index, "subCategorySlug"),
		Pricing: domain.Pricing{
			BasePrice:        base,
			DiscountedPrice:  discounted,
			CouponApplicable: boolOr(pick(record, index, "couponApplicable"), true),
			CouponList:       list(pick(record, index, "coupons")),
		},
		Details: domain.Details{
			Metal:       pick(record, index, "metal"),
			MetalPurity: pick(record, index, "metalPurity"),
			Stone:       pick(record, index, "stone"),
			Weight:      weight,
		},
		Tags: list(pick(record, index, "tags")),
		Inventory: domain.Inventory{
			Stock:   stock,
			InStock: boolOr(pick(record, index, "inStock"), stock > 0),
		},
		IsActive: boolOr(pick(record, index, "isActive"), true),
	}
	if img := pick(record, index, "image"); img != "" {
		p.Images = []string{img}
	}
	layer, ok, err := parseLayer(record, index)
	if err != nil {
		return nil, err
	}
	if ok {
		p.NecklaceLayers = []domain.Layer{layer}
	}
	return p, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, p *domain.Product) error {
	if p.Slug == "" || p.SKU == "" || p.CategorySlug == "" {
		return fmt.Errorf("invalid product row (missing slug, sku or categorySlug) for %q", p.Name)
	}
	if _, err := i.writers.Products.Upsert(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Slug, err)
	}
	return nil
}

func (i *CSVImporter) runCategories(ctx context.Context, index map[string]int) (int, error) {
	if i.writers.Categories == nil || i.writers.Subcategories == nil {
		return 0, errors.New("importer: category and subcategory writers are required")
	}
	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		name := pick(record, index, "name")
		s := pick(record, index, "slug")
		if s == "" {
			s = slug.Make(name)
		}
		if s == "" {
			continue
		}
		if name == "" {
			name = i.nameFromSlug(s)
		}
		order, _ := strconv.Atoi(pick(record, index, "sortOrder"))
		active := boolOr(pick(record, index, "isActive"), true)
		desc := pick(record, index, "description")
		image := pick(record, index, "image")

		if parent := pick(record, index, "parentSlug"); parent != "" {
			sub := domain.Subcategory{
				CategorySlug: parent, Name: name, Slug: s,
				Description: desc, Image: image, SortOrder: order, IsActive: active,
			}
			if _, err := i.writers.Subcategories.Upsert(ctx, sub); err != nil {
				return imported, fmt.Errorf("upsert subcategory %q: %w", s, err)
			}
		} else {
			cat := domain.Category{
				Name: name, Slug: s,
				Description: desc, Image: image, SortOrder: order, IsActive: active,
			}
			if _, err := i.writers.Categories.Upsert(ctx, cat); err != nil {
				return imported, fmt.Errorf("upsert category %q: %w", s, err)
			}
		}
		imported++
	}
	return imported, nil
}

// nameFromSlug turns "gold-chains" into "Gold Chains".
func (i *CSVImporter) nameFromSlug(s string) string {
	return i.title.String(strings.ReplaceAll(s, "-", " "))
}

func parseLayer(record []string, index map[string]int) (domain.Layer, bool, error) {
	w := pick(record, index, "layerWeight")
	if w == "" {
		return domain.Layer{}, false, nil
	}
	weight, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return domain.Layer{}, false, fmt.Errorf("layerWeight %q: %w", w, err)
	}
	base, err := price(pick(record, index, "layerBasePrice"))
	if err != nil {
		return domain.Layer{}, false, fmt.Errorf("layerBasePrice: %w", err)
	}
	discounted, err := price(pick(record, index, "layerDiscountedPrice"))
	if err != nil {
		return domain.Layer{}, false, fmt.Errorf("layerDiscountedPrice: %w", err)
	}
	return domain.Layer{Weight: weight, BasePrice: base, DiscountedPrice: discounted}, true, nil
}

func price(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func boolOr(s string, def bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return def
}

// list splits a semicolon separated cell.
func list(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
