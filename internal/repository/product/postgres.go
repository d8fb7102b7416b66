package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/domain"
)

const columns = `id::text, name, slug, sku, category_slug, sub_category_slug, pricing, details, images, tags, inventory, necklace_layers, is_active`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("product_repo")}
}

func scan(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.SKU, &p.CategorySlug, &p.SubCategorySlug,
		&p.Pricing, &p.Details, &p.Images, &p.Tags, &p.Inventory, &p.NecklaceLayers, &p.IsActive)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

// args orders p's fields to match columns after the id. JSONB columns never
// store null arrays.
func args(p domain.Product) []any {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.NecklaceLayers == nil {
		p.NecklaceLayers = []domain.Layer{}
	}
	if p.Pricing.CouponList == nil {
		p.Pricing.CouponList = []string{}
	}
	return []any{p.Name, p.Slug, p.SKU, p.CategorySlug, p.SubCategorySlug,
		p.Pricing, p.Details, p.Images, p.Tags, p.Inventory, p.NecklaceLayers, p.IsActive}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list rows failed", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("listed products", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM products WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Debug("product not found", zap.String("slug", slug))
		} else {
			r.logger.Error("get failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, slug, sku, category_slug, sub_category_slug, pricing, details, images, tags, inventory, necklace_layers, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + columns
	out, err := scan(r.pool.QueryRow(ctx, q, append([]any{p.ID}, args(p)...)...))
	if err != nil {
		r.logger.Warn("create failed", zap.String("slug", p.Slug), zap.String("sku", p.SKU), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product created", zap.String("id", out.ID), zap.String("slug", out.Slug))
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2, slug = $3, sku = $4, category_slug = $5, sub_category_slug = $6, pricing = $7, details = $8,
    images = $9, tags = $10, inventory = $11, necklace_layers = $12, is_active = $13, updated_at = now()
WHERE id = $1::uuid
RETURNING ` + columns
	out, err := scan(r.pool.QueryRow(ctx, q, append([]any{p.ID}, args(p)...)...))
	if err != nil {
		r.logger.Warn("update failed", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	return db.RequireAffected(r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1::uuid`, id))
}

func (r *postgresRepo) UpsertBySlug(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, slug, sku, category_slug, sub_category_slug, pricing, details, images, tags, inventory, necklace_layers, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    sku = EXCLUDED.sku,
    category_slug = EXCLUDED.category_slug,
    sub_category_slug = EXCLUDED.sub_category_slug,
    pricing = EXCLUDED.pricing,
    details = EXCLUDED.details,
    images = EXCLUDED.images,
    tags = EXCLUDED.tags,
    inventory = EXCLUDED.inventory,
    necklace_layers = EXCLUDED.necklace_layers,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING ` + columns
	out, err := scan(r.pool.QueryRow(ctx, q, args(p)...))
	if err != nil {
		r.logger.Warn("upsert failed", zap.String("slug", p.Slug), zap.Error(err))
		return nil, err
	}
	return out, nil
}
