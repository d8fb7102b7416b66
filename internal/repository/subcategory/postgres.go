package subcategory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/domain"
)

const columns = `id::text, category_slug, name, slug, description, image, sort_order, is_active`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func scan(row pgx.Row) (*domain.Subcategory, error) {
	var s domain.Subcategory
	err := row.Scan(&s.ID, &s.CategorySlug, &s.Name, &s.Slug, &s.Description, &s.Image, &s.SortOrder, &s.IsActive)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &s, nil
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...any) ([]domain.Subcategory, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Subcategory{}
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Subcategory, error) {
	return r.query(ctx, `SELECT `+columns+` FROM subcategories ORDER BY sort_order ASC, created_at ASC`)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categorySlug string) ([]domain.Subcategory, error) {
	return r.query(ctx, `SELECT `+columns+` FROM subcategories WHERE category_slug = $1 ORDER BY sort_order ASC, created_at ASC`, categorySlug)
}

func (r *postgresRepo) Create(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error) {
	const q = `
INSERT INTO subcategories (id, category_slug, name, slug, description, image, sort_order, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, s.ID, s.CategorySlug, s.Name, s.Slug, s.Description, s.Image, s.SortOrder, s.IsActive))
}

func (r *postgresRepo) Update(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error) {
	const q = `
UPDATE subcategories
SET category_slug = $2, name = $3, slug = $4, description = $5, image = $6, sort_order = $7, is_active = $8, updated_at = now()
WHERE id = $1::uuid
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, s.ID, s.CategorySlug, s.Name, s.Slug, s.Description, s.Image, s.SortOrder, s.IsActive))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	return db.RequireAffected(r.pool.Exec(ctx, `DELETE FROM subcategories WHERE id = $1::uuid`, id))
}

func (r *postgresRepo) UpsertBySlug(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error) {
	const q = `
INSERT INTO subcategories (category_slug, name, slug, description, image, sort_order, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (slug) DO UPDATE
SET category_slug = EXCLUDED.category_slug,
    name = EXCLUDED.name,
    description = COALESCE(NULLIF(EXCLUDED.description, ''), subcategories.description),
    image = COALESCE(NULLIF(EXCLUDED.image, ''), subcategories.image),
    sort_order = EXCLUDED.sort_order,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, s.CategorySlug, s.Name, s.Slug, s.Description, s.Image, s.SortOrder, s.IsActive))
}
