package category

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/domain"
)

const columns = `id::text, name, slug, description, image, sort_order, is_active`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func scan(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, &c.IsActive); err != nil {
		return nil, db.MapError(err)
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM categories ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, slug, description, image, sort_order, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7)
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Slug, c.Description, c.Image, c.SortOrder, c.IsActive))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $2, slug = $3, description = $4, image = $5, sort_order = $6, is_active = $7, updated_at = now()
WHERE id = $1::uuid
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Slug, c.Description, c.Image, c.SortOrder, c.IsActive))
}

// Delete removes only the category row. Subcategories and products that
// reference its slug are left dangling.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	return db.RequireAffected(r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1::uuid`, id))
}

func (r *postgresRepo) UpsertBySlug(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug, description, image, sort_order, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = COALESCE(NULLIF(EXCLUDED.description, ''), categories.description),
    image = COALESCE(NULLIF(EXCLUDED.image, ''), categories.image),
    sort_order = EXCLUDED.sort_order,
    is_active = EXCLUDED.is_active,
    updated_at = now()
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, c.Name, c.Slug, c.Description, c.Image, c.SortOrder, c.IsActive))
}
