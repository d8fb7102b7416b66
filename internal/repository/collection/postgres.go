package collection

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/domain"
)

const columns = `id::text, name, slug, description, image, is_active`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func scan(row pgx.Row) (*domain.Collection, error) {
	var c domain.Collection
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.IsActive); err != nil {
		return nil, db.MapError(err)
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Collection, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM collections ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Collection{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpsertBySlug(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	const q = `
INSERT INTO collections (name, slug, description, image, is_active)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    is_active = EXCLUDED.is_active
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, c.Name, c.Slug, c.Description, c.Image, c.IsActive))
}
