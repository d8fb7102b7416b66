package category

import (
	"context"

	"jewelry-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	// UpsertBySlug inserts c or overwrites the category with the same slug.
	UpsertBySlug(ctx context.Context, c domain.Category) (*domain.Category, error)
}
