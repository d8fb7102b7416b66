package product

import (
	"context"

	"jewelry-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// UpsertBySlug inserts p or overwrites the product with the same slug.
	UpsertBySlug(ctx context.Context, p domain.Product) (*domain.Product, error)
}
