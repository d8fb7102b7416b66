package subcategory

import (
	"context"

	"jewelry-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Subcategory, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]domain.Subcategory, error)
	Create(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
	Update(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
	Delete(ctx context.Context, id string) error
	UpsertBySlug(ctx context.Context, s domain.Subcategory) (*domain.Subcategory, error)
}
