package collection

import (
	"context"

	"jewelry-storefront/internal/domain"
)

// Repository is read-mostly: collections are curated through seed data and
// have no admin editor.
type Repository interface {
	List(ctx context.Context) ([]domain.Collection, error)
	UpsertBySlug(ctx context.Context, c domain.Collection) (*domain.Collection, error)
}
