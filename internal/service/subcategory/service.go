package subcategory

import (
	"context"

	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/repository/subcategory"
	"jewelry-storefront/internal/service/check"
)

type Service struct {
	repo subcategory.Repository
}

func New(repo subcategory.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Subcategory, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categorySlug string) ([]domain.Subcategory, error) {
	return s.repo.ListByCategory(ctx, categorySlug)
}

// Create does not check that the parent category exists; the hierarchy
// tolerates dangling references.
func (s *Service) Create(ctx context.Context, sub domain.Subcategory) (*domain.Subcategory, error) {
	sub.ID = ""
	if err := check.Payload(sub, "ID"); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, sub)
}

func (s *Service) Update(ctx context.Context, id string, sub domain.Subcategory) (*domain.Subcategory, error) {
	if err := check.ID(id); err != nil {
		return nil, err
	}
	sub.ID = id
	if err := check.Payload(sub); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, sub)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := check.ID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Upsert(ctx context.Context, sub domain.Subcategory) (*domain.Subcategory, error) {
	if err := check.Payload(sub, "ID"); err != nil {
		return nil, err
	}
	return s.repo.UpsertBySlug(ctx, sub)
}
