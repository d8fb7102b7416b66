package category

import (
	"context"

	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/repository/category"
	"jewelry-storefront/internal/service/check"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

// Create ignores any client supplied id.
func (s *Service) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.ID = ""
	if err := check.Payload(c, "ID"); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id string, c domain.Category) (*domain.Category, error) {
	if err := check.ID(id); err != nil {
		return nil, err
	}
	c.ID = id
	if err := check.Payload(c); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := check.ID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if err := check.Payload(c, "ID"); err != nil {
		return nil, err
	}
	return s.repo.UpsertBySlug(ctx, c)
}
