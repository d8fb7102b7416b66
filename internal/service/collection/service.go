package collection

import (
	"context"

	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/repository/collection"
	"jewelry-storefront/internal/service/check"
)

type Service struct {
	repo collection.Repository
}

func New(repo collection.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Collection, error) {
	return s.repo.List(ctx)
}

func (s *Service) Upsert(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	if err := check.Payload(c, "ID"); err != nil {
		return nil, err
	}
	return s.repo.UpsertBySlug(ctx, c)
}
