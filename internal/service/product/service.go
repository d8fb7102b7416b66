package product

import (
	"context"

	"jewelry-storefront/internal/domain"
	productrepo "jewelry-storefront/internal/repository/product"
	"jewelry-storefront/internal/service/check"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = ""
	if err := check.Payload(p, "ID"); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	if err := check.ID(id); err != nil {
		return nil, err
	}
	p.ID = id
	if err := check.Payload(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := check.ID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := check.Payload(p, "ID"); err != nil {
		return nil, err
	}
	return s.repo.UpsertBySlug(ctx, p)
}
