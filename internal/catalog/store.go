package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jewelry-storefront/internal/domain"
)

// ErrStale is returned when a load finished after a newer load of the same
// collection had started. Its result was discarded.
var ErrStale = errors.New("stale catalog load discarded")

// Loader fetches the authoritative collections, usually from the backend.
type Loader interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context) ([]domain.Subcategory, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Collections(ctx context.Context) ([]domain.Collection, error)
}

// LoadError names the collection whose fetch failed.
type LoadError struct {
	Kind domain.EntityKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Kind.Plural(), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// reloadPolicy lists which collections are reloaded after a write to a kind.
var reloadPolicy = map[domain.EntityKind][]domain.EntityKind{
	domain.KindCategory:    {domain.KindCategory, domain.KindSubcategory},
	domain.KindSubcategory: {domain.KindSubcategory},
	domain.KindProduct:     {domain.KindProduct},
	domain.KindCollection:  {domain.KindCollection},
}

// Store holds the current Catalog snapshot. It never mutates entities
// locally: writes go to the backend and are followed by Invalidate, which
// reloads the affected collections.
type Store struct {
	loader Loader
	logger *zap.Logger

	mu      sync.Mutex
	snap    Catalog
	started map[domain.EntityKind]uint64
}

func NewStore(loader Loader, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		loader:  loader,
		logger:  logger,
		started: make(map[domain.EntityKind]uint64, len(domain.Kinds)),
	}
}

// Snapshot returns the current catalog.
func (s *Store) Snapshot() Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Load fetches every collection.
func (s *Store) Load(ctx context.Context) error {
	return s.Reload(ctx, domain.Kinds...)
}

// Invalidate reloads the collections affected by a write to kind.
func (s *Store) Invalidate(ctx context.Context, kind domain.EntityKind) error {
	kinds, ok := reloadPolicy[kind]
	if !ok {
		return fmt.Errorf("invalidate: unknown kind %q", kind)
	}
	return s.Reload(ctx, kinds...)
}

// Reload fetches the given collections concurrently. The snapshot only
// changes when every fetch succeeds; on failure the first error is returned as
// a *LoadError and the previous snapshot stays. A collection whose load was
// overtaken by a newer one is left alone and ErrStale is returned.
func (s *Store) Reload(ctx context.Context, kinds ...domain.EntityKind) error {
	kinds = unique(kinds)
	gens := s.begin(kinds)

	var next Catalog
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		g.Go(func() error {
			if err := s.fetch(gctx, kind, &next); err != nil {
				return &LoadError{Kind: kind, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("catalog reload failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stale := false
	for _, kind := range kinds {
		if s.started[kind] != gens[kind] {
			stale = true
			s.logger.Debug("discarding stale catalog load", zap.String("kind", string(kind)), zap.Uint64("generation", gens[kind]))
			continue
		}
		s.apply(kind, next)
	}
	if stale {
		return ErrStale
	}
	s.logger.Debug("catalog reloaded",
		zap.Int("categories", len(s.snap.Categories)),
		zap.Int("subcategories", len(s.snap.Subcategories)),
		zap.Int("products", len(s.snap.Products)),
		zap.Int("collections", len(s.snap.Collections)),
	)
	return nil
}

func (s *Store) begin(kinds []domain.EntityKind) map[domain.EntityKind]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	gens := make(map[domain.EntityKind]uint64, len(kinds))
	for _, kind := range kinds {
		s.started[kind]++
		gens[kind] = s.started[kind]
	}
	return gens
}

// fetch writes only the field of dst that belongs to kind, so concurrent
// fetches of distinct kinds do not race.
func (s *Store) fetch(ctx context.Context, kind domain.EntityKind, dst *Catalog) error {
	var err error
	switch kind {
	case domain.KindCategory:
		dst.Categories, err = s.loader.Categories(ctx)
	case domain.KindSubcategory:
		dst.Subcategories, err = s.loader.Subcategories(ctx)
	case domain.KindProduct:
		dst.Products, err = s.loader.Products(ctx)
	case domain.KindCollection:
		dst.Collections, err = s.loader.Collections(ctx)
	default:
		err = fmt.Errorf("unknown kind %q", kind)
	}
	return err
}

func (s *Store) apply(kind domain.EntityKind, next Catalog) {
	switch kind {
	case domain.KindCategory:
		s.snap.Categories = next.Categories
	case domain.KindSubcategory:
		s.snap.Subcategories = next.Subcategories
	case domain.KindProduct:
		s.snap.Products = next.Products
	case domain.KindCollection:
		s.snap.Collections = next.Collections
	}
}

func unique(kinds []domain.EntityKind) []domain.EntityKind {
	seen := make(map[domain.EntityKind]bool, len(kinds))
	out := make([]domain.EntityKind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
