// Package catalog exposes the admin mutation surface: every operation writes
// through the remote gateway first, then reconciles the local cache according
// to the per-operation policy table.
package catalog

import (
	"context"
	"log/slog"

	"github.com/barback/barback/internal/cache"
	"github.com/barback/barback/internal/domain"
)

// Service orchestrates gateway writes and cache reconciliation.
type Service struct {
	client domain.CatalogClient
	cache  *cache.Coordinator
	logger *slog.Logger
}

// NewService creates the admin catalog service.
func NewService(client domain.CatalogClient, coordinator *cache.Coordinator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, cache: coordinator, logger: logger}
}

// reconcile applies the policy table after a successful gateway write. A
// failed patch degrades to full invalidation so the cache can never be left
// wedged between the two strategies.
func (s *Service) reconcile(collection string, op cache.PatchOp, patch func() error) {
	if cache.PolicyFor(collection, op) == cache.PolicyPatch {
		err := patch()
		if err == nil {
			return
		}
		s.logger.Warn("cache patch failed, invalidating instead", "collection", collection, "op", string(op), "error", err)
	}
	s.cache.Invalidate(collection)
}

// === Cocktails ===

func (s *Service) AddCocktail(ctx context.Context, record domain.Cocktail) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.InsertCocktail(ctx, record); err != nil {
		return err
	}
	s.reconcile(domain.CollectionCocktails, cache.OpAdd, func() error {
		return s.cache.PatchCocktail(cache.OpAdd, record)
	})
	return nil
}

func (s *Service) UpdateCocktail(ctx context.Context, record domain.Cocktail) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.UpdateCocktail(ctx, record.ID, record); err != nil {
		return err
	}
	s.reconcile(domain.CollectionCocktails, cache.OpUpdate, func() error {
		return s.cache.PatchCocktail(cache.OpUpdate, record)
	})
	return nil
}

func (s *Service) DeleteCocktail(ctx context.Context, id string) error {
	if err := s.client.DeleteCocktail(ctx, id); err != nil {
		return err
	}
	s.reconcile(domain.CollectionCocktails, cache.OpRemove, func() error {
		return s.cache.PatchCocktail(cache.OpRemove, domain.Cocktail{ID: id})
	})
	return nil
}

// ReplaceAllCocktails swaps the entire remote collection. Bulk operations
// always invalidate rather than patch.
func (s *Service) ReplaceAllCocktails(ctx context.Context, records []domain.Cocktail) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if err := s.client.ReplaceCocktails(ctx, records); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionCocktails)
	return nil
}

// === Ingredients ===

func (s *Service) AddIngredient(ctx context.Context, record domain.Ingredient) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.InsertIngredient(ctx, record); err != nil {
		return err
	}
	s.reconcile(domain.CollectionIngredients, cache.OpAdd, func() error {
		return s.cache.PatchIngredient(cache.OpAdd, record)
	})
	return nil
}

func (s *Service) UpdateIngredient(ctx context.Context, record domain.Ingredient) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.UpdateIngredient(ctx, record.ID, record); err != nil {
		return err
	}
	s.reconcile(domain.CollectionIngredients, cache.OpUpdate, func() error {
		return s.cache.PatchIngredient(cache.OpUpdate, record)
	})
	return nil
}

func (s *Service) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.client.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	s.reconcile(domain.CollectionIngredients, cache.OpRemove, func() error {
		return s.cache.PatchIngredient(cache.OpRemove, domain.Ingredient{ID: id})
	})
	return nil
}

func (s *Service) ReplaceAllIngredients(ctx context.Context, records []domain.Ingredient) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if err := s.client.ReplaceIngredients(ctx, records); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionIngredients)
	return nil
}

// === Glass types ===
// Glass type mutations are rare; the policy table routes them through full
// invalidation, so there is no patch closure to build.

func (s *Service) AddGlassType(ctx context.Context, record domain.GlassType) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.InsertGlassType(ctx, record); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionGlassTypes)
	return nil
}

func (s *Service) UpdateGlassType(ctx context.Context, record domain.GlassType) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.UpdateGlassType(ctx, record.ID, record); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionGlassTypes)
	return nil
}

func (s *Service) DeleteGlassType(ctx context.Context, id string) error {
	if err := s.client.DeleteGlassType(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionGlassTypes)
	return nil
}

func (s *Service) ReplaceAllGlassTypes(ctx context.Context, records []domain.GlassType) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if err := s.client.ReplaceGlassTypes(ctx, records); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionGlassTypes)
	return nil
}

// === Categories ===

func (s *Service) AddCategory(ctx context.Context, record domain.Category) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.InsertCategory(ctx, record); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionCategories)
	return nil
}

func (s *Service) UpdateCategory(ctx context.Context, record domain.Category) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.client.UpdateCategory(ctx, record.ID, record); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionCategories)
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionCategories)
	return nil
}

func (s *Service) ReplaceAllCategories(ctx context.Context, records []domain.Category) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if err := s.client.ReplaceCategories(ctx, records); err != nil {
		return err
	}
	s.cache.Invalidate(domain.CollectionCategories)
	return nil
}
