// Package search provides fuzzy lookup over the cached catalog. It only ever
// reads through the cache coordinator, so a query never costs a network call
// beyond what the read path itself decides.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/barback/barback/internal/domain"
	rankfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Catalog is the read surface the search service consumes.
type Catalog interface {
	Cocktails(ctx context.Context) []domain.Cocktail
	Ingredients(ctx context.Context) []domain.Ingredient
}

// CocktailMatch is a ranked search hit with character positions for
// highlighting.
type CocktailMatch struct {
	Cocktail       domain.Cocktail
	Score          int
	MatchedIndexes []int
}

// cocktailIndex implements sahilm/fuzzy.Source for zero-allocation matching.
type cocktailIndex struct {
	cocktails  []domain.Cocktail
	lowerNames []string
}

func (idx *cocktailIndex) String(i int) string { return idx.lowerNames[i] }
func (idx *cocktailIndex) Len() int            { return len(idx.cocktails) }

func buildIndex(cocktails []domain.Cocktail) *cocktailIndex {
	idx := &cocktailIndex{
		cocktails:  cocktails,
		lowerNames: make([]string, len(cocktails)),
	}
	for i, c := range cocktails {
		idx.lowerNames[i] = strings.ToLower(c.Name)
	}
	return idx
}

// Service handles fuzzy search across the cached catalog.
type Service struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewService creates a new search service.
func NewService(catalog Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: catalog, logger: logger}
}

// Cocktails returns cocktails ranked by fuzzy match against the query.
func (s *Service) Cocktails(ctx context.Context, query string) []CocktailMatch {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil
	}

	cocktails := s.catalog.Cocktails(ctx)
	idx := buildIndex(cocktails)

	matches := fuzzy.FindFrom(query, idx)
	results := make([]CocktailMatch, 0, len(matches))
	for _, m := range matches {
		results = append(results, CocktailMatch{
			Cocktail:       idx.cocktails[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}

	s.logger.Debug("cocktail search", "query", query, "results", len(results))
	return results
}

// CocktailsByTag returns cocktails whose tags fuzzily match the given tag.
func (s *Service) CocktailsByTag(ctx context.Context, tag string) []domain.Cocktail {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}

	var results []domain.Cocktail
	for _, c := range s.catalog.Cocktails(ctx) {
		for _, t := range c.Tags {
			if rankfuzzy.MatchNormalizedFold(tag, t) {
				results = append(results, c)
				break
			}
		}
	}
	return results
}

// Ingredients returns ingredients ranked by fuzzy match against the query.
func (s *Service) Ingredients(ctx context.Context, query string) []domain.Ingredient {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ingredients := s.catalog.Ingredients(ctx)
	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.Name
	}

	ranks := rankfuzzy.RankFindNormalizedFold(query, names)
	results := make([]domain.Ingredient, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, ingredients[r.OriginalIndex])
	}

	s.logger.Debug("ingredient search", "query", query, "results", len(results))
	return results
}
