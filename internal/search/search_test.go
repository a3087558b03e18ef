package search

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/barback/barback/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCatalog struct {
	cocktails   []domain.Cocktail
	ingredients []domain.Ingredient
}

func (c *staticCatalog) Cocktails(context.Context) []domain.Cocktail {
	return c.cocktails
}

func (c *staticCatalog) Ingredients(context.Context) []domain.Ingredient {
	return c.ingredients
}

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() *staticCatalog {
	return &staticCatalog{
		cocktails: []domain.Cocktail{
			{ID: "old-fashioned", Name: "Old Fashioned", Tags: []string{"classic", "whiskey"}},
			{ID: "negroni", Name: "Negroni", Tags: []string{"classic", "bitter"}},
			{ID: "daiquiri", Name: "Daiquiri", Tags: []string{"classic", "rum"}},
			{ID: "moscow-mule", Name: "Moscow Mule", Tags: []string{"vodka"}},
		},
		ingredients: []domain.Ingredient{
			{ID: "bourbon", Name: "Bourbon"},
			{ID: "campari", Name: "Campari"},
			{ID: "lime-juice", Name: "Lime Juice"},
		},
	}
}

func TestCocktailsFuzzyMatch(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	results := svc.Cocktails(context.Background(), "old fash")

	require.NotEmpty(t, results)
	assert.Equal(t, "old-fashioned", results[0].Cocktail.ID)
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestCocktailsPartialQuery(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	results := svc.Cocktails(context.Background(), "neg")

	require.NotEmpty(t, results)
	assert.Equal(t, "negroni", results[0].Cocktail.ID)
}

func TestCocktailsEmptyQuery(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	assert.Nil(t, svc.Cocktails(context.Background(), ""))
	assert.Nil(t, svc.Cocktails(context.Background(), "   "))
}

func TestCocktailsNoMatch(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	results := svc.Cocktails(context.Background(), "zzzzqqqq")

	assert.Empty(t, results)
}

func TestCocktailsByTag(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	results := svc.CocktailsByTag(context.Background(), "classic")

	require.Len(t, results, 3)
	ids := make([]string, len(results))
	for i, c := range results {
		ids[i] = c.ID
	}
	assert.Contains(t, ids, "old-fashioned")
	assert.Contains(t, ids, "negroni")
	assert.Contains(t, ids, "daiquiri")
}

func TestCocktailsByTagCaseFold(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	results := svc.CocktailsByTag(context.Background(), "VODKA")

	require.Len(t, results, 1)
	assert.Equal(t, "moscow-mule", results[0].ID)
}

func TestIngredientsRanked(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	results := svc.Ingredients(context.Background(), "bourbon")

	require.NotEmpty(t, results)
	assert.Equal(t, "bourbon", results[0].ID)
}

func TestIngredientsEmptyQuery(t *testing.T) {
	svc := NewService(testCatalog(), nullLogger())

	assert.Nil(t, svc.Ingredients(context.Background(), ""))
}
