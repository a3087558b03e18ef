package domain

import "context"

// CocktailClient provides remote access to the cocktails collection.
type CocktailClient interface {
	FetchCocktails(ctx context.Context) ([]Cocktail, error)
	ReplaceCocktails(ctx context.Context, records []Cocktail) error
	InsertCocktail(ctx context.Context, record Cocktail) error
	UpdateCocktail(ctx context.Context, id string, record Cocktail) error
	DeleteCocktail(ctx context.Context, id string) error
}

// IngredientClient provides remote access to the ingredients collection.
type IngredientClient interface {
	FetchIngredients(ctx context.Context) ([]Ingredient, error)
	ReplaceIngredients(ctx context.Context, records []Ingredient) error
	InsertIngredient(ctx context.Context, record Ingredient) error
	UpdateIngredient(ctx context.Context, id string, record Ingredient) error
	DeleteIngredient(ctx context.Context, id string) error
}

// GlassTypeClient provides remote access to the glassTypes collection.
type GlassTypeClient interface {
	FetchGlassTypes(ctx context.Context) ([]GlassType, error)
	ReplaceGlassTypes(ctx context.Context, records []GlassType) error
	InsertGlassType(ctx context.Context, record GlassType) error
	UpdateGlassType(ctx context.Context, id string, record GlassType) error
	DeleteGlassType(ctx context.Context, id string) error
}

// CategoryClient provides remote access to the categories collection.
type CategoryClient interface {
	FetchCategories(ctx context.Context) ([]Category, error)
	ReplaceCategories(ctx context.Context, records []Category) error
	InsertCategory(ctx context.Context, record Category) error
	UpdateCategory(ctx context.Context, id string, record Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// CatalogClient is the single point of truth for reading and writing every
// collection against the remote catalog. It has no caching responsibility;
// successful single-record writes are reconciled into the local cache by the
// caller.
type CatalogClient interface {
	CocktailClient
	IngredientClient
	GlassTypeClient
	CategoryClient
}
