package domain

import "time"

// Store persists each collection and its freshness record across process
// restarts, with no network dependency. Implementations are best-effort
// caching, never a source of truth: reads absorb storage failures and report
// a miss instead of raising.
type Store interface {
	// === Collections ===
	GetCocktails() ([]Cocktail, bool)
	SaveCocktails(records []Cocktail) error

	GetIngredients() ([]Ingredient, bool)
	SaveIngredients(records []Ingredient) error

	GetGlassTypes() ([]GlassType, bool)
	SaveGlassTypes(records []GlassType) error

	GetCategories() ([]Category, bool)
	SaveCategories(records []Category) error

	// === Freshness ===

	// IsFresh reports whether a freshness record exists for the collection
	// and its age is still inside the freshness window.
	IsFresh(collection string) bool

	// Freshness returns the last successful refresh time for a collection.
	Freshness(collection string) (time.Time, bool)

	// Count returns the number of records stored for a collection.
	Count(collection string) int

	// === Invalidation ===

	// ClearCollection wipes one collection and its freshness record.
	ClearCollection(collection string)

	// ClearAll wipes every collection and every freshness record.
	ClearAll()

	Close() error
}
