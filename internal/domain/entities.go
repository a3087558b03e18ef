package domain

import (
	"fmt"
	"strings"
)

// Collection names used as cache keys, bucket keys, and coalescing keys.
const (
	CollectionCocktails   = "cocktails"
	CollectionIngredients = "ingredients"
	CollectionGlassTypes  = "glassTypes"
	CollectionCategories  = "categories"
)

// Collections lists every cacheable collection name.
func Collections() []string {
	return []string{
		CollectionCocktails,
		CollectionIngredients,
		CollectionGlassTypes,
		CollectionCategories,
	}
}

// Difficulty rates how hard a cocktail is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IngredientCategory classifies an ingredient on the shelf.
type IngredientCategory string

const (
	IngredientSpirit  IngredientCategory = "spirit"
	IngredientLiqueur IngredientCategory = "liqueur"
	IngredientMixer   IngredientCategory = "mixer"
	IngredientBitters IngredientCategory = "bitters"
	IngredientSyrup   IngredientCategory = "syrup"
	IngredientJuice   IngredientCategory = "juice"
	IngredientGarnish IngredientCategory = "garnish"
	IngredientOther   IngredientCategory = "other"
)

// CocktailIngredient ties a recipe line to an ingredient by reference.
// Name is a display snapshot so a recipe renders even when the referenced
// ingredient is not cached.
type CocktailIngredient struct {
	IngredientID string `json:"ingredientId"`
	Name         string `json:"name,omitempty"`
	Quantity     string `json:"quantity"`
	Optional     bool   `json:"optional,omitempty"`
	Garnish      bool   `json:"garnish,omitempty"`
}

// Cocktail is a single recipe in the catalog.
type Cocktail struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Instructions []string             `json:"instructions"`
	Ingredients  []CocktailIngredient `json:"ingredients"`

	// Glass is an embedded snapshot, not a live join against the
	// glassTypes collection.
	Glass GlassType `json:"glass"`

	// Category carries either a legacy enum value (CategoryID only) or a
	// full embedded snapshot from the categories collection.
	CategoryID string    `json:"categoryId,omitempty"`
	Category   *Category `json:"category,omitempty"`

	Tags        []string   `json:"tags,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	PrepMinutes int        `json:"prepMinutes"`
	Servings    int        `json:"servings"`

	ImageURL    string   `json:"imageUrl,omitempty"`
	GarnishText string   `json:"garnishText,omitempty"`
	History     string   `json:"history,omitempty"`
	Variations  []string `json:"variations,omitempty"`
}

func (c Cocktail) Key() string { return c.ID }

// CategoryName returns the display name for the cocktail's category,
// preferring the embedded snapshot over the legacy enum value.
func (c Cocktail) CategoryName() string {
	if c.Category != nil && c.Category.Name != "" {
		return c.Category.Name
	}
	return c.CategoryID
}

// HasTag reports whether the cocktail carries the given free-text tag.
func (c Cocktail) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// FormattedPrepTime returns the prep time in a human-readable format.
func (c Cocktail) FormattedPrepTime() string {
	if c.PrepMinutes <= 0 {
		return ""
	}
	if c.PrepMinutes < 60 {
		return fmt.Sprintf("%dm", c.PrepMinutes)
	}
	return fmt.Sprintf("%dh %dm", c.PrepMinutes/60, c.PrepMinutes%60)
}

// Validate checks the invariants a cocktail must hold before it is written
// to the remote catalog.
func (c Cocktail) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("cocktail id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("cocktail name is required")
	}
	if c.PrepMinutes <= 0 {
		return fmt.Errorf("prep time must be positive, got %d", c.PrepMinutes)
	}
	if c.Servings <= 0 {
		return fmt.Errorf("servings must be positive, got %d", c.Servings)
	}
	switch c.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	for i, ing := range c.Ingredients {
		if ing.IngredientID == "" {
			return fmt.Errorf("ingredient %d is missing its reference", i)
		}
	}
	return nil
}

// Ingredient is a single shelf item referenced by cocktail recipes.
type Ingredient struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    IngredientCategory `json:"category"`
	Alcoholic   bool               `json:"alcoholic"`
	Description string             `json:"description,omitempty"`

	// ABV is a percentage in [0, 100]; nil when unknown or irrelevant.
	ABV *float64 `json:"abv,omitempty"`
}

func (i Ingredient) Key() string { return i.ID }

func (i Ingredient) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("ingredient id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if i.ABV != nil && (*i.ABV < 0 || *i.ABV > 100) {
		return fmt.Errorf("abv must be within 0-100, got %g", *i.ABV)
	}
	return nil
}

// GlassType describes the vessel a cocktail is served in.
type GlassType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    string `json:"capacity,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
}

func (g GlassType) Key() string { return g.ID }

func (g GlassType) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("glass type id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("glass type name is required")
	}
	return nil
}

// Category groups cocktails for browsing.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

func (c Category) Key() string { return c.ID }

func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}

// Keyed is satisfied by every catalog record; the key is unique within its
// collection.
type Keyed interface {
	Key() string
}
