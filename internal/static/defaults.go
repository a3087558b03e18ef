// Package static holds the compiled-in default datasets used as the
// last-resort fallback when both the local cache and the remote catalog are
// unavailable. Defaults are never written back into the cache.
package static

import "github.com/barback/barback/internal/domain"

func abv(v float64) *float64 { return &v }

var defaultGlassTypes = []domain.GlassType{
	{ID: "rocks", Name: "Rocks Glass", Description: "Short tumbler for spirit-forward drinks served over ice.", Capacity: "300 ml"},
	{ID: "coupe", Name: "Coupe", Description: "Stemmed, shallow bowl for drinks served up.", Capacity: "200 ml"},
	{ID: "highball", Name: "Highball", Description: "Tall glass for long drinks built over ice.", Capacity: "350 ml"},
	{ID: "martini", Name: "Martini Glass", Description: "Conical stemmed glass for stirred, strained cocktails.", Capacity: "180 ml"},
	{ID: "copper-mug", Name: "Copper Mug", Description: "Traditional vessel for mules.", Capacity: "400 ml"},
}

var defaultCategories = []domain.Category{
	{ID: "classics", Name: "Classics", Description: "The canon: drinks every bartender knows by heart.", Color: "#b0413e"},
	{ID: "sours", Name: "Sours", Description: "Spirit, citrus, and sweetener in balance.", Color: "#d9a404"},
	{ID: "highballs", Name: "Highballs", Description: "Long drinks lengthened with a carbonated mixer.", Color: "#2274a5"},
	{ID: "aperitivo", Name: "Aperitivo", Description: "Bitter, low-proof drinks to open the evening.", Color: "#e06d44"},
}

var defaultIngredients = []domain.Ingredient{
	{ID: "gin", Name: "Gin", Category: domain.IngredientSpirit, Alcoholic: true, ABV: abv(40)},
	{ID: "bourbon", Name: "Bourbon", Category: domain.IngredientSpirit, Alcoholic: true, ABV: abv(45)},
	{ID: "white-rum", Name: "White Rum", Category: domain.IngredientSpirit, Alcoholic: true, ABV: abv(40)},
	{ID: "vodka", Name: "Vodka", Category: domain.IngredientSpirit, Alcoholic: true, ABV: abv(40)},
	{ID: "campari", Name: "Campari", Category: domain.IngredientLiqueur, Alcoholic: true, ABV: abv(25)},
	{ID: "sweet-vermouth", Name: "Sweet Vermouth", Category: domain.IngredientLiqueur, Alcoholic: true, ABV: abv(16)},
	{ID: "lime-juice", Name: "Lime Juice", Category: domain.IngredientJuice, Alcoholic: false},
	{ID: "lemon-juice", Name: "Lemon Juice", Category: domain.IngredientJuice, Alcoholic: false},
	{ID: "simple-syrup", Name: "Simple Syrup", Category: domain.IngredientSyrup, Alcoholic: false},
	{ID: "angostura", Name: "Angostura Bitters", Category: domain.IngredientBitters, Alcoholic: true, ABV: abv(44.7)},
	{ID: "ginger-beer", Name: "Ginger Beer", Category: domain.IngredientMixer, Alcoholic: false},
	{ID: "soda-water", Name: "Soda Water", Category: domain.IngredientMixer, Alcoholic: false},
}

var defaultCocktails = []domain.Cocktail{
	{
		ID:          "old-fashioned",
		Name:        "Old Fashioned",
		Description: "Sugar, bitters, bourbon. The drink that defines the category.",
		Instructions: []string{
			"Muddle the sugar with the bitters and a splash of water in a rocks glass.",
			"Add the bourbon and a large ice cube.",
			"Stir until chilled and lightly diluted.",
			"Express the orange peel over the glass and drop it in.",
		},
		Ingredients: []domain.CocktailIngredient{
			{IngredientID: "bourbon", Name: "Bourbon", Quantity: "60 ml"},
			{IngredientID: "simple-syrup", Name: "Simple Syrup", Quantity: "1 tsp"},
			{IngredientID: "angostura", Name: "Angostura Bitters", Quantity: "2 dashes"},
		},
		Glass:       domain.GlassType{ID: "rocks", Name: "Rocks Glass"},
		CategoryID:  "classics",
		Tags:        []string{"stirred", "spirit-forward", "bourbon"},
		Difficulty:  domain.DifficultyEasy,
		PrepMinutes: 3,
		Servings:    1,
		GarnishText: "Orange peel",
		History:     "Recognizable in print since the 1880s; the template every cocktail descends from.",
	},
	{
		ID:          "negroni",
		Name:        "Negroni",
		Description: "Equal parts gin, Campari, and sweet vermouth.",
		Instructions: []string{
			"Combine all ingredients in a mixing glass with ice.",
			"Stir until well chilled.",
			"Strain into a rocks glass over a large ice cube.",
			"Garnish with an orange slice.",
		},
		Ingredients: []domain.CocktailIngredient{
			{IngredientID: "gin", Name: "Gin", Quantity: "30 ml"},
			{IngredientID: "campari", Name: "Campari", Quantity: "30 ml"},
			{IngredientID: "sweet-vermouth", Name: "Sweet Vermouth", Quantity: "30 ml"},
		},
		Glass:       domain.GlassType{ID: "rocks", Name: "Rocks Glass"},
		CategoryID:  "aperitivo",
		Tags:        []string{"stirred", "bitter", "equal-parts"},
		Difficulty:  domain.DifficultyEasy,
		PrepMinutes: 3,
		Servings:    1,
		GarnishText: "Orange slice",
		Variations:  []string{"Boulevardier", "Americano", "White Negroni"},
	},
	{
		ID:          "daiquiri",
		Name:        "Daiquiri",
		Description: "Rum, lime, and sugar, shaken hard and served up.",
		Instructions: []string{
			"Combine all ingredients in a shaker with ice.",
			"Shake hard for ten seconds.",
			"Double-strain into a chilled coupe.",
		},
		Ingredients: []domain.CocktailIngredient{
			{IngredientID: "white-rum", Name: "White Rum", Quantity: "60 ml"},
			{IngredientID: "lime-juice", Name: "Lime Juice", Quantity: "25 ml"},
			{IngredientID: "simple-syrup", Name: "Simple Syrup", Quantity: "20 ml"},
		},
		Glass:       domain.GlassType{ID: "coupe", Name: "Coupe"},
		CategoryID:  "sours",
		Tags:        []string{"shaken", "citrus", "rum"},
		Difficulty:  domain.DifficultyEasy,
		PrepMinutes: 4,
		Servings:    1,
		GarnishText: "Lime wheel",
	},
	{
		ID:          "moscow-mule",
		Name:        "Moscow Mule",
		Description: "Vodka and ginger beer over ice, sharpened with lime.",
		Instructions: []string{
			"Fill a copper mug with crushed ice.",
			"Add the vodka and lime juice.",
			"Top with ginger beer and stir gently.",
		},
		Ingredients: []domain.CocktailIngredient{
			{IngredientID: "vodka", Name: "Vodka", Quantity: "50 ml"},
			{IngredientID: "lime-juice", Name: "Lime Juice", Quantity: "15 ml"},
			{IngredientID: "ginger-beer", Name: "Ginger Beer", Quantity: "120 ml"},
		},
		Glass:       domain.GlassType{ID: "copper-mug", Name: "Copper Mug"},
		CategoryID:  "highballs",
		Tags:        []string{"built", "long", "vodka"},
		Difficulty:  domain.DifficultyEasy,
		PrepMinutes: 2,
		Servings:    1,
		GarnishText: "Lime wedge",
	},
}

// Cocktails returns a copy of the default cocktail dataset.
func Cocktails() []domain.Cocktail {
	out := make([]domain.Cocktail, len(defaultCocktails))
	copy(out, defaultCocktails)
	return out
}

// Ingredients returns a copy of the default ingredient dataset.
func Ingredients() []domain.Ingredient {
	out := make([]domain.Ingredient, len(defaultIngredients))
	copy(out, defaultIngredients)
	return out
}

// GlassTypes returns a copy of the default glass type dataset.
func GlassTypes() []domain.GlassType {
	out := make([]domain.GlassType, len(defaultGlassTypes))
	copy(out, defaultGlassTypes)
	return out
}

// Categories returns a copy of the default category dataset.
func Categories() []domain.Category {
	out := make([]domain.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
