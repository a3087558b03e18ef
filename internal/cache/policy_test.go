package cache

import (
	"testing"

	"github.com/barback/barback/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPolicyTable(t *testing.T) {
	ops := []PatchOp{OpAdd, OpUpdate, OpRemove}

	// High-churn collections patch in place.
	for _, op := range ops {
		assert.Equal(t, PolicyPatch, PolicyFor(domain.CollectionCocktails, op))
		assert.Equal(t, PolicyPatch, PolicyFor(domain.CollectionIngredients, op))
	}

	// Reference collections take the safe full reload.
	for _, op := range ops {
		assert.Equal(t, PolicyInvalidate, PolicyFor(domain.CollectionGlassTypes, op))
		assert.Equal(t, PolicyInvalidate, PolicyFor(domain.CollectionCategories, op))
	}
}

func TestPolicyForUnknownFallsBackToInvalidate(t *testing.T) {
	assert.Equal(t, PolicyInvalidate, PolicyFor("garnishes", OpAdd))
	assert.Equal(t, PolicyInvalidate, PolicyFor(domain.CollectionCocktails, PatchOp("rename")))
}
