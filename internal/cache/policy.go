package cache

import "github.com/barback/barback/internal/domain"

// PatchOp is a single-record mutation applied to a cached collection.
type PatchOp string

const (
	OpAdd    PatchOp = "add"
	OpUpdate PatchOp = "update"
	OpRemove PatchOp = "remove"
)

// Policy selects how the cache is reconciled after a successful remote write.
type Policy string

const (
	// PolicyPatch applies the single record directly to the cached array,
	// trading a small risk of drift for skipping a full re-fetch.
	PolicyPatch Policy = "patch"

	// PolicyInvalidate clears the cached collection so the next read
	// re-fetches everything. Safe but slower.
	PolicyInvalidate Policy = "fullInvalidate"
)

// policyTable fixes, per collection and operation, how the cache is updated
// after an admin write. Cocktail and ingredient single-record mutations are
// high-frequency and patch in place; glass types and categories are rare
// enough that a full reload costs nothing and cannot drift.
var policyTable = map[string]map[PatchOp]Policy{
	domain.CollectionCocktails: {
		OpAdd:    PolicyPatch,
		OpUpdate: PolicyPatch,
		OpRemove: PolicyPatch,
	},
	domain.CollectionIngredients: {
		OpAdd:    PolicyPatch,
		OpUpdate: PolicyPatch,
		OpRemove: PolicyPatch,
	},
	domain.CollectionGlassTypes: {
		OpAdd:    PolicyInvalidate,
		OpUpdate: PolicyInvalidate,
		OpRemove: PolicyInvalidate,
	},
	domain.CollectionCategories: {
		OpAdd:    PolicyInvalidate,
		OpUpdate: PolicyInvalidate,
		OpRemove: PolicyInvalidate,
	},
}

// PolicyFor returns the cache-update policy for a single-record operation.
// Unknown pairs fall back to full invalidation, the safe default. Bulk
// replace-all operations always invalidate and do not consult the table.
func PolicyFor(collection string, op PatchOp) Policy {
	if ops, ok := policyTable[collection]; ok {
		if p, ok := ops[op]; ok {
			return p
		}
	}
	return PolicyInvalidate
}
