package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/barback/barback/internal/cache"
	"github.com/barback/barback/internal/domain"
	"github.com/barback/barback/internal/notify"
	"github.com/barback/barback/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway implements the write surface the service exercises and counts
// fetches so tests can prove patches avoid full reloads. Unused methods come
// from the embedded interface and panic if called.
type fakeGateway struct {
	domain.CatalogClient

	err        error
	writeOps   []string
	fetchCalls int
}

func (f *fakeGateway) write(op string) error {
	f.writeOps = append(f.writeOps, op)
	return f.err
}

func (f *fakeGateway) FetchCocktails(context.Context) ([]domain.Cocktail, error) {
	f.fetchCalls++
	return nil, domain.ErrRemoteUnavailable
}

func (f *fakeGateway) InsertCocktail(context.Context, domain.Cocktail) error {
	return f.write("insert cocktail")
}
func (f *fakeGateway) UpdateCocktail(context.Context, string, domain.Cocktail) error {
	return f.write("update cocktail")
}
func (f *fakeGateway) DeleteCocktail(context.Context, string) error {
	return f.write("delete cocktail")
}
func (f *fakeGateway) ReplaceCocktails(context.Context, []domain.Cocktail) error {
	return f.write("replace cocktails")
}
func (f *fakeGateway) InsertIngredient(context.Context, domain.Ingredient) error {
	return f.write("insert ingredient")
}
func (f *fakeGateway) DeleteIngredient(context.Context, string) error {
	return f.write("delete ingredient")
}
func (f *fakeGateway) InsertCategory(context.Context, domain.Category) error {
	return f.write("insert category")
}
func (f *fakeGateway) DeleteGlassType(context.Context, string) error {
	return f.write("delete glassType")
}

func validCocktail(id string) domain.Cocktail {
	return domain.Cocktail{
		ID:          id,
		Name:        "Cocktail " + id,
		Difficulty:  domain.DifficultyMedium,
		PrepMinutes: 5,
		Servings:    1,
	}
}

func newFixture(t *testing.T) (*fakeGateway, *store.CatalogStore, *cache.Coordinator, *Service) {
	t.Helper()
	gw := &fakeGateway{}
	st := store.NewCatalogStore(t.TempDir(), store.Options{
		FreshnessWindow: 10 * time.Minute,
		Logger:          nullLogger(),
	})
	t.Cleanup(func() { st.Close() })
	coord := cache.New(st, gw, cache.Options{
		Scheduler: cache.NewManualScheduler(),
		Bus:       notify.NewBus(),
		Logger:    nullLogger(),
	})
	return gw, st, coord, NewService(gw, coord, nullLogger())
}

func TestAddCocktailPatchesCache(t *testing.T) {
	gw, st, _, svc := newFixture(t)
	require.NoError(t, st.SaveCocktails([]domain.Cocktail{validCocktail("a")}))

	require.NoError(t, svc.AddCocktail(context.Background(), validCocktail("b")))

	assert.Equal(t, []string{"insert cocktail"}, gw.writeOps)
	stored, ok := st.GetCocktails()
	require.True(t, ok)
	require.Len(t, stored, 2)
	assert.Equal(t, "b", stored[1].ID)
	assert.Zero(t, gw.fetchCalls, "targeted patch must not re-fetch the collection")
}

func TestDeleteCocktailPatchesCache(t *testing.T) {
	gw, st, _, svc := newFixture(t)
	require.NoError(t, st.SaveCocktails([]domain.Cocktail{validCocktail("a"), validCocktail("x")}))

	require.NoError(t, svc.DeleteCocktail(context.Background(), "x"))

	stored, ok := st.GetCocktails()
	require.True(t, ok)
	require.Len(t, stored, 1)
	assert.Equal(t, "a", stored[0].ID)
	assert.Zero(t, gw.fetchCalls)
}

func TestAddCocktailValidatesBeforeWrite(t *testing.T) {
	gw, _, _, svc := newFixture(t)

	err := svc.AddCocktail(context.Background(), domain.Cocktail{ID: "bad"})
	require.Error(t, err)
	assert.Empty(t, gw.writeOps, "invalid records must not reach the gateway")
}

func TestGatewayFailureLeavesCacheUntouched(t *testing.T) {
	gw, st, _, svc := newFixture(t)
	gw.err = domain.ErrPermissionDenied
	require.NoError(t, st.SaveCocktails([]domain.Cocktail{validCocktail("a")}))

	err := svc.AddCocktail(context.Background(), validCocktail("b"))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	stored, ok := st.GetCocktails()
	require.True(t, ok)
	assert.Len(t, stored, 1, "cache must not change when the remote write fails")
}

func TestCategoryMutationInvalidates(t *testing.T) {
	gw, st, _, svc := newFixture(t)
	require.NoError(t, st.SaveCategories([]domain.Category{{ID: "classics", Name: "Classics"}}))

	require.NoError(t, svc.AddCategory(context.Background(), domain.Category{ID: "tiki", Name: "Tiki"}))

	assert.Equal(t, []string{"insert category"}, gw.writeOps)
	_, ok := st.GetCategories()
	assert.False(t, ok, "category writes use full invalidation, not patching")
	assert.False(t, st.IsFresh(domain.CollectionCategories))
}

func TestGlassTypeDeleteInvalidates(t *testing.T) {
	_, st, _, svc := newFixture(t)
	require.NoError(t, st.SaveGlassTypes([]domain.GlassType{{ID: "coupe", Name: "Coupe"}}))

	require.NoError(t, svc.DeleteGlassType(context.Background(), "coupe"))

	_, ok := st.GetGlassTypes()
	assert.False(t, ok)
}

func TestReplaceAllInvalidatesEvenForPatchCollections(t *testing.T) {
	gw, st, _, svc := newFixture(t)
	require.NoError(t, st.SaveCocktails([]domain.Cocktail{validCocktail("a")}))

	require.NoError(t, svc.ReplaceAllCocktails(context.Background(), []domain.Cocktail{validCocktail("z")}))

	assert.Equal(t, []string{"replace cocktails"}, gw.writeOps)
	_, ok := st.GetCocktails()
	assert.False(t, ok, "bulk replace always invalidates")
}

func TestIngredientAddPatchesAndIngredientBulkValidates(t *testing.T) {
	gw, st, _, svc := newFixture(t)
	require.NoError(t, st.SaveIngredients([]domain.Ingredient{{ID: "gin", Name: "Gin"}}))

	require.NoError(t, svc.AddIngredient(context.Background(), domain.Ingredient{ID: "rum", Name: "Rum"}))
	stored, ok := st.GetIngredients()
	require.True(t, ok)
	assert.Len(t, stored, 2)

	bad := 120.0
	err := svc.AddIngredient(context.Background(), domain.Ingredient{ID: "x", Name: "X", ABV: &bad})
	require.Error(t, err)
	assert.Equal(t, []string{"insert ingredient"}, gw.writeOps)
}
