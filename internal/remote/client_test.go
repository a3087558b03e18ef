package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barback/barback/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchCocktails(t *testing.T) {
	var gotPath, gotRole string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRole = r.Header.Get(roleHeader)
		json.NewEncoder(w).Encode([]domain.Cocktail{
			{ID: "negroni", Name: "Negroni"},
			{ID: "daiquiri", Name: "Daiquiri"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", RoleViewer, nullLogger())
	records, err := c.FetchCocktails(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "negroni", records[0].ID)
	assert.Equal(t, "/api/collections/cocktails", gotPath)
	assert.Equal(t, "viewer", gotRole)
}

func TestFetchMalformedPayloadFailsLoudly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", RoleViewer, nullLogger())
	_, err := c.FetchIngredients(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteError)
}

func TestFetchServerErrorMapsToRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", RoleViewer, nullLogger())
	_, err := c.FetchCategories(context.Background())
	assert.ErrorIs(t, err, domain.ErrRemoteError)
}

func TestFetchUnreachableMapsToRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed before use: connection refused.

	c := NewClient(srv.URL, "", RoleViewer, nullLogger())
	_, err := c.FetchGlassTypes(context.Background())
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestWritesRequireAdminRole(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", RoleViewer, nullLogger())
	ctx := context.Background()

	err := c.InsertCocktail(ctx, domain.Cocktail{ID: "mule"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = c.DeleteCategory(ctx, "classics")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	err = c.ReplaceGlassTypes(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	assert.False(t, called, "viewer writes must fail before any network call")
}

func TestServerRejectionMapsToPermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "revoked-key", RoleAdmin, nullLogger())
	err := c.InsertIngredient(context.Background(), domain.Ingredient{ID: "gin", Name: "Gin"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestUpdateMissingRecordMapsToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", RoleAdmin, nullLogger())
	err := c.UpdateCocktail(context.Background(), "ghost", domain.Cocktail{ID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = c.DeleteCocktail(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInsertSendsRecordBody(t *testing.T) {
	var gotMethod, gotPath, gotKey string
	var gotBody domain.Ingredient
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get(keyHeader)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", RoleAdmin, nullLogger())
	err := c.InsertIngredient(context.Background(), domain.Ingredient{ID: "campari", Name: "Campari", Alcoholic: true})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/collections/ingredients", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "campari", gotBody.ID)
	assert.True(t, gotBody.Alcoholic)
}

func TestUpdateAndDeletePaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", RoleAdmin, nullLogger())
	ctx := context.Background()

	require.NoError(t, c.UpdateGlassType(ctx, "coupe", domain.GlassType{ID: "coupe", Name: "Coupe"}))
	require.NoError(t, c.DeleteGlassType(ctx, "coupe"))

	require.Len(t, calls, 2)
	assert.Equal(t, call{http.MethodPut, "/api/collections/glassTypes/coupe"}, calls[0])
	assert.Equal(t, call{http.MethodDelete, "/api/collections/glassTypes/coupe"}, calls[1])
}
