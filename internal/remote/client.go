// Package remote implements the HTTP gateway to the canonical catalog
// service. It is the single point of truth for every collection and carries
// no caching responsibility; callers reconcile the local cache after writes.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/barback/barback/internal/domain"
)

const (
	defaultTimeout = 8 * time.Second
	userAgent      = "Barback/1.0"

	roleHeader = "X-Barback-Role"
	keyHeader  = "X-Barback-Key"
)

// Role identifies the caller's privilege level on write paths.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

// Client implements domain.CatalogClient against the catalog REST API.
type Client struct {
	baseURL    string
	apiKey     string
	role       Role
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog API client. An empty role defaults to viewer,
// which can read every collection but fails writes locally with
// ErrPermissionDenied before any network round-trip.
func NewClient(baseURL, apiKey string, role Role, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if role == "" {
		role = RoleViewer
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		role:    role,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetTimeout overrides the wall-clock bound on remote calls.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

func (c *Client) collectionPath(name string) string {
	return fmt.Sprintf("%s/api/collections/%s", c.baseURL, name)
}

func (c *Client) recordPath(name, id string) string {
	return fmt.Sprintf("%s/api/collections/%s/%s", c.baseURL, name, id)
}

// doRequest performs an authenticated HTTP request and maps failures onto
// the domain error taxonomy.
func (c *Client) doRequest(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(roleHeader, string(c.role))
	if c.apiKey != "" {
		req.Header.Set(keyHeader, c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s %s", domain.ErrPermissionDenied, method, url)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, url)
	default:
		return nil, fmt.Errorf("%w: %s %s returned %d", domain.ErrRemoteError, method, url, resp.StatusCode)
	}
}

// requireAdmin gates write paths on the privileged role without a network
// round-trip.
func (c *Client) requireAdmin(op, collection string) error {
	if c.role != RoleAdmin {
		return fmt.Errorf("%w: %s on %s requires the admin role", domain.ErrPermissionDenied, op, collection)
	}
	return nil
}

// === Generic collection operations ===

func fetchCollection[T any](ctx context.Context, c *Client, name string) ([]T, error) {
	data, err := c.doRequest(ctx, http.MethodGet, c.collectionPath(name), nil)
	if err != nil {
		c.logger.Error("failed to fetch collection", "collection", name, "error", err)
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		// Malformed data must fail loudly; callers rely on the error to
		// trigger fallback rather than caching garbage.
		return nil, fmt.Errorf("%w: malformed %s payload: %v", domain.ErrRemoteError, name, err)
	}

	c.logger.Debug("fetched collection", "collection", name, "count", len(records))
	return records, nil
}

func replaceCollection[T any](ctx context.Context, c *Client, name string, records []T) error {
	if err := c.requireAdmin("replace", name); err != nil {
		return err
	}
	if _, err := c.doRequest(ctx, http.MethodPut, c.collectionPath(name), records); err != nil {
		return err
	}
	c.logger.Info("replaced collection", "collection", name, "count", len(records))
	return nil
}

func insertRecord[T domain.Keyed](ctx context.Context, c *Client, name string, record T) error {
	if err := c.requireAdmin("insert", name); err != nil {
		return err
	}
	if _, err := c.doRequest(ctx, http.MethodPost, c.collectionPath(name), record); err != nil {
		return err
	}
	c.logger.Info("inserted record", "collection", name, "id", record.Key())
	return nil
}

func updateRecord[T any](ctx context.Context, c *Client, name, id string, record T) error {
	if err := c.requireAdmin("update", name); err != nil {
		return err
	}
	if _, err := c.doRequest(ctx, http.MethodPut, c.recordPath(name, id), record); err != nil {
		return err
	}
	c.logger.Info("updated record", "collection", name, "id", id)
	return nil
}

func (c *Client) deleteRecord(ctx context.Context, name, id string) error {
	if err := c.requireAdmin("delete", name); err != nil {
		return err
	}
	if _, err := c.doRequest(ctx, http.MethodDelete, c.recordPath(name, id), nil); err != nil {
		return err
	}
	c.logger.Info("deleted record", "collection", name, "id", id)
	return nil
}

// === Cocktails ===

func (c *Client) FetchCocktails(ctx context.Context) ([]domain.Cocktail, error) {
	return fetchCollection[domain.Cocktail](ctx, c, domain.CollectionCocktails)
}

func (c *Client) ReplaceCocktails(ctx context.Context, records []domain.Cocktail) error {
	return replaceCollection(ctx, c, domain.CollectionCocktails, records)
}

func (c *Client) InsertCocktail(ctx context.Context, record domain.Cocktail) error {
	return insertRecord(ctx, c, domain.CollectionCocktails, record)
}

func (c *Client) UpdateCocktail(ctx context.Context, id string, record domain.Cocktail) error {
	return updateRecord(ctx, c, domain.CollectionCocktails, id, record)
}

func (c *Client) DeleteCocktail(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, domain.CollectionCocktails, id)
}

// === Ingredients ===

func (c *Client) FetchIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return fetchCollection[domain.Ingredient](ctx, c, domain.CollectionIngredients)
}

func (c *Client) ReplaceIngredients(ctx context.Context, records []domain.Ingredient) error {
	return replaceCollection(ctx, c, domain.CollectionIngredients, records)
}

func (c *Client) InsertIngredient(ctx context.Context, record domain.Ingredient) error {
	return insertRecord(ctx, c, domain.CollectionIngredients, record)
}

func (c *Client) UpdateIngredient(ctx context.Context, id string, record domain.Ingredient) error {
	return updateRecord(ctx, c, domain.CollectionIngredients, id, record)
}

func (c *Client) DeleteIngredient(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, domain.CollectionIngredients, id)
}

// === Glass types ===

func (c *Client) FetchGlassTypes(ctx context.Context) ([]domain.GlassType, error) {
	return fetchCollection[domain.GlassType](ctx, c, domain.CollectionGlassTypes)
}

func (c *Client) ReplaceGlassTypes(ctx context.Context, records []domain.GlassType) error {
	return replaceCollection(ctx, c, domain.CollectionGlassTypes, records)
}

func (c *Client) InsertGlassType(ctx context.Context, record domain.GlassType) error {
	return insertRecord(ctx, c, domain.CollectionGlassTypes, record)
}

func (c *Client) UpdateGlassType(ctx context.Context, id string, record domain.GlassType) error {
	return updateRecord(ctx, c, domain.CollectionGlassTypes, id, record)
}

func (c *Client) DeleteGlassType(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, domain.CollectionGlassTypes, id)
}

// === Categories ===

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return fetchCollection[domain.Category](ctx, c, domain.CollectionCategories)
}

func (c *Client) ReplaceCategories(ctx context.Context, records []domain.Category) error {
	return replaceCollection(ctx, c, domain.CollectionCategories, records)
}

func (c *Client) InsertCategory(ctx context.Context, record domain.Category) error {
	return insertRecord(ctx, c, domain.CollectionCategories, record)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, record domain.Category) error {
	return updateRecord(ctx, c, domain.CollectionCategories, id, record)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, domain.CollectionCategories, id)
}
